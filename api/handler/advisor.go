package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasktango/backend/api/transport"
	"github.com/tasktango/backend/domain"
	"github.com/tasktango/backend/internal/advisor"
	"github.com/tasktango/backend/internal/infrastructure/suggestcache"
	"github.com/tasktango/backend/pkg/httpcontext"
)

type AdvisorHandler struct {
	baseHandler
	client *advisor.Client
	cache  *suggestcache.Store
}

func NewAdvisorHandler(client *advisor.Client, cache *suggestcache.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		baseHandler: newBaseHandler(adapter, logger),
		client:      client,
		cache:       cache,
	}
}

// @Summary Suggest a priority for a draft task
// @Tags advisor
// @Router /api/v1/advisor/priority [post]
func (h *AdvisorHandler) SuggestPriority(ctx *fasthttp.RequestCtx) {
	if _, ok := h.identity(ctx); !ok {
		return
	}

	var req transport.AdvisorRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	input := advisor.Input{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	// cache failures are logged and treated as misses
	if h.cache != nil {
		if entry, found, err := h.cache.Get(input.CacheKey()); err != nil {
			h.logger.Warn("suggestion cache read failed", zap.Error(err))
		} else if found {
			h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
				"priority": entry.Priority,
				"cached":   true,
			})
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	priority, err := h.client.SuggestPriority(stdCtx, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Put(input.CacheKey(), priority); err != nil {
			h.logger.Warn("suggestion cache write failed", zap.Error(err))
		}
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"priority": priority,
		"cached":   false,
	})
}
