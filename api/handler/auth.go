package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasktango/backend/api/transport"
	"github.com/tasktango/backend/domain"
	"github.com/tasktango/backend/pkg/httpcontext"
	authUC "github.com/tasktango/backend/usecase/auth"
)

// CookieConfig describes the session cookie the handler sets and clears.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	baseHandler
	uc     *authUC.UseCase
	cookie CookieConfig
}

func NewAuthHandler(uc *authUC.UseCase, cookie CookieConfig, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		cookie:      cookie,
	}
}

// @Summary Register an account
// @Tags auth
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(ctx *fasthttp.RequestCtx) {
	var req transport.SignupRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.SignUp(stdCtx, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Verify credentials and issue an identity token
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	token, user, err := h.uc.SignIn(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"id_token": token,
		"user":     user,
	})
}

// @Summary Exchange an identity token for a session cookie
// @Tags auth
// @Router /api/v1/auth/session [post]
func (h *AuthHandler) CreateSession(ctx *fasthttp.RequestCtx) {
	var req transport.SessionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.CreateSession(stdCtx, req.IDToken)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, session.ID)
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"expires_at": session.ExpiresAt,
	})
}

// @Summary End the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	sessionID := string(ctx.Request.Header.Cookie(h.cookie.Name))
	if sessionID != "" {
		stdCtx, cancel := h.requestContext(ctx)
		defer cancel()
		if err := h.uc.RevokeSession(stdCtx, sessionID); err != nil {
			h.logger.Warn("session revoke failed", zap.Error(err))
		}
	}
	h.clearSessionCookie(ctx)
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Current identity
// @Tags auth
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	actor, ok := h.identity(ctx)
	if !ok {
		return
	}
	h.respondSuccess(ctx, http.StatusOK, actor)
}

func (h *AuthHandler) setSessionCookie(ctx *fasthttp.RequestCtx, sessionID string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(h.cookie.Name)
	c.SetValue(sessionID)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSecure(h.cookie.Secure)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetMaxAge(int(h.uc.SessionTTL().Seconds()))
	ctx.Response.Header.SetCookie(c)
}

func (h *AuthHandler) clearSessionCookie(ctx *fasthttp.RequestCtx) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(h.cookie.Name)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSecure(h.cookie.Secure)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetMaxAge(-1)
	ctx.Response.Header.SetCookie(c)
}
