package middleware

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasktango/backend/domain"
)

// Identity headers set for downstream handlers. Incoming values are
// stripped first so clients cannot forge an identity.
const (
	headerUserID    = "X-User-ID"
	headerUserEmail = "X-User-Email"
	headerUserAdmin = "X-User-Admin"
)

// SessionResolver turns a session cookie value into the acting identity.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (domain.Identity, error)
}

// SessionAuth verifies the session cookie and injects the resolved
// identity into request headers. Requests without a valid session get 401.
func SessionAuth(cookieName string, resolver SessionResolver, timeout time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			stripIdentityHeaders(ctx)

			sessionID := string(ctx.Request.Header.Cookie(cookieName))
			if sessionID == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), timeout)
			actor, err := resolver.Resolve(stdCtx, sessionID)
			cancel()
			if err != nil {
				logger.Warn("session rejected", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.Request.Header.Set(headerUserID, actor.ID)
			ctx.Request.Header.Set(headerUserEmail, actor.Email)
			if actor.Admin {
				ctx.Request.Header.Set(headerUserAdmin, "true")
			}

			next(ctx)
		}
	}
}

// AdminOnly rejects requests whose resolved identity is not an
// administrator. It must run after SessionAuth.
func AdminOnly(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Request.Header.Peek(headerUserAdmin)) != "true" {
			ctx.SetStatusCode(fasthttp.StatusForbidden)
			return
		}
		next(ctx)
	}
}

func stripIdentityHeaders(ctx *fasthttp.RequestCtx) {
	ctx.Request.Header.Del(headerUserID)
	ctx.Request.Header.Del(headerUserEmail)
	ctx.Request.Header.Del(headerUserAdmin)
}
