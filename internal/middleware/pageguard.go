package middleware

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	loginPath = "/login"
	homePath  = "/"
	adminPath = "/admin"
)

// PageGuard applies the page-level routing rules: unauthenticated visits
// to protected pages bounce to /login, authenticated visits to the auth
// pages bounce to the task list (or the admin dashboard for admins).
type PageGuard struct {
	cookieName string
	resolver   SessionResolver
	timeout    time.Duration
}

func NewPageGuard(cookieName string, resolver SessionResolver, timeout time.Duration) *PageGuard {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PageGuard{
		cookieName: cookieName,
		resolver:   resolver,
		timeout:    timeout,
	}
}

// Protected wraps a page reachable only with a session cookie.
func (g *PageGuard) Protected(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if len(ctx.Request.Header.Cookie(g.cookieName)) == 0 {
			ctx.Redirect(loginPath, fasthttp.StatusFound)
			return
		}
		next(ctx)
	}
}

// AuthPage wraps the login/signup pages: an already-authenticated visitor
// is sent to their landing page instead.
func (g *PageGuard) AuthPage(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		sessionID := string(ctx.Request.Header.Cookie(g.cookieName))
		if sessionID == "" {
			next(ctx)
			return
		}

		target := homePath
		stdCtx, cancel := context.WithTimeout(context.Background(), g.timeout)
		actor, err := g.resolver.Resolve(stdCtx, sessionID)
		cancel()
		if err != nil {
			// stale cookie: let the visitor reach the auth page
			next(ctx)
			return
		}
		if actor.Admin {
			target = adminPath
		}
		ctx.Redirect(target, fasthttp.StatusFound)
	}
}
