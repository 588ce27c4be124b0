package handler

import (
	"fmt"

	"github.com/valyala/fasthttp"
)

// PageHandler serves the HTML shells. The pages are thin: markup plus the
// API base path; all data loading happens client-side against /api/v1.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>TaskTango - %s</title>
</head>
<body data-page=%q data-api="/api/v1">
<div id="app"></div>
</body>
</html>`

func (h *PageHandler) Tasks(ctx *fasthttp.RequestCtx) {
	h.render(ctx, "My Tasks", "tasks")
}

func (h *PageHandler) Completed(ctx *fasthttp.RequestCtx) {
	h.render(ctx, "Completed Tasks", "completed")
}

func (h *PageHandler) Board(ctx *fasthttp.RequestCtx) {
	h.render(ctx, "Board", "board")
}

func (h *PageHandler) Admin(ctx *fasthttp.RequestCtx) {
	h.render(ctx, "Admin Dashboard", "admin")
}

func (h *PageHandler) Login(ctx *fasthttp.RequestCtx) {
	h.render(ctx, "Log In", "login")
}

func (h *PageHandler) Signup(ctx *fasthttp.RequestCtx) {
	h.render(ctx, "Sign Up", "signup")
}

func (h *PageHandler) render(ctx *fasthttp.RequestCtx, title, page string) {
	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	fmt.Fprintf(ctx, pageShell, title, page)
}
