package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/tasktango/backend/api/handler"
	"github.com/tasktango/backend/internal/middleware"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Task    *apiHandler.TaskHandler
	Admin   *apiHandler.AdminHandler
	Advisor *apiHandler.AdvisorHandler
	Health  *apiHandler.HealthHandler
	Pages   *apiHandler.PageHandler
}

func New(handlers Handlers, sessionAuth func(fasthttp.RequestHandler) fasthttp.RequestHandler, pages *middleware.PageGuard) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Health)

	// Pages
	r.GET("/", pages.Protected(handlers.Pages.Tasks))
	r.GET("/completed", pages.Protected(handlers.Pages.Completed))
	r.GET("/board", pages.Protected(handlers.Pages.Board))
	r.GET("/admin", pages.Protected(handlers.Pages.Admin))
	r.GET("/login", pages.AuthPage(handlers.Pages.Login))
	r.GET("/signup", pages.AuthPage(handlers.Pages.Signup))

	// Auth routes
	r.POST("/api/v1/auth/signup", handlers.Auth.Signup)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/session", handlers.Auth.CreateSession)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)
	r.GET("/api/v1/auth/me", sessionAuth(handlers.Auth.Me))

	// Protected routes
	r.GET("/api/v1/tasks", sessionAuth(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", sessionAuth(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/board", sessionAuth(handlers.Task.GetBoard))
	r.GET("/api/v1/tasks/{id}", sessionAuth(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", sessionAuth(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", sessionAuth(handlers.Task.DeleteTask))
	r.PATCH("/api/v1/tasks/{id}/stage", sessionAuth(handlers.Task.MoveStage))
	r.POST("/api/v1/tasks/{id}/toggle", sessionAuth(handlers.Task.ToggleCompletion))
	r.GET("/api/v1/tasks/{id}/history", sessionAuth(handlers.Task.GetHistory))
	r.GET("/api/v1/activity", sessionAuth(handlers.Task.GetActivity))

	r.POST("/api/v1/advisor/priority", sessionAuth(handlers.Advisor.SuggestPriority))

	r.GET("/api/v1/admin/tasks", sessionAuth(middleware.AdminOnly(handlers.Admin.Overview)))

	return r
}
