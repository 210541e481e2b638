package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/habitly/backend/api/handler"
)

type Handlers struct {
	Habit     *apiHandler.HabitHandler
	Analytics *apiHandler.AnalyticsHandler
	Health    *apiHandler.HealthHandler
}

// New builds the canonical route table. Static segments under /habits must be
// registered before the {id} routes so /habits/featured and friends are not
// swallowed by the parameter.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public routes
	r.GET("/habits/featured", handlers.Habit.Featured)
	r.GET("/habits/public", handlers.Habit.Public)
	r.GET("/habits/{id}", handlers.Habit.Get)

	// Protected routes
	r.GET("/habits/my", authMiddleware(handlers.Habit.Mine))
	r.POST("/habits", authMiddleware(handlers.Habit.Create))
	r.PATCH("/habits/{id}", authMiddleware(handlers.Habit.Update))
	r.DELETE("/habits/{id}", authMiddleware(handlers.Habit.Delete))
	r.PATCH("/habits/{id}/complete", authMiddleware(handlers.Habit.Complete))
	r.GET("/habits/analytics/user", authMiddleware(handlers.Analytics.ForUser))

	return r
}
