// Package router assembles the gin engine and its routes.
package router

import (
	"github.com/gin-gonic/gin"

	simhandler "emergy_api/internal/feature/simulations/transport/handler"
	userhandler "emergy_api/internal/feature/users/transport/handler"
	"emergy_api/internal/platform/http/handler"
	"emergy_api/internal/platform/http/middleware"
	"emergy_api/internal/shared/apperr"
)

func NewRouter(users *userhandler.UserHandler, sims *simhandler.SimulationHandler, ready handler.Pinger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(), middleware.Recovery(), middleware.ErrorHandler())

	// liveness / readiness
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", handler.Readiness(ready))

	u := r.Group("/users")
	{
		u.GET("", users.List)
		u.POST("", users.Create)
		u.GET("/:id", users.Get)
		u.PUT("/:id", users.Update)
		u.DELETE("/:id", users.Delete)
		u.GET("/email/:email", users.GetByEmail)
		u.GET("/:id/simulations", sims.ListByUser)
	}

	s := r.Group("/simulations")
	{
		s.GET("", sims.List)
		s.POST("", sims.Create)
		s.GET("/:id", sims.Get)
		s.PUT("/:id", sims.Update)
		s.DELETE("/:id", sims.Delete)
		s.GET("/title/:title", sims.GetByTitle)
	}

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperr.NotFound(c.Request.URL.Path))
	})

	return r
}
