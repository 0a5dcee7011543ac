// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"emergy_api/internal/app/router"
	simadapters "emergy_api/internal/feature/simulations/adapters"
	simhandler "emergy_api/internal/feature/simulations/transport/handler"
	simusecase "emergy_api/internal/feature/simulations/usecase"
	useradapters "emergy_api/internal/feature/users/adapters"
	userentity "emergy_api/internal/feature/users/domain/entity"
	userhandler "emergy_api/internal/feature/users/transport/handler"
	userusecase "emergy_api/internal/feature/users/usecase"
	"emergy_api/internal/platform/db"
	"emergy_api/internal/platform/validation"
)

// AutoMigrate creates or updates the users and simulations tables.
// users must exist first because simulations reference it.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&userentity.User{}, &simadapters.SimulationModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// NewHandlers wires repositories, usecases and handlers for both features on gdb.
func NewHandlers(gdb *gorm.DB) (*userhandler.UserHandler, *simhandler.SimulationHandler) {
	userRepo := useradapters.NewUserRepository(gdb)
	simRepo := simadapters.NewSimulationRepository(gdb)

	userUC := userusecase.NewUserUsecase(userRepo)
	simUC := simusecase.NewSimulationUsecase(simRepo, userRepo)

	return userhandler.NewUserHandler(userUC), simhandler.NewSimulationHandler(simUC)
}

// NewEngine builds the fully wired gin engine. Readiness pings gdb.
func NewEngine(gdb *gorm.DB) (*gin.Engine, error) {
	if err := validation.RegisterGin(); err != nil {
		return nil, err
	}
	users, sims := NewHandlers(gdb)
	ping := func(ctx context.Context) error { return db.Ping(ctx, gdb) }
	return router.NewRouter(users, sims, ping), nil
}
