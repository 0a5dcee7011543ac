// Package handler provides HTTP handlers for the simulations feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"emergy_api/internal/feature/simulations/domain/entity"
	"emergy_api/internal/feature/simulations/transport/http/dto"
	"emergy_api/internal/platform/http/httpx"
)

// SimulationUsecase defines the simulation operations the handler needs.
type SimulationUsecase interface {
	List(ctx context.Context) ([]entity.Simulation, error)
	GetByID(ctx context.Context, id uint) (*entity.Simulation, error)
	GetByTitle(ctx context.Context, title string) ([]entity.Simulation, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Simulation, error)
	Create(ctx context.Context, userID *uint, f entity.SimulationFields) (*entity.Simulation, error)
	Update(ctx context.Context, id uint, f entity.SimulationFields) (*entity.Simulation, error)
	Delete(ctx context.Context, id uint) error
}

// SimulationHandler serves the /simulations resource and /users/:id/simulations.
type SimulationHandler struct {
	sims SimulationUsecase
}

func NewSimulationHandler(sims SimulationUsecase) *SimulationHandler {
	return &SimulationHandler{sims: sims}
}

// List handles GET /simulations.
func (h *SimulationHandler) List(c *gin.Context) {
	sims, err := h.sims.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSimulationResponses(sims))
}

// Get handles GET /simulations/:id.
func (h *SimulationHandler) Get(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	sim, err := h.sims.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSimulationResponse(*sim))
}

// GetByTitle handles GET /simulations/title/:title. An empty list is a 200.
func (h *SimulationHandler) GetByTitle(c *gin.Context) {
	sims, err := h.sims.GetByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSimulationResponses(sims))
}

// ListByUser handles GET /users/:id/simulations.
func (h *SimulationHandler) ListByUser(c *gin.Context) {
	userID, err := httpx.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	sims, err := h.sims.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSimulationResponses(sims))
}

// Create handles POST /simulations.
func (h *SimulationHandler) Create(c *gin.Context) {
	var req dto.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	sim, err := h.sims.Create(c.Request.Context(), req.UserID, req.Fields())
	if err != nil {
		_ = c.Error(err)
		return
	}
	slog.Info("simulation created", "simulation_id", sim.ID, "user_id", sim.UserID)
	c.Header("Location", httpx.Location(c, sim.ID))
	c.JSON(http.StatusCreated, dto.NewSimulationResponse(*sim))
}

// Update handles PUT /simulations/:id. The userId in the body is validated but the owner never changes.
func (h *SimulationHandler) Update(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	sim, err := h.sims.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSimulationResponse(*sim))
}

// Delete handles DELETE /simulations/:id.
func (h *SimulationHandler) Delete(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.sims.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	slog.Info("simulation deleted", "simulation_id", id)
	c.Status(http.StatusNoContent)
}
