// Package handler provides HTTP handlers for the users feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"emergy_api/internal/feature/users/domain/entity"
	"emergy_api/internal/feature/users/transport/http/dto"
	"emergy_api/internal/platform/http/httpx"
)

// UserUsecase defines the user operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, f entity.UserFields) (*entity.User, error)
	Update(ctx context.Context, id uint, f entity.UserFields) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}

// UserHandler serves the /users resource.
// Errors are attached to the gin context and rendered by the error middleware.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponses(users))
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// GetByEmail handles GET /users/email/:email.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// Create handles POST /users.
// - body bound into dto.UserRequest (422 on rule violations, 400 on unreadable JSON)
// - 409 when the email is taken
// - 201 with a Location header on success
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	user, err := h.users.Create(c.Request.Context(), req.Fields())
	if err != nil {
		_ = c.Error(err)
		return
	}
	slog.Info("user created", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.Header("Location", httpx.Location(c, user.ID))
	c.JSON(http.StatusCreated, dto.NewUserResponse(*user))
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	slog.Info("user deleted", "user_id", id, "remote_addr", c.ClientIP())
	c.Status(http.StatusNoContent)
}
