package dto

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"emergy_api/internal/feature/users/domain/entity"
)

// UserResponse is the public view of a user. The password is never exposed.
type UserResponse struct {
	ID        uint                `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Birthday  *openapi_types.Date `json:"birthday"`
	CreatedAt time.Time           `json:"createdAt"`
}

func NewUserResponse(u entity.User) UserResponse {
	res := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
	if u.Birthday != nil {
		res.Birthday = &openapi_types.Date{Time: *u.Birthday}
	}
	return res
}

func NewUserResponses(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
