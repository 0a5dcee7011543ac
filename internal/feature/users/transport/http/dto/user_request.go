// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"emergy_api/internal/feature/users/domain/entity"
)

// UserRequest is the body of POST /users and PUT /users/:id.
type UserRequest struct {
	Name     string              `json:"name" binding:"required,notblank,min=3,max=80"`
	Email    string              `json:"email" binding:"required,notblank,email"`
	Password string              `json:"password" binding:"required,notblank,min=4"`
	Birthday *openapi_types.Date `json:"birthday" binding:"omitempty,past"`
}

// Fields maps the request onto the editable attributes of a user.
func (r UserRequest) Fields() entity.UserFields {
	f := entity.UserFields{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
	if r.Birthday != nil {
		b := time.Date(r.Birthday.Year(), r.Birthday.Month(), r.Birthday.Day(), 0, 0, 0, 0, time.UTC)
		f.Birthday = &b
	}
	return f
}
