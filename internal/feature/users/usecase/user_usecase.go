// Package usecase implements the business logic for the users feature.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"emergy_api/internal/feature/users/domain"
	"emergy_api/internal/feature/users/domain/entity"
	"emergy_api/internal/shared/apperr"
)

// UserRepository abstracts the persistence layer for users.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// FindAll returns every stored user ordered by id.
	FindAll(ctx context.Context) ([]entity.User, error)

	// FindByID returns domain.ErrUserNotFound when no user has the id.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail returns domain.ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether any user has the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts u and fills in its ID and CreatedAt.
	// It returns domain.ErrEmailAlreadyExists if the unique email index rejects the row.
	Create(ctx context.Context, u *entity.User) error

	// Update writes the editable fields of u to the row with u.ID and reloads u.
	Update(ctx context.Context, u *entity.User) error

	// Delete removes the user. It returns domain.ErrUserReferenced while simulations point at it.
	Delete(ctx context.Context, id uint) error
}

// UserUsecase orchestrates user lookups, creation, update and deletion.
type UserUsecase struct {
	repo UserRepository
}

// NewUserUsecase creates a UserUsecase backed by repo.
func NewUserUsecase(repo UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

// List returns all users.
func (u *UserUsecase) List(ctx context.Context) ([]entity.User, error) {
	users, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetByID returns the user with id or a NotFound error.
func (u *UserUsecase) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, id)
	}
	return user, nil
}

// GetByEmail returns the user with email or a NotFound error.
func (u *UserUsecase) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := u.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, translate(err, email)
	}
	return user, nil
}

// Create registers a new user. The email must not belong to any existing user.
func (u *UserUsecase) Create(ctx context.Context, f entity.UserFields) (*entity.User, error) {
	exists, err := u.repo.ExistsByEmail(ctx, f.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Email already exists.")
	}

	user := entity.NewUser(f)
	if err := u.repo.Create(ctx, &user); err != nil {
		// a concurrent insert can still win the race past the pre-check
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, apperr.Conflict("Email already exists.").Wrap(err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update replaces the editable fields of the user with id.
// Changing the email to one owned by another user is a Conflict.
func (u *UserUsecase) Update(ctx context.Context, id uint, f entity.UserFields) (*entity.User, error) {
	current, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, id)
	}

	if current.Email != f.Email {
		exists, err := u.repo.ExistsByEmail(ctx, f.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if exists {
			return nil, apperr.Conflict("Email is already in use.")
		}
	}

	next := current.Apply(f)
	if err := u.repo.Update(ctx, &next); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, apperr.NotFound(id).Wrap(err)
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return nil, apperr.Conflict("Email is already in use.").Wrap(err)
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return &next, nil
}

// Delete removes the user with id. Users that still own simulations cannot be deleted.
func (u *UserUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := u.repo.FindByID(ctx, id); err != nil {
		return translate(err, id)
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserReferenced):
			return apperr.Integrity("Violations of database restrictions.").Wrap(err)
		case errors.Is(err, domain.ErrUserNotFound):
			return apperr.NotFound(id).Wrap(err)
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// translate maps a lookup error to NotFound or wraps it as-is.
func translate(err error, ref any) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return apperr.NotFound(ref).Wrap(err)
	}
	return fmt.Errorf("find user %v: %w", ref, err)
}
