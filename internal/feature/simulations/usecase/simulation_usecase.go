// Package usecase implements the business logic for the simulations feature.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"emergy_api/internal/feature/simulations/domain"
	"emergy_api/internal/feature/simulations/domain/entity"
	userdomain "emergy_api/internal/feature/users/domain"
	userentity "emergy_api/internal/feature/users/domain/entity"
	"emergy_api/internal/shared/apperr"
)

// SimulationRepository abstracts the persistence layer for simulations.
// Every returned simulation has its owner loaded.
type SimulationRepository interface {
	FindAll(ctx context.Context) ([]entity.Simulation, error)
	// FindByID returns domain.ErrSimulationNotFound when no simulation has the id.
	FindByID(ctx context.Context, id uint) (*entity.Simulation, error)
	// FindByTitle is a case-sensitive exact match and may return an empty slice.
	FindByTitle(ctx context.Context, title string) ([]entity.Simulation, error)
	FindByUserID(ctx context.Context, userID uint) ([]entity.Simulation, error)
	Create(ctx context.Context, s *entity.Simulation) error
	Update(ctx context.Context, s *entity.Simulation) error
	Delete(ctx context.Context, id uint) error
}

// UserFinder resolves the owner of a simulation.
type UserFinder interface {
	// FindByID returns users/domain.ErrUserNotFound when no user has the id.
	FindByID(ctx context.Context, id uint) (*userentity.User, error)
}

// SimulationUsecase orchestrates simulation lookups and writes.
type SimulationUsecase struct {
	repo  SimulationRepository
	users UserFinder
}

// NewSimulationUsecase creates a SimulationUsecase.
func NewSimulationUsecase(repo SimulationRepository, users UserFinder) *SimulationUsecase {
	return &SimulationUsecase{repo: repo, users: users}
}

func (u *SimulationUsecase) List(ctx context.Context) ([]entity.Simulation, error) {
	sims, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	return sims, nil
}

// GetByID returns the simulation with id or a NotFound error.
func (u *SimulationUsecase) GetByID(ctx context.Context, id uint) (*entity.Simulation, error) {
	sim, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, id)
	}
	return sim, nil
}

// GetByTitle returns every simulation titled exactly title. No match is not an error.
func (u *SimulationUsecase) GetByTitle(ctx context.Context, title string) ([]entity.Simulation, error) {
	sims, err := u.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("find simulations by title %q: %w", title, err)
	}
	return sims, nil
}

// ListByUser returns the simulations owned by the user with userID.
func (u *SimulationUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.Simulation, error) {
	if _, err := u.owner(ctx, userID); err != nil {
		return nil, err
	}
	sims, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find simulations of user %d: %w", userID, err)
	}
	return sims, nil
}

// Create stores a new simulation for the user with *userID.
// A nil userID is rejected before the store is touched.
func (u *SimulationUsecase) Create(ctx context.Context, userID *uint, f entity.SimulationFields) (*entity.Simulation, error) {
	if userID == nil {
		return nil, apperr.Integrity("User ID is required for simulation.")
	}
	owner, err := u.owner(ctx, *userID)
	if err != nil {
		return nil, err
	}

	sim := entity.NewSimulation(f, *owner)
	if err := u.repo.Create(ctx, &sim); err != nil {
		switch {
		case errors.Is(err, domain.ErrOwnerNotFound):
			// owner removed after the lookup
			return nil, apperr.NotFound(*userID).Wrap(err)
		case errors.Is(err, domain.ErrConstraint):
			return nil, apperr.Integrity("Violations of database restrictions.").Wrap(err)
		}
		return nil, fmt.Errorf("create simulation: %w", err)
	}
	return &sim, nil
}

// Update replaces the editable fields of the simulation with id. The owner never changes.
func (u *SimulationUsecase) Update(ctx context.Context, id uint, f entity.SimulationFields) (*entity.Simulation, error) {
	current, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, id)
	}

	next := current.Apply(f)
	if err := u.repo.Update(ctx, &next); err != nil {
		switch {
		case errors.Is(err, domain.ErrSimulationNotFound):
			return nil, apperr.NotFound(id).Wrap(err)
		case errors.Is(err, domain.ErrConstraint):
			return nil, apperr.Integrity("Violations of database restrictions to update.").Wrap(err)
		}
		return nil, fmt.Errorf("update simulation %d: %w", id, err)
	}
	return &next, nil
}

// Delete removes the simulation with id.
func (u *SimulationUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := u.repo.FindByID(ctx, id); err != nil {
		return translate(err, id)
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrSimulationNotFound):
			return apperr.NotFound(id).Wrap(err)
		case errors.Is(err, domain.ErrConstraint):
			return apperr.Integrity("Violation of database restrictions to delete.").Wrap(err)
		}
		return fmt.Errorf("delete simulation %d: %w", id, err)
	}
	return nil
}

func (u *SimulationUsecase) owner(ctx context.Context, userID uint) (*userentity.User, error) {
	owner, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, apperr.NotFound(userID).Wrap(err)
		}
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	return owner, nil
}

func translate(err error, id uint) error {
	if errors.Is(err, domain.ErrSimulationNotFound) {
		return apperr.NotFound(id).Wrap(err)
	}
	return fmt.Errorf("find simulation %d: %w", id, err)
}
