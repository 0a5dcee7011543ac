// Package entity defines the domain entities for the simulations feature.
package entity

import (
	"time"

	userentity "emergy_api/internal/feature/users/domain/entity"
)

// Simulation is a fuel-consumption calculation owned by exactly one user.
// Result is computed by the caller and stored as given.
type Simulation struct {
	ID        uint
	Title     string
	Liters    float64
	Type      string
	Result    float64
	CreatedAt time.Time

	// UserID is fixed at creation.
	UserID uint
	// User is the owner as loaded from the store. It may be nil on unsaved values.
	User *userentity.User
}

// SimulationFields are the editable attributes of a Simulation.
type SimulationFields struct {
	Title  string
	Liters float64
	Type   string
	Result float64
}

// NewSimulation builds an unsaved Simulation owned by owner.
func NewSimulation(f SimulationFields, owner userentity.User) Simulation {
	s := Simulation{}.Apply(f)
	s.UserID = owner.ID
	s.User = &owner
	return s
}

// Apply returns a copy of s with its editable fields replaced by f.
// ID, CreatedAt and the owner are carried over unchanged.
func (s Simulation) Apply(f SimulationFields) Simulation {
	s.Title = f.Title
	s.Liters = f.Liters
	s.Type = f.Type
	s.Result = f.Result
	return s
}

func (s Simulation) Fields() SimulationFields {
	return SimulationFields{Title: s.Title, Liters: s.Liters, Type: s.Type, Result: s.Result}
}

// Equal reports whether s and o have the same ID.
func (s Simulation) Equal(o Simulation) bool {
	return s.ID == o.ID
}
