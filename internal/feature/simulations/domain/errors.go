// Package domain defines domain-level errors for the simulations feature.
package domain

import "errors"

var (
	// ErrSimulationNotFound indicates that no simulation matched the given id.
	ErrSimulationNotFound = errors.New("simulation not found")

	// ErrOwnerNotFound indicates the store rejected a simulation whose user does not exist.
	ErrOwnerNotFound = errors.New("simulation owner not found")

	// ErrConstraint indicates any other store constraint rejected the write or delete.
	ErrConstraint = errors.New("simulation violates a store constraint")
)
