// Package dto defines data transfer objects for the simulations feature's HTTP transport layer.
package dto

import "emergy_api/internal/feature/simulations/domain/entity"

// SimulationRequest is the body of POST /simulations and PUT /simulations/:id.
// Pointers distinguish a missing number from zero.
type SimulationRequest struct {
	Title  string   `json:"title" binding:"required,notblank,min=3,max=80"`
	Liters *float64 `json:"liters" binding:"required,gt=0"`
	Type   string   `json:"type" binding:"required,notblank"`
	Result *float64 `json:"result" binding:"required,gte=0"`
	UserID *uint    `json:"userId" binding:"required"`
}

// Fields maps the request onto the editable attributes of a simulation.
// Call it only after binding succeeded.
func (r SimulationRequest) Fields() entity.SimulationFields {
	f := entity.SimulationFields{Title: r.Title, Type: r.Type}
	if r.Liters != nil {
		f.Liters = *r.Liters
	}
	if r.Result != nil {
		f.Result = *r.Result
	}
	return f
}
