package dto

import (
	"time"

	"emergy_api/internal/feature/simulations/domain/entity"
	userdto "emergy_api/internal/feature/users/transport/http/dto"
)

// SimulationResponse is the public view of a simulation with its owner reduced to a UserResponse.
type SimulationResponse struct {
	ID        uint                  `json:"id"`
	Title     string                `json:"title"`
	Liters    float64               `json:"liters"`
	Type      string                `json:"type"`
	Result    float64               `json:"result"`
	CreatedAt time.Time             `json:"createdAt"`
	User      *userdto.UserResponse `json:"user"`
}

func NewSimulationResponse(s entity.Simulation) SimulationResponse {
	res := SimulationResponse{
		ID:        s.ID,
		Title:     s.Title,
		Liters:    s.Liters,
		Type:      s.Type,
		Result:    s.Result,
		CreatedAt: s.CreatedAt.UTC(),
	}
	if s.User != nil {
		owner := userdto.NewUserResponse(*s.User)
		res.User = &owner
	}
	return res
}

func NewSimulationResponses(sims []entity.Simulation) []SimulationResponse {
	out := make([]SimulationResponse, 0, len(sims))
	for _, s := range sims {
		out = append(out, NewSimulationResponse(s))
	}
	return out
}
