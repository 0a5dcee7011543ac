package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emergy_api/internal/feature/simulations/domain/entity"
	userentity "emergy_api/internal/feature/users/domain/entity"
)

func TestSimulationRequest_Fields(t *testing.T) {
	var req SimulationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Teste","liters":40.5,"type":"gasolina","result":0,"userId":3}`), &req))

	assert.Equal(t, entity.SimulationFields{Title: "Teste", Liters: 40.5, Type: "gasolina", Result: 0}, req.Fields())
	require.NotNil(t, req.UserID)
	assert.Equal(t, uint(3), *req.UserID)
}

func TestSimulationRoundTrip(t *testing.T) {
	owner := userentity.User{ID: 3, Name: "Carlos", Email: "carlos@email.com", Password: "1234"}
	stored := entity.Simulation{
		ID: 8, Title: "Teste", Liters: 40.5, Type: "gasolina", Result: 12,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), UserID: owner.ID, User: &owner,
	}

	res := NewSimulationResponse(stored)
	req := SimulationRequest{Title: res.Title, Liters: &res.Liters, Type: res.Type, Result: &res.Result, UserID: &res.User.ID}
	rebuilt := entity.NewSimulation(req.Fields(), owner)

	assert.Equal(t, stored.Fields(), rebuilt.Fields())
	assert.Zero(t, rebuilt.ID)
	assert.True(t, rebuilt.CreatedAt.IsZero())
}

func TestSimulationResponse_JSON(t *testing.T) {
	owner := userentity.User{ID: 3, Name: "Carlos", Email: "carlos@email.com", Password: "secret", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := entity.Simulation{
		ID: 8, Title: "Teste", Liters: 40.5, Type: "gasolina", Result: 12,
		CreatedAt: time.Date(2025, 3, 7, 17, 5, 9, 0, time.UTC), UserID: 3, User: &owner,
	}

	raw, err := json.Marshal(NewSimulationResponse(s))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 8, "title": "Teste", "liters": 40.5, "type": "gasolina", "result": 12,
		"createdAt": "2025-03-07T17:05:09Z",
		"user": {"id": 3, "name": "Carlos", "email": "carlos@email.com", "birthday": null, "createdAt": "2025-01-01T00:00:00Z"}
	}`, string(raw))
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "simulations", "owner view carries no collections")
}
