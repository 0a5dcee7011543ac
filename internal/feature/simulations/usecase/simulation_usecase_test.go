package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emergy_api/internal/feature/simulations/domain"
	"emergy_api/internal/feature/simulations/domain/entity"
	userdomain "emergy_api/internal/feature/users/domain"
	userentity "emergy_api/internal/feature/users/domain/entity"
	"emergy_api/internal/shared/apperr"
)

// mockSimulationRepository is a Func-field mock of SimulationRepository.
type mockSimulationRepository struct {
	FindAllFunc      func(ctx context.Context) ([]entity.Simulation, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.Simulation, error)
	FindByTitleFunc  func(ctx context.Context, title string) ([]entity.Simulation, error)
	FindByUserIDFunc func(ctx context.Context, userID uint) ([]entity.Simulation, error)
	CreateFunc       func(ctx context.Context, s *entity.Simulation) error
	UpdateFunc       func(ctx context.Context, s *entity.Simulation) error
	DeleteFunc       func(ctx context.Context, id uint) error

	calls int
}

func (m *mockSimulationRepository) FindAll(ctx context.Context) ([]entity.Simulation, error) {
	m.calls++
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockSimulationRepository) FindByID(ctx context.Context, id uint) (*entity.Simulation, error) {
	m.calls++
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrSimulationNotFound
}

func (m *mockSimulationRepository) FindByTitle(ctx context.Context, title string) ([]entity.Simulation, error) {
	m.calls++
	if m.FindByTitleFunc != nil {
		return m.FindByTitleFunc(ctx, title)
	}
	return nil, nil
}

func (m *mockSimulationRepository) FindByUserID(ctx context.Context, userID uint) ([]entity.Simulation, error) {
	m.calls++
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSimulationRepository) Create(ctx context.Context, s *entity.Simulation) error {
	m.calls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *mockSimulationRepository) Update(ctx context.Context, s *entity.Simulation) error {
	m.calls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *mockSimulationRepository) Delete(ctx context.Context, id uint) error {
	m.calls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockUserFinder resolves only the users in its map.
type mockUserFinder struct {
	users map[uint]userentity.User
	err   error
	calls int
}

func (m *mockUserFinder) FindByID(ctx context.Context, id uint) (*userentity.User, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return &u, nil
}

var created = time.Date(2025, 3, 7, 17, 5, 9, 0, time.UTC)

func owner() userentity.User {
	return userentity.User{ID: 1, Name: "Carlos", Email: "carlos@email.com"}
}

func finder() *mockUserFinder {
	return &mockUserFinder{users: map[uint]userentity.User{1: owner()}}
}

func stored(id uint) *entity.Simulation {
	u := owner()
	return &entity.Simulation{ID: id, Title: "Teste", Liters: 40, Type: "gasolina", Result: 12.5, CreatedAt: created, UserID: u.ID, User: &u}
}

func input() entity.SimulationFields {
	return entity.SimulationFields{Title: "Viagem", Liters: 30, Type: "etanol", Result: 9}
}

func ptr[T any](v T) *T { return &v }

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperr.KindOf(err), "unexpected error: %v", err)
}

func TestSimulationUsecase_List(t *testing.T) {
	repo := &mockSimulationRepository{FindAllFunc: func(ctx context.Context) ([]entity.Simulation, error) {
		return []entity.Simulation{*stored(1), *stored(2)}, nil
	}}

	sims, err := NewSimulationUsecase(repo, finder()).List(context.Background())

	require.NoError(t, err)
	assert.Len(t, sims, 2)
}

func TestSimulationUsecase_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mockSimulationRepository{FindByIDFunc: func(ctx context.Context, id uint) (*entity.Simulation, error) {
			return stored(id), nil
		}}

		sim, err := NewSimulationUsecase(repo, finder()).GetByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, uint(5), sim.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := NewSimulationUsecase(&mockSimulationRepository{}, finder()).GetByID(context.Background(), 5)

		assertKind(t, err, apperr.KindNotFound)
		assert.EqualError(t, err, "Resource not found: 5: simulation not found")
	})

	t.Run("store failure is not classified", func(t *testing.T) {
		repo := &mockSimulationRepository{FindByIDFunc: func(ctx context.Context, id uint) (*entity.Simulation, error) {
			return nil, errors.New("connection reset")
		}}

		_, err := NewSimulationUsecase(repo, finder()).GetByID(context.Background(), 5)

		assertKind(t, err, apperr.KindUnknown)
	})
}

func TestSimulationUsecase_GetByTitle(t *testing.T) {
	var gotTitle string
	repo := &mockSimulationRepository{FindByTitleFunc: func(ctx context.Context, title string) ([]entity.Simulation, error) {
		gotTitle = title
		return nil, nil
	}}

	sims, err := NewSimulationUsecase(repo, finder()).GetByTitle(context.Background(), "Teste")

	require.NoError(t, err, "no match is not an error")
	assert.Empty(t, sims)
	assert.Equal(t, "Teste", gotTitle)
}

func TestSimulationUsecase_ListByUser(t *testing.T) {
	t.Run("owner exists", func(t *testing.T) {
		repo := &mockSimulationRepository{FindByUserIDFunc: func(ctx context.Context, userID uint) ([]entity.Simulation, error) {
			return []entity.Simulation{*stored(1)}, nil
		}}

		sims, err := NewSimulationUsecase(repo, finder()).ListByUser(context.Background(), 1)

		require.NoError(t, err)
		assert.Len(t, sims, 1)
	})

	t.Run("unknown owner", func(t *testing.T) {
		repo := &mockSimulationRepository{}

		_, err := NewSimulationUsecase(repo, finder()).ListByUser(context.Background(), 9)

		assertKind(t, err, apperr.KindNotFound)
		assert.Zero(t, repo.calls)
	})
}

func TestSimulationUsecase_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockSimulationRepository{CreateFunc: func(ctx context.Context, s *entity.Simulation) error {
			s.ID = 11
			s.CreatedAt = created
			return nil
		}}

		sim, err := NewSimulationUsecase(repo, finder()).Create(context.Background(), ptr(uint(1)), input())

		require.NoError(t, err)
		assert.Equal(t, uint(11), sim.ID)
		assert.Equal(t, uint(1), sim.UserID)
		require.NotNil(t, sim.User)
		assert.Equal(t, "carlos@email.com", sim.User.Email)
		assert.Equal(t, input(), sim.Fields())
	})

	t.Run("nil user id fails before any store call", func(t *testing.T) {
		repo := &mockSimulationRepository{}
		users := finder()

		_, err := NewSimulationUsecase(repo, users).Create(context.Background(), nil, input())

		assertKind(t, err, apperr.KindIntegrity)
		assert.EqualError(t, err, "Data Integrity error: User ID is required for simulation.")
		assert.Zero(t, repo.calls)
		assert.Zero(t, users.calls)
	})

	t.Run("unknown user is not found and nothing is stored", func(t *testing.T) {
		repo := &mockSimulationRepository{}

		_, err := NewSimulationUsecase(repo, finder()).Create(context.Background(), ptr(uint(42)), input())

		assertKind(t, err, apperr.KindNotFound)
		assert.Contains(t, err.Error(), "Resource not found: 42")
		assert.Zero(t, repo.calls)
	})

	t.Run("owner deleted concurrently", func(t *testing.T) {
		repo := &mockSimulationRepository{CreateFunc: func(ctx context.Context, s *entity.Simulation) error {
			return domain.ErrOwnerNotFound
		}}

		_, err := NewSimulationUsecase(repo, finder()).Create(context.Background(), ptr(uint(1)), input())

		assertKind(t, err, apperr.KindNotFound)
	})

	t.Run("other constraint", func(t *testing.T) {
		repo := &mockSimulationRepository{CreateFunc: func(ctx context.Context, s *entity.Simulation) error {
			return domain.ErrConstraint
		}}

		_, err := NewSimulationUsecase(repo, finder()).Create(context.Background(), ptr(uint(1)), input())

		assertKind(t, err, apperr.KindIntegrity)
	})

	t.Run("user lookup failure", func(t *testing.T) {
		users := &mockUserFinder{err: errors.New("timeout")}

		_, err := NewSimulationUsecase(&mockSimulationRepository{}, users).Create(context.Background(), ptr(uint(1)), input())

		assertKind(t, err, apperr.KindUnknown)
	})
}

func TestSimulationUsecase_Update(t *testing.T) {
	t.Run("applies fields and keeps identity", func(t *testing.T) {
		var written entity.Simulation
		repo := &mockSimulationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Simulation, error) { return stored(id), nil },
			UpdateFunc: func(ctx context.Context, s *entity.Simulation) error {
				written = *s
				return nil
			},
		}

		sim, err := NewSimulationUsecase(repo, finder()).Update(context.Background(), 3, input())

		require.NoError(t, err)
		assert.Equal(t, uint(3), written.ID)
		assert.Equal(t, created, written.CreatedAt)
		assert.Equal(t, uint(1), written.UserID)
		assert.Equal(t, input(), sim.Fields())
	})

	t.Run("missing id is not found regardless of input", func(t *testing.T) {
		repo := &mockSimulationRepository{}

		_, err := NewSimulationUsecase(repo, finder()).Update(context.Background(), 3, entity.SimulationFields{})

		assertKind(t, err, apperr.KindNotFound)
	})

	t.Run("constraint on update", func(t *testing.T) {
		repo := &mockSimulationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Simulation, error) { return stored(id), nil },
			UpdateFunc:   func(ctx context.Context, s *entity.Simulation) error { return domain.ErrConstraint },
		}

		_, err := NewSimulationUsecase(repo, finder()).Update(context.Background(), 3, input())

		assertKind(t, err, apperr.KindIntegrity)
		assert.Contains(t, err.Error(), "Violations of database restrictions to update.")
	})

	t.Run("row vanished between read and write", func(t *testing.T) {
		repo := &mockSimulationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Simulation, error) { return stored(id), nil },
			UpdateFunc:   func(ctx context.Context, s *entity.Simulation) error { return domain.ErrSimulationNotFound },
		}

		_, err := NewSimulationUsecase(repo, finder()).Update(context.Background(), 3, input())

		assertKind(t, err, apperr.KindNotFound)
	})
}

func TestSimulationUsecase_Delete(t *testing.T) {
	found := func(ctx context.Context, id uint) (*entity.Simulation, error) { return stored(id), nil }

	tests := []struct {
		name       string
		findByID   func(ctx context.Context, id uint) (*entity.Simulation, error)
		deleteFunc func(ctx context.Context, id uint) error
		wantErr    bool
		wantKind   apperr.Kind
	}{
		{name: "success", findByID: found},
		{name: "missing", wantErr: true, wantKind: apperr.KindNotFound},
		{
			name:       "constraint",
			findByID:   found,
			deleteFunc: func(ctx context.Context, id uint) error { return domain.ErrConstraint },
			wantErr:    true,
			wantKind:   apperr.KindIntegrity,
		},
		{
			name:       "store failure",
			findByID:   found,
			deleteFunc: func(ctx context.Context, id uint) error { return errors.New("broken pipe") },
			wantErr:    true,
			wantKind:   apperr.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSimulationRepository{FindByIDFunc: tt.findByID, DeleteFunc: tt.deleteFunc}

			err := NewSimulationUsecase(repo, finder()).Delete(context.Background(), 2)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assertKind(t, err, tt.wantKind)
		})
	}
}
