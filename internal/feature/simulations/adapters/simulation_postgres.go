// Package adapters provides the gorm-backed repository for the simulations feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"emergy_api/internal/feature/simulations/domain"
	"emergy_api/internal/feature/simulations/domain/entity"
	"emergy_api/internal/feature/simulations/usecase"
	userentity "emergy_api/internal/feature/users/domain/entity"
	"emergy_api/internal/platform/db"
)

// SimulationModel is the gorm model of the simulations table.
// Deleting a user is restricted while any of its simulations exist.
type SimulationModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:80;not null;index"`
	Liters    float64   `gorm:"not null"`
	Type      string    `gorm:"size:80;not null"`
	Result    float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"<-:create"`

	UserID uint            `gorm:"not null;index"`
	User   userentity.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (SimulationModel) TableName() string {
	return "simulations"
}

func toModel(s entity.Simulation) SimulationModel {
	return SimulationModel{
		ID:        s.ID,
		Title:     s.Title,
		Liters:    s.Liters,
		Type:      s.Type,
		Result:    s.Result,
		CreatedAt: s.CreatedAt,
		UserID:    s.UserID,
	}
}

func (m SimulationModel) toEntity() entity.Simulation {
	owner := m.User
	return entity.Simulation{
		ID:        m.ID,
		Title:     m.Title,
		Liters:    m.Liters,
		Type:      m.Type,
		Result:    m.Result,
		CreatedAt: m.CreatedAt,
		UserID:    m.UserID,
		User:      &owner,
	}
}

type simulationPostgres struct {
	db *gorm.DB
}

var _ usecase.SimulationRepository = (*simulationPostgres)(nil)

func NewSimulationRepository(gdb *gorm.DB) *simulationPostgres {
	return &simulationPostgres{db: gdb}
}

func (r *simulationPostgres) FindAll(ctx context.Context) ([]entity.Simulation, error) {
	return find(r.db.WithContext(ctx))
}

// FindByTitle matches title exactly, case included.
func (r *simulationPostgres) FindByTitle(ctx context.Context, title string) ([]entity.Simulation, error) {
	return find(r.db.WithContext(ctx).Where("title = ?", title))
}

func (r *simulationPostgres) FindByUserID(ctx context.Context, userID uint) ([]entity.Simulation, error) {
	return find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func find(q *gorm.DB) ([]entity.Simulation, error) {
	var rows []SimulationModel
	if err := q.Preload("User").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Simulation, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// FindByID returns domain.ErrSimulationNotFound if no row has the id.
func (r *simulationPostgres) FindByID(ctx context.Context, id uint) (*entity.Simulation, error) {
	return first(r.db.WithContext(ctx), id)
}

func first(q *gorm.DB, id uint) (*entity.Simulation, error) {
	var m SimulationModel
	if err := q.Preload("User").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSimulationNotFound
		}
		return nil, err
	}
	s := m.toEntity()
	return &s, nil
}

// Create inserts s without touching its owner row and fills in ID and CreatedAt.
func (r *simulationPostgres) Create(ctx context.Context, s *entity.Simulation) error {
	if s == nil {
		return errors.New("simulation is nil")
	}
	m := toModel(*s)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translateWrite(err, domain.ErrOwnerNotFound)
	}
	s.ID = m.ID
	s.CreatedAt = m.CreatedAt
	return nil
}

// Update writes title, liters, type and result of s and reloads it with its owner.
// user_id and created_at are never written.
func (r *simulationPostgres) Update(ctx context.Context, s *entity.Simulation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&SimulationModel{}).Where("id = ?", s.ID).Updates(map[string]any{
			"title":  s.Title,
			"liters": s.Liters,
			"type":   s.Type,
			"result": s.Result,
		})
		if res.Error != nil {
			return translateWrite(res.Error, domain.ErrConstraint)
		}
		if res.RowsAffected == 0 {
			return domain.ErrSimulationNotFound
		}
		reloaded, err := first(tx, s.ID)
		if err != nil {
			return fmt.Errorf("reload simulation %d: %w", s.ID, err)
		}
		*s = *reloaded
		return nil
	})
}

func (r *simulationPostgres) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&SimulationModel{}, id)
	if res.Error != nil {
		return translateWrite(res.Error, domain.ErrConstraint)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSimulationNotFound
	}
	return nil
}

// translateWrite maps constraint violations to domain errors. A foreign key
// violation becomes onForeignKey; a unique violation becomes domain.ErrConstraint.
func translateWrite(err, onForeignKey error) error {
	switch {
	case db.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", onForeignKey, err)
	case db.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrConstraint, err)
	}
	return err
}
