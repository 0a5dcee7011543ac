// Package adapters provides the gorm-backed repository for the users feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"emergy_api/internal/feature/users/domain"
	"emergy_api/internal/feature/users/domain/entity"
	"emergy_api/internal/feature/users/usecase"
	"emergy_api/internal/platform/db"
)

// userPostgres implements usecase.UserRepository with gorm.
type userPostgres struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserRepository creates a user repository on the given connection.
func NewUserRepository(gdb *gorm.DB) *userPostgres {
	return &userPostgres{db: gdb}
}

// FindAll returns every user ordered by id.
func (r *userPostgres) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID returns domain.ErrUserNotFound if no row has the id.
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail returns domain.ErrUserNotFound if no row has the email.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userPostgres) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ExistsByEmail reports whether a row with the email exists.
func (r *userPostgres) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts u. ID and CreatedAt are filled in by the database.
// A unique index violation on email is reported as domain.ErrEmailAlreadyExists.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// Update writes the editable columns of u and reloads it, in one transaction.
// id and created_at are never written.
func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.User{}).Where("id = ?", u.ID).Updates(map[string]any{
			"name":     u.Name,
			"email":    u.Email,
			"password": u.Password,
			"birthday": u.Birthday,
		})
		if res.Error != nil {
			if db.IsUniqueViolation(res.Error) {
				return domain.ErrEmailAlreadyExists
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		if err := tx.Where("id = ?", u.ID).First(u).Error; err != nil {
			return fmt.Errorf("reload user %d: %w", u.ID, err)
		}
		return nil
	})
}

// Delete removes the user with id. A foreign key violation from owned
// simulations is reported as domain.ErrUserReferenced.
func (r *userPostgres) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if res.Error != nil {
		if db.IsForeignKeyViolation(res.Error) {
			return domain.ErrUserReferenced
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
