// Package entity defines the domain entities for the users feature.
package entity

import "time"

// User represents a registered person who owns fuel-consumption simulations.
// The simulations a user owns are not held here; they are looked up by user id.
type User struct {
	// ID is assigned by the database on insert and never changes.
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"size:80;not null"`

	// Email must be unique across all users. The unique index is the
	// authoritative guard; usecases only pre-check it.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is stored as given.
	Password string `gorm:"size:255;not null"`

	// Birthday is optional and carries a calendar date only.
	Birthday *time.Time `gorm:"type:date"`

	// CreatedAt is written once on insert.
	CreatedAt time.Time `gorm:"<-:create"`
}

// TableName pins the table name used by gorm.
func (User) TableName() string {
	return "users"
}

// UserFields are the user-editable attributes of a User.
type UserFields struct {
	Name     string
	Email    string
	Password string
	Birthday *time.Time
}

// NewUser builds an unsaved User from f. ID and CreatedAt stay zero until persisted.
func NewUser(f UserFields) User {
	return User{}.Apply(f)
}

// Apply returns a copy of u with its editable fields replaced by f.
// ID and CreatedAt are carried over unchanged.
func (u User) Apply(f UserFields) User {
	u.Name = f.Name
	u.Email = f.Email
	u.Password = f.Password
	u.Birthday = copyDate(f.Birthday)
	return u
}

// Fields returns the editable attributes of u.
func (u User) Fields() UserFields {
	return UserFields{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		Birthday: copyDate(u.Birthday),
	}
}

// Equal reports whether u and o are the same user: same ID and same email.
func (u User) Equal(o User) bool {
	return u.ID == o.ID && u.Email == o.Email
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := *t
	return &d
}
