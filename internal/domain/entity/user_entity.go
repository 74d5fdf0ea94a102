package entity

import (
	"time"
)

// User is the aggregate root for the directory domain.
// PasswordHash holds an already-hashed credential supplied by the caller;
// this service never hashes and never serializes it outward.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// Clone returns a deep copy so callers never share memory with the store.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.FirstName != nil {
		v := *u.FirstName
		cp.FirstName = &v
	}
	if u.LastName != nil {
		v := *u.LastName
		cp.LastName = &v
	}
	if u.LastLoginAt != nil {
		v := *u.LastLoginAt
		cp.LastLoginAt = &v
	}
	return &cp
}
