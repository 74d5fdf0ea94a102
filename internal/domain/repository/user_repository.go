package repository

import (
	"errors"

	"user-directory-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert or replace would leave
	// two records with the same email. The check and the mutation are a
	// single atomic step inside the repository.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user storage operations.
// The initial backing store is in-memory; the boundary exists so a durable
// store can be swapped in without touching validation logic.
type UserRepository interface {
	Insert(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
	Replace(u *entity.User) error
	Remove(id string) error
}
