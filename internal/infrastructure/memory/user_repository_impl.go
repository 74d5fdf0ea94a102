package memory

import (
	"sync"

	"user-directory-service/internal/domain/entity"
	"user-directory-service/internal/domain/repository"
)

// UserRepository is a process-local store: a map keyed by id plus an
// insertion-order slice and an email index, all guarded by one mutex.
// The duplicate-email check and the mutation happen under the same lock,
// so concurrent creates cannot both pass the check.
//
// Records are cloned on the way in and out; callers never hold a pointer
// into the store.
type UserRepository struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	order  []string
	emails map[string]string // email -> id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[string]*entity.User),
		emails: make(map[string]string),
	}
}

func (r *UserRepository) Insert(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[u.Email]; taken {
		return repository.ErrDuplicateEmail
	}
	r.users[u.ID] = u.Clone()
	r.order = append(r.order, u.ID)
	r.emails[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.users[id].Clone(), nil
}

// List returns all records in insertion order.
func (r *UserRepository) List() ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id].Clone())
	}
	return out, nil
}

// Replace overwrites the record with the same ID wholesale. The email
// uniqueness check excludes the record itself, so keeping the same email
// on update is never a conflict.
func (r *UserRepository) Replace(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if id, taken := r.emails[u.Email]; taken && id != u.ID {
		return repository.ErrDuplicateEmail
	}
	delete(r.emails, prev.Email)
	r.users[u.ID] = u.Clone()
	r.emails[u.Email] = u.ID
	return nil
}

func (r *UserRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	delete(r.emails, u.Email)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
