package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"user-directory-service/internal/domain/entity"
	"user-directory-service/internal/domain/repository"
	"user-directory-service/pkg/validation"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// ValidationError identifies the field that failed and why. It is always
// raised before any mutation, so a failed operation leaves no trace.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Service owns the user lifecycle: validation, uniqueness, identity
// assignment and timestamps. Transport layers only bind payloads and map
// errors to status codes.
type Service struct {
	Repo   repository.UserRepository
	Logger *logrus.Logger
	now    func() time.Time
}

func NewService(repo repository.UserRepository, logger *logrus.Logger) *Service {
	return &Service{Repo: repo, Logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// CreateUserInput carries all caller-settable fields. PasswordHash is the
// pre-hashed credential; Role defaults to USER when empty.
type CreateUserInput struct {
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Role         entity.Role
}

// UpdateUserInput has full-replace semantics: every mutable field must be
// supplied and overwrites the stored value.
type UpdateUserInput = CreateUserInput

func (in *CreateUserInput) normalize() {
	if in.Role == "" {
		in.Role = entity.RoleUser
	}
}

// validate applies the same per-field rules on create and update.
// Order: email, password, names, role. First failure wins.
func (in *CreateUserInput) validate() error {
	v := validation.Instance()
	if err := v.Var(in.Email, "required,email,max=255"); err != nil {
		return &ValidationError{Field: "email", Message: "must be a valid email of at most 255 characters"}
	}
	if trimmed := strings.TrimSpace(in.PasswordHash); len(trimmed) < 8 || len(trimmed) > 255 {
		return &ValidationError{Field: "password_hash", Message: "must be between 8 and 255 characters"}
	}
	if err := validateName(v, in.FirstName); err != nil {
		return &ValidationError{Field: "first_name", Message: err.Error()}
	}
	if err := validateName(v, in.LastName); err != nil {
		return &ValidationError{Field: "last_name", Message: err.Error()}
	}
	if !in.Role.Valid() {
		return &ValidationError{Field: "role", Message: "must be one of USER ADMIN"}
	}
	return nil
}

func validateName(v *validator.Validate, name *string) error {
	if name == nil {
		return nil
	}
	if err := v.Var(*name, "alphaspace,max=100"); err != nil {
		return errors.New("must contain only letters and spaces, at most 100 characters")
	}
	return nil
}

// Create validates the input, then inserts a fresh record. The repository
// performs the duplicate-email check and the insert as one atomic step.
func (s *Service) Create(in CreateUserInput) (*entity.User, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	u := &entity.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Insert(u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user created")
	}
	return u, nil
}

// List returns all records, or only those matching the role filter when one
// is given. Order follows insertion.
func (s *Service) List(role *entity.Role) ([]*entity.User, error) {
	users, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	if role == nil {
		return users, nil
	}
	filtered := make([]*entity.User, 0, len(users))
	for _, u := range users {
		if u.Role == *role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

func (s *Service) Get(id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Update replaces every mutable field wholesale; ID, CreatedAt, IsActive and
// LastLoginAt are carried over from the stored record. The email uniqueness
// check excludes the record itself, so resubmitting the current email never
// conflicts.
func (s *Service) Update(id string, in UpdateUserInput) (*entity.User, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	prev, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u := &entity.User{
		ID:           prev.ID,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		IsActive:     prev.IsActive,
		CreatedAt:    prev.CreatedAt,
		UpdatedAt:    s.now(),
		LastLoginAt:  prev.LastLoginAt,
	}
	if err := s.Repo.Replace(u); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user updated")
	}
	return u, nil
}

// Delete removes the record permanently; the id is never reused.
func (s *Service) Delete(id string) error {
	if err := s.Repo.Remove(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", id).Info("user deleted")
	}
	return nil
}
