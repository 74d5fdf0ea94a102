package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-directory-service/internal/domain/entity"
	"user-directory-service/internal/infrastructure/memory"
)

func newTestService() *Service {
	svc := NewService(memory.NewUserRepository(), nil)
	// deterministic clock: each call advances by one second
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	return svc
}

func strptr(s string) *string { return &s }

func validInput() CreateUserInput {
	return CreateUserInput{
		Email:        "a@example.com",
		PasswordHash: "longenough1",
	}
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService()

	u, err := svc.Create(validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.Nil(t, u.FirstName)
	assert.Nil(t, u.LastLoginAt)
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		name   string
		mutate func(*CreateUserInput)
		field  string
	}{
		{"malformed email", func(in *CreateUserInput) { in.Email = "not-an-email" }, "email"},
		{"empty email", func(in *CreateUserInput) { in.Email = "" }, "email"},
		{"short password", func(in *CreateUserInput) { in.PasswordHash = "short" }, "password_hash"},
		{"whitespace password", func(in *CreateUserInput) { in.PasswordHash = "        " }, "password_hash"},
		{"digit in first name", func(in *CreateUserInput) { in.FirstName = strptr("John3") }, "first_name"},
		{"symbol in last name", func(in *CreateUserInput) { in.LastName = strptr("D0e!") }, "last_name"},
		{"unknown role", func(in *CreateUserInput) { in.Role = entity.Role("ROOT") }, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	// failed creates leave the directory empty
	all, err := svc.List(nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateAcceptsSpacedNames(t *testing.T) {
	svc := newTestService()
	in := validInput()
	in.FirstName = strptr("John Paul")
	in.LastName = strptr("Van Der Berg")

	u, err := svc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, "John Paul", *u.FirstName)
}

func TestCreateLengthLimits(t *testing.T) {
	svc := newTestService()

	long := make([]byte, 130)
	for i := range long {
		long[i] = 'a'
	}

	in := validInput()
	in.FirstName = strptr(string(long))
	_, err := svc.Create(in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "first_name", verr.Field)

	in = validInput()
	in.Email = string(long) + string(long) + "a@example.com" // > 255
	_, err = svc.Create(in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := newTestService()

	first, err := svc.Create(validInput())
	require.NoError(t, err)

	in := validInput()
	in.PasswordHash = "differenthash"
	_, err = svc.Create(in)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// existing record untouched, no new record created
	all, lerr := svc.List(nil)
	require.NoError(t, lerr)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, "longenough1", all[0].PasswordHash)
}

func TestGetIsIdempotent(t *testing.T) {
	svc := newTestService()
	u, err := svc.Create(validInput())
	require.NoError(t, err)

	a, err := svc.Get(u.ID)
	require.NoError(t, err)
	b, err := svc.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = svc.Get("nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListRoleFilter(t *testing.T) {
	svc := newTestService()

	for i, in := range []CreateUserInput{
		{Email: "u1@example.com", PasswordHash: "longenough1"},
		{Email: "u2@example.com", PasswordHash: "longenough1", Role: entity.RoleAdmin},
		{Email: "u3@example.com", PasswordHash: "longenough1"},
	} {
		_, err := svc.Create(in)
		require.NoError(t, err, "create %d", i)
	}

	all, err := svc.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	admin := entity.RoleAdmin
	admins, err := svc.List(&admin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "u2@example.com", admins[0].Email)
}

func TestUpdateFullReplace(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(CreateUserInput{
		Email:        "a@example.com",
		PasswordHash: "longenough1",
		FirstName:    strptr("John"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, UpdateUserInput{
		Email:        "b@example.com",
		PasswordHash: "anotherhash",
		Role:         entity.RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "b@example.com", updated.Email)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
	// full-replace: the omitted first name is gone, not merged
	assert.Nil(t, updated.FirstName)
	assert.True(t, updated.IsActive)
}

func TestUpdateValidation(t *testing.T) {
	svc := newTestService()
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	in := validInput()
	in.FirstName = strptr("John3")
	_, err = svc.Update(created.ID, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "first_name", verr.Field)

	// validation failure mutates nothing
	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestUpdateEmailUniqueness(t *testing.T) {
	svc := newTestService()

	a, err := svc.Create(CreateUserInput{Email: "a@example.com", PasswordHash: "longenough1"})
	require.NoError(t, err)
	_, err = svc.Create(CreateUserInput{Email: "b@example.com", PasswordHash: "longenough1"})
	require.NoError(t, err)

	// keeping your own email is never a conflict
	_, err = svc.Update(a.ID, UpdateUserInput{Email: "a@example.com", PasswordHash: "longenough1"})
	assert.NoError(t, err)

	// taking someone else's is
	_, err = svc.Update(a.ID, UpdateUserInput{Email: "b@example.com", PasswordHash: "longenough1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.Update("missing", validInput())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteFinality(t *testing.T) {
	svc := newTestService()
	u, err := svc.Create(validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(u.ID))

	_, err = svc.Get(u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.Update(u.ID, validInput())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(u.ID), ErrUserNotFound)
}
