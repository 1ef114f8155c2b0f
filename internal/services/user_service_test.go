package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk-be/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T, name string) *UserService {
	t.Helper()
	db := testutil.OpenTestDB(t, name)
	// MinCost keeps hashing fast in tests; production uses cost 10.
	return NewUserService(db, bcrypt.MinCost)
}

func TestCreateUser(t *testing.T) {
	svc := newUserService(t, "users_create")
	ctx := context.Background()

	role := "admin"
	user, err := svc.CreateUser(ctx, "Ann", "a@x.com", "secret1", &role)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	require.NotNil(t, user.Role)
	assert.Equal(t, "admin", *user.Role)
	assert.Empty(t, user.PasswordHash, "public projection must not carry the hash")
	assert.False(t, user.CreatedAt.IsZero())
}

func TestCreateUser_NilRole(t *testing.T) {
	svc := newUserService(t, "users_nilrole")

	user, err := svc.CreateUser(context.Background(), "Bob", "b@x.com", "pw", nil)
	require.NoError(t, err)
	assert.Nil(t, user.Role)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := newUserService(t, "users_dup")
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Ann", "a@x.com", "secret1", nil)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "Other Ann", "a@x.com", "secret2", nil)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc := newUserService(t, "users_missing")

	_, err := svc.GetUserByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticateUser(t *testing.T) {
	svc := newUserService(t, "users_authn")
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "Ann", "a@x.com", "secret1", nil)
	require.NoError(t, err)

	user, err := svc.AuthenticateUser(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, created.Email, user.Email)
	assert.Empty(t, user.PasswordHash)
}

// Wrong password and unknown email must be indistinguishable to callers.
func TestAuthenticateUser_InvalidCredentials(t *testing.T) {
	svc := newUserService(t, "users_badcreds")
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Ann", "a@x.com", "secret1", nil)
	require.NoError(t, err)

	_, wrongPw := svc.AuthenticateUser(ctx, "a@x.com", "wrong")
	_, unknown := svc.AuthenticateUser(ctx, "nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPw, unknown)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("secret1")))
	assert.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("secret2")))
}
