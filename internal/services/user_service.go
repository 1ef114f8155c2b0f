package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskdesk/taskdesk-be/internal/database"
	"github.com/taskdesk/taskdesk-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateEmail is returned when registering an email that already
	// has an account. Exactly one user exists per email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password. Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, name, email, password string, role *string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
}

// UserService provides registration and credential verification over the
// user table.
type UserService struct {
	db         *sql.DB
	bcryptCost int
}

// NewUserService creates a new UserService hashing passwords at the given
// bcrypt cost.
func NewUserService(db *sql.DB, bcryptCost int) *UserService {
	return &UserService{db: db, bcryptCost: bcryptCost}
}

// CreateUser hashes the password and inserts a new user. A unique-constraint
// violation on the email column is mapped to ErrDuplicateEmail. On success
// the freshly inserted row is re-read and returned without its hash.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string, role *string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)",
		name, email, string(hashedPassword), role)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves the public projection of a user. The password hash
// is never selected.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, role, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// getUserByEmail retrieves a user including the password hash. Kept
// unexported so the hash never leaves this package.
func (s *UserService) getUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// AuthenticateUser verifies a user's credentials. An unknown email and a
// password mismatch both yield ErrInvalidCredentials so responses stay
// indistinguishable.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
