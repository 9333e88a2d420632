package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/file-comparator/internal/models"
)

// UserRepo persists user accounts. Users are created on registration and
// never mutated or deleted afterwards.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo returns a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Create inserts a user with an already-hashed password and returns it.
// Duplicate username or email surfaces as a *pq.Error with code 23505.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, email, passwordHash).
		Scan(&user.ID, &user.Username, &user.Email)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID returns a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByUsername returns a user by username, including the password hash
// for credential verification.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash)

	if err != nil {
		return nil, err
	}

	return user, nil
}
