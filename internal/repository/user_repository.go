package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"memories/internal/models"
)

const userColumns = `user_id, email, name, password_hash, google_id, created_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (user_id, email, name, password_hash, google_id, created_at)
		VALUES (:user_id, :email, :name, :password_hash, :google_id, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// GetUserByGoogleIDOrEmail prefers the account already linked to googleID.
func (r *userRepository) GetUserByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*models.User, error) {
	var user models.User

	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE google_id = $1 OR email = $2
		ORDER BY (google_id = $1) DESC NULLS LAST
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &user, query, googleID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with google id %s: %w", googleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by google id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	query := `UPDATE users SET google_id = $1 WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, googleID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("google id %s: %w", googleID, ErrDuplicate)
		}
		return fmt.Errorf("failed to link google id: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s: %w", userID, ErrNotFound)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
