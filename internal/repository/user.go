package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/model"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
)

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

type UserRepository interface {
	WithDB(db db.DB) UserRepository
	CreateUser(ctx context.Context, params CreateUserParams) (model.User, error)
	GetUserByID(ctx context.Context, id int64) (model.User, error)
	// GetUserByIdentifier matches username or email, preferring a username match.
	GetUserByIdentifier(ctx context.Context, identifier string) (model.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
}

type userRepository struct {
	db db.DB
}

func NewUserRepository(db db.DB) UserRepository {
	return &userRepository{db: db}
}

func (r userRepository) WithDB(db db.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, created_at, updated_at`

type userRow struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRepository) CreateUser(ctx context.Context, params CreateUserParams) (model.User, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES (@username, @email, @password_hash)
		RETURNING `+userColumns,
		pgx.NamedArgs{
			"username":      params.Username,
			"email":         params.Email,
			"password_hash": params.PasswordHash,
		})
	if err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}

	user, err := collectUser(rows)
	if err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r userRepository) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = @id`,
		pgx.NamedArgs{"id": id})
	if err != nil {
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}

	user, err := collectUser(rows)
	if err != nil {
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (r userRepository) GetUserByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = @identifier OR email = @identifier
		ORDER BY (username = @identifier) DESC
		LIMIT 1`,
		pgx.NamedArgs{"identifier": identifier})
	if err != nil {
		return model.User{}, fmt.Errorf("get user by identifier: %w", err)
	}

	user, err := collectUser(rows)
	if err != nil {
		return model.User{}, fmt.Errorf("get user by identifier: %w", err)
	}
	return user, nil
}

func (r userRepository) UserExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE username = @username OR email = @email
		)`,
		pgx.NamedArgs{"username": username, "email": email},
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func collectUser(rows pgx.Rows) (model.User, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return model.User{}, err
	}

	return model.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
