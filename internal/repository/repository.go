package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/kitten-service/internal/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// Repository provides database operations
type Repository struct {
	db     *sql.DB
	driver string
}

// NewRepository initializes a new repository. driver selects the schema dialect.
func NewRepository(db *sql.DB, driver string) *Repository {
	return &Repository{db: db, driver: driver}
}

// Ping checks that the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Read back to pick up server-side defaults
	created, err := r.FindUserByID(ctx, user.ID)
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *Repository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateKitten creates a new kitten in the database
func (r *Repository) CreateKitten(ctx context.Context, kitten *models.Kitten) error {
	query := `
		INSERT INTO kittens (name, age, color, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, kitten.Name, kitten.Age, kitten.Color, kitten.OwnerID).
		Scan(&kitten.ID)
	if err != nil {
		return fmt.Errorf("failed to create kitten: %w", err)
	}

	created, err := r.FindKittenByID(ctx, kitten.ID)
	if err != nil {
		return err
	}
	*kitten = *created
	return nil
}

// FindKittenByID retrieves a kitten by id
func (r *Repository) FindKittenByID(ctx context.Context, id int64) (*models.Kitten, error) {
	kitten := &models.Kitten{}
	query := `
		SELECT id, name, age, color, owner_id, created_at
		FROM kittens
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&kitten.ID, &kitten.Name, &kitten.Age, &kitten.Color, &kitten.OwnerID, &kitten.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find kitten: %w", err)
	}
	return kitten, nil
}

// ListKittensByOwner retrieves every kitten owned by the given user, oldest first
func (r *Repository) ListKittensByOwner(ctx context.Context, ownerID int64) ([]models.Kitten, error) {
	query := `
		SELECT id, name, age, color, owner_id, created_at
		FROM kittens
		WHERE owner_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list kittens: %w", err)
	}
	defer rows.Close()

	kittens := []models.Kitten{}
	for rows.Next() {
		var k models.Kitten
		if err := rows.Scan(&k.ID, &k.Name, &k.Age, &k.Color, &k.OwnerID, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kitten: %w", err)
		}
		kittens = append(kittens, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list kittens: %w", err)
	}
	return kittens, nil
}

// DeleteKitten removes a kitten by id
func (r *Repository) DeleteKitten(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kittens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete kitten: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete kitten: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
