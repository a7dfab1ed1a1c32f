package admin

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso à tabela de admins.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create insere um admin e devolve a linha criada.
func (r *Repository) Create(ctx context.Context, name, email, passwordHash string) (Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var a Admin
	err := r.db.QueryRow(ctx, `
		INSERT INTO admins (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, created_at
	`, name, email, passwordHash).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Admin{}, ErrEmailExists
		}
		return Admin{}, err
	}

	return a, nil
}

// GetByEmail devolve o admin e o hash da senha para verificação.
func (r *Repository) GetByEmail(ctx context.Context, email string) (Admin, string, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var a Admin
	var hash string
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM admins
		WHERE email = $1
	`, email).Scan(&a.ID, &a.Name, &a.Email, &hash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, "", ErrNotFound
		}
		return Admin{}, "", err
	}

	return a, hash, nil
}

// GetByID devolve o admin pelo identificador.
func (r *Repository) GetByID(ctx context.Context, id int64) (Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var a Admin
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, created_at
		FROM admins
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, err
	}

	return a, nil
}
