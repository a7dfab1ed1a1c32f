package field

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso à tabela global de campos.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const fieldColumns = "id, key, label, field_type, created_at"

func scanField(row pgx.Row) (Field, error) {
	var f Field
	err := row.Scan(&f.ID, &f.Key, &f.Label, &f.FieldType, &f.CreatedAt)
	return f, err
}

// List devolve todos os campos em ordem de criação.
func (r *Repository) List(ctx context.Context) ([]Field, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+fieldColumns+` FROM fields ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []Field{}
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// Create insere um campo; key duplicada vira ErrKeyExists.
func (r *Repository) Create(ctx context.Context, input CreateInput) (Field, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	f, err := scanField(r.db.QueryRow(ctx, `
		INSERT INTO fields (key, label, field_type)
		VALUES ($1, $2, $3)
		RETURNING `+fieldColumns+`
	`, input.Key, input.Label, input.FieldType))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Field{}, ErrKeyExists
		}
		return Field{}, err
	}
	return f, nil
}

// GetByID devolve o campo pelo identificador.
func (r *Repository) GetByID(ctx context.Context, id int64) (Field, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	f, err := scanField(r.db.QueryRow(ctx, `SELECT `+fieldColumns+` FROM fields WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Field{}, ErrNotFound
		}
		return Field{}, err
	}
	return f, nil
}

// Update aplica o patch de label/field_type.
func (r *Repository) Update(ctx context.Context, id int64, patch Patch) (Field, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var sets []string
	var args []any

	if patch.Label != nil {
		args = append(args, *patch.Label)
		sets = append(sets, fmt.Sprintf("label = $%d", len(args)))
	}
	if patch.FieldType != nil {
		args = append(args, *patch.FieldType)
		sets = append(sets, fmt.Sprintf("field_type = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE fields SET %s WHERE id = $%d RETURNING `+fieldColumns,
		strings.Join(sets, ", "), len(args))

	f, err := scanField(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Field{}, ErrNotFound
		}
		return Field{}, err
	}
	return f, nil
}

// Delete remove o campo.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM fields WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountReferences conta quantos cargos usam o campo.
func (r *Repository) CountReferences(ctx context.Context, fieldID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM position_required_fields WHERE field_id = $1
	`, fieldID).Scan(&count)
	return count, err
}
