// Package repo contains all database access logic for the Work 2.0 service.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkazala/work20/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StartUpRepo defines the persistence operations for StartUps.
type StartUpRepo interface {
	// Create inserts a new start-up and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, s domain.StartUp) (domain.StartUp, error)

	// GetByID retrieves a single start-up by its UUID primary key.
	// Returns domain.ErrNotFound if no start-up with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.StartUp, error)

	// GetByName retrieves a start-up by case-insensitive name.
	// Returns domain.ErrNotFound if there is none.
	GetByName(ctx context.Context, name string) (domain.StartUp, error)

	// List returns all start-ups ordered by name.
	List(ctx context.Context) ([]domain.StartUp, error)

	// ListPaged returns one page of start-ups ordered by name and the total count.
	// Archived start-ups are counted and listed only when includeArchived is set.
	ListPaged(ctx context.Context, p domain.PaginationParams, includeArchived bool) ([]domain.StartUp, int64, error)

	// Update overwrites the mutable fields of an existing start-up.
	// Returns domain.ErrNotFound if no start-up with that ID exists.
	Update(ctx context.Context, s domain.StartUp) (domain.StartUp, error)

	// Delete removes a start-up by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgStartUpRepo is the Postgres implementation of StartUpRepo.
type pgStartUpRepo struct {
	db db
}

// NewStartUpRepo constructs a StartUpRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStartUpRepo(db db) StartUpRepo {
	return &pgStartUpRepo{db: db}
}

// Postgres SQLSTATEs mapped to domain errors.
const (
	// foreignKeyViolation is raised when a referenced row is deleted.
	foreignKeyViolation = "23503"
	// uniqueViolation is raised when a start-up name is already taken.
	uniqueViolation = "23505"
)

// errNameTaken is returned by writes that hit the unique name index.
var errNameTaken = fmt.Errorf("%w: start-up name already exists", domain.ErrValidation)

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

const startUpColumns = `id, name, logo, url, archived, created_at, updated_at`

func (r *pgStartUpRepo) Create(ctx context.Context, s domain.StartUp) (domain.StartUp, error) {
	const q = `
		INSERT INTO start_ups (name, logo, url, archived)
		VALUES (@name, @logo, @url, @archived)
		RETURNING ` + startUpColumns

	args := pgx.NamedArgs{
		"name":     s.Name,
		"logo":     s.Logo,
		"url":      s.URL,
		"archived": s.Archived,
	}

	result, err := scanStartUp(r.db.QueryRow(ctx, q, args))
	if hasCode(err, uniqueViolation) {
		return domain.StartUp{}, fmt.Errorf("repo.StartUpRepo.Create: %w", errNameTaken)
	}
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("repo.StartUpRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStartUpRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.StartUp, error) {
	const q = `SELECT ` + startUpColumns + ` FROM start_ups WHERE id = @id`

	result, err := scanStartUp(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("repo.StartUpRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStartUpRepo) GetByName(ctx context.Context, name string) (domain.StartUp, error) {
	const q = `SELECT ` + startUpColumns + ` FROM start_ups WHERE lower(name) = lower(@name)`

	result, err := scanStartUp(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("repo.StartUpRepo.GetByName: %w", err)
	}
	return result, nil
}

func (r *pgStartUpRepo) List(ctx context.Context) ([]domain.StartUp, error) {
	const q = `SELECT ` + startUpColumns + ` FROM start_ups ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.StartUpRepo.List: %w", err)
	}
	out, err := collectStartUps(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.StartUpRepo.List: %w", err)
	}
	return out, nil
}

// ListPaged uses a window count so the page and the total come from one query.
func (r *pgStartUpRepo) ListPaged(ctx context.Context, p domain.PaginationParams, includeArchived bool) ([]domain.StartUp, int64, error) {
	const q = `
		SELECT ` + startUpColumns + `, count(*) OVER () AS total
		FROM start_ups
		WHERE @all OR NOT archived
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"all": includeArchived, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.StartUpRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		out   = []domain.StartUp{}
		total int64
	)
	for rows.Next() {
		var (
			s  domain.StartUp
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &s.Name, &s.Logo, &s.URL, &s.Archived, &s.CreatedAt, &s.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("repo.StartUpRepo.ListPaged: scan: %w", err)
		}
		s.ID = uuid.UUID(id.Bytes)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.StartUpRepo.ListPaged: rows: %w", err)
	}
	return out, total, nil
}

func (r *pgStartUpRepo) Update(ctx context.Context, s domain.StartUp) (domain.StartUp, error) {
	const q = `
		UPDATE start_ups
		SET name       = @name,
		    logo       = @logo,
		    url        = @url,
		    archived   = @archived,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + startUpColumns

	args := pgx.NamedArgs{
		"id":       s.ID,
		"name":     s.Name,
		"logo":     s.Logo,
		"url":      s.URL,
		"archived": s.Archived,
	}

	result, err := scanStartUp(r.db.QueryRow(ctx, q, args))
	if hasCode(err, uniqueViolation) {
		return domain.StartUp{}, fmt.Errorf("repo.StartUpRepo.Update: %w", errNameTaken)
	}
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("repo.StartUpRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStartUpRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM start_ups WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		if hasCode(err, foreignKeyViolation) {
			return fmt.Errorf("repo.StartUpRepo.Delete: %w: start-up has internships", domain.ErrValidation)
		}
		return fmt.Errorf("repo.StartUpRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StartUpRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStartUp(s scanner) (domain.StartUp, error) {
	var (
		su domain.StartUp
		id pgtype.UUID
	)
	err := s.Scan(&id, &su.Name, &su.Logo, &su.URL, &su.Archived, &su.CreatedAt, &su.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StartUp{}, domain.ErrNotFound
		}
		return domain.StartUp{}, err
	}
	su.ID = uuid.UUID(id.Bytes)
	return su, nil
}

func collectStartUps(rows pgx.Rows) ([]domain.StartUp, error) {
	defer rows.Close()

	out := []domain.StartUp{}
	for rows.Next() {
		s, err := scanStartUp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
