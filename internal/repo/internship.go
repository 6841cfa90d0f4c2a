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

// InternshipRepo defines the persistence operations for Internships.
type InternshipRepo interface {
	// Create inserts a new internship and returns the persisted record.
	// Returns domain.ErrValidation if StartUpID does not reference a start-up.
	Create(ctx context.Context, in domain.Internship) (domain.Internship, error)

	// GetByID retrieves a single internship by its UUID.
	// Returns domain.ErrNotFound if no internship with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Internship, error)

	// List returns all internships, newest first.
	List(ctx context.Context) ([]domain.Internship, error)

	// ListByStartUpID returns the internships of one start-up, newest first.
	ListByStartUpID(ctx context.Context, startUpID uuid.UUID) ([]domain.Internship, error)

	// Update overwrites the mutable fields of an internship.
	// Returns domain.ErrNotFound if no internship with that ID exists.
	Update(ctx context.Context, in domain.Internship) (domain.Internship, error)

	// Delete removes an internship by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgInternshipRepo struct {
	db db
}

// NewInternshipRepo constructs an InternshipRepo backed by the provided db connection.
func NewInternshipRepo(db db) InternshipRepo {
	return &pgInternshipRepo{db: db}
}

const internshipColumns = `
	id, start_up_id, name, type, industries, deadline, description,
	duration, duration_short, salary_active, salary, location_active, location,
	required_experiences_active, required_experiences, link, archived,
	created_at, updated_at`

func internshipArgs(in domain.Internship) pgx.NamedArgs {
	industries := in.Industries
	if industries == nil {
		industries = []string{}
	}
	return pgx.NamedArgs{
		"id":                          in.ID,
		"start_up_id":                 in.StartUpID,
		"name":                        in.Name,
		"type":                        in.Type,
		"industries":                  industries,
		"deadline":                    in.Deadline,
		"description":                 in.Description,
		"duration":                    in.Duration,
		"duration_short":              in.DurationShort,
		"salary_active":               in.SalaryActive,
		"salary":                      in.Salary,
		"location_active":             in.LocationActive,
		"location":                    in.Location,
		"required_experiences_active": in.RequiredExperiencesActive,
		"required_experiences":        in.RequiredExperiences,
		"link":                        in.Link,
		"archived":                    in.Archived,
	}
}

func (r *pgInternshipRepo) Create(ctx context.Context, in domain.Internship) (domain.Internship, error) {
	const q = `
		INSERT INTO internships (
			start_up_id, name, type, industries, deadline, description,
			duration, duration_short, salary_active, salary, location_active, location,
			required_experiences_active, required_experiences, link, archived)
		VALUES (
			@start_up_id, @name, @type, @industries, @deadline, @description,
			@duration, @duration_short, @salary_active, @salary, @location_active, @location,
			@required_experiences_active, @required_experiences, @link, @archived)
		RETURNING ` + internshipColumns

	result, err := scanInternship(r.db.QueryRow(ctx, q, internshipArgs(in)))
	if err != nil {
		return domain.Internship{}, fmt.Errorf("repo.InternshipRepo.Create: %w", mapInternshipErr(err))
	}
	return result, nil
}

func (r *pgInternshipRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Internship, error) {
	const q = `SELECT ` + internshipColumns + ` FROM internships WHERE id = @id`

	result, err := scanInternship(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Internship{}, fmt.Errorf("repo.InternshipRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgInternshipRepo) List(ctx context.Context) ([]domain.Internship, error) {
	const q = `SELECT ` + internshipColumns + ` FROM internships ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.InternshipRepo.List: %w", err)
	}
	out, err := collectInternships(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.InternshipRepo.List: %w", err)
	}
	return out, nil
}

func (r *pgInternshipRepo) ListByStartUpID(ctx context.Context, startUpID uuid.UUID) ([]domain.Internship, error) {
	const q = `
		SELECT ` + internshipColumns + `
		FROM internships
		WHERE start_up_id = @start_up_id
		ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"start_up_id": startUpID})
	if err != nil {
		return nil, fmt.Errorf("repo.InternshipRepo.ListByStartUpID: %w", err)
	}
	out, err := collectInternships(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.InternshipRepo.ListByStartUpID: %w", err)
	}
	return out, nil
}

func (r *pgInternshipRepo) Update(ctx context.Context, in domain.Internship) (domain.Internship, error) {
	const q = `
		UPDATE internships
		SET start_up_id                 = @start_up_id,
		    name                        = @name,
		    type                        = @type,
		    industries                  = @industries,
		    deadline                    = @deadline,
		    description                 = @description,
		    duration                    = @duration,
		    duration_short              = @duration_short,
		    salary_active               = @salary_active,
		    salary                      = @salary,
		    location_active             = @location_active,
		    location                    = @location,
		    required_experiences_active = @required_experiences_active,
		    required_experiences        = @required_experiences,
		    link                        = @link,
		    archived                    = @archived,
		    updated_at                  = now()
		WHERE id = @id
		RETURNING ` + internshipColumns

	result, err := scanInternship(r.db.QueryRow(ctx, q, internshipArgs(in)))
	if err != nil {
		return domain.Internship{}, fmt.Errorf("repo.InternshipRepo.Update: %w", mapInternshipErr(err))
	}
	return result, nil
}

func (r *pgInternshipRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM internships WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.InternshipRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.InternshipRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// mapInternshipErr turns a foreign key violation on start_up_id into a
// validation error so handlers answer 422 instead of 500.
func mapInternshipErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: start_up_id does not reference a start-up", domain.ErrValidation)
	}
	return err
}

func scanInternship(s scanner) (domain.Internship, error) {
	var (
		in          domain.Internship
		id, startID pgtype.UUID
	)
	err := s.Scan(
		&id, &startID, &in.Name, &in.Type, &in.Industries, &in.Deadline, &in.Description,
		&in.Duration, &in.DurationShort, &in.SalaryActive, &in.Salary, &in.LocationActive, &in.Location,
		&in.RequiredExperiencesActive, &in.RequiredExperiences, &in.Link, &in.Archived,
		&in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Internship{}, domain.ErrNotFound
		}
		return domain.Internship{}, err
	}
	in.ID = uuid.UUID(id.Bytes)
	in.StartUpID = uuid.UUID(startID.Bytes)
	if in.Industries == nil {
		in.Industries = []string{}
	}
	return in, nil
}

func collectInternships(rows pgx.Rows) ([]domain.Internship, error) {
	defer rows.Close()

	out := []domain.Internship{}
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
