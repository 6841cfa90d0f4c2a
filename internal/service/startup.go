// Package service contains the business logic for the Work 2.0 service.
// Services normalise and validate input, store uploaded logos, keep the list
// cache coherent with writes, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkazala/work20/internal/cache"
	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/repo"
	"github.com/pkazala/work20/internal/storage"
)

// StartUpInput is a start-up write. When Upload is set, the logo file is
// stored first and its URL replaces StartUp.Logo; otherwise StartUp.Logo is
// kept as the existing reference.
type StartUpInput struct {
	StartUp domain.StartUp
	Upload  *storage.Upload
}

// StartUpService implements business logic for StartUp operations.
type StartUpService struct {
	startUps    repo.StartUpRepo
	internships repo.InternshipRepo
	cache       cache.Store
	logos       storage.LogoStore
	log         *slog.Logger
}

// NewStartUpService constructs a StartUpService. Pass cache.Nop{} to run
// without Redis.
func NewStartUpService(startUps repo.StartUpRepo, internships repo.InternshipRepo, c cache.Store, logos storage.LogoStore, log *slog.Logger) *StartUpService {
	return &StartUpService{startUps: startUps, internships: internships, cache: c, logos: logos, log: log}
}

// Create stores the logo upload (if any), validates and persists a new start-up.
func (s *StartUpService) Create(ctx context.Context, in StartUpInput) (domain.StartUp, error) {
	su, err := s.prepare(ctx, in)
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("service.StartUpService.Create: %w", err)
	}

	created, err := s.startUps.Create(ctx, su)
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("service.StartUpService.Create: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

// GetByID returns a single start-up by ID.
func (s *StartUpService) GetByID(ctx context.Context, id uuid.UUID) (domain.StartUp, error) {
	su, err := s.startUps.GetByID(ctx, id)
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("service.StartUpService.GetByID: %w", err)
	}
	return su, nil
}

// GetByName resolves a company page name to its start-up.
func (s *StartUpService) GetByName(ctx context.Context, name string) (domain.StartUp, error) {
	su, err := s.startUps.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("service.StartUpService.GetByName: %w", err)
	}
	return su, nil
}

// List returns every start-up, archived ones included, from the cache when
// warm. Cache failures are logged and fall through to the database.
func (s *StartUpService) List(ctx context.Context) ([]domain.StartUp, error) {
	var cached []domain.StartUp
	ok, err := s.cache.Get(ctx, cache.KeyStartUps, &cached)
	if err != nil {
		s.log.WarnContext(ctx, "start-up cache read failed", "error", err)
	}
	if ok {
		return cached, nil
	}

	list, err := s.startUps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StartUpService.List: %w", err)
	}
	if list == nil {
		list = []domain.StartUp{}
	}
	if err := s.cache.Set(ctx, cache.KeyStartUps, list); err != nil {
		s.log.WarnContext(ctx, "start-up cache write failed", "error", err)
	}
	return list, nil
}

// ListPaged returns one page of start-ups and the total count. Archived
// start-ups are included only when includeArchived is set.
func (s *StartUpService) ListPaged(ctx context.Context, p domain.PaginationParams, includeArchived bool) ([]domain.StartUp, int64, error) {
	list, total, err := s.startUps.ListPaged(ctx, p, includeArchived)
	if err != nil {
		return nil, 0, fmt.Errorf("service.StartUpService.ListPaged: %w", err)
	}
	return list, total, nil
}

// Update validates and persists changes to an existing start-up.
func (s *StartUpService) Update(ctx context.Context, in StartUpInput) (domain.StartUp, error) {
	su, err := s.prepare(ctx, in)
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("service.StartUpService.Update: %w", err)
	}

	updated, err := s.startUps.Update(ctx, su)
	if err != nil {
		return domain.StartUp{}, fmt.Errorf("service.StartUpService.Update: %w", err)
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes a start-up. A start-up that still owns internships cannot
// be deleted; archive it instead.
func (s *StartUpService) Delete(ctx context.Context, id uuid.UUID) error {
	owned, err := s.internships.ListByStartUpID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.StartUpService.Delete: %w", err)
	}
	if len(owned) > 0 {
		return fmt.Errorf("service.StartUpService.Delete: %w: start-up has internships", domain.ErrValidation)
	}

	if err := s.startUps.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.StartUpService.Delete: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// prepare normalises the record, validates the fields that do not depend on
// the logo, stores the upload and then validates the final record.
func (s *StartUpService) prepare(ctx context.Context, in StartUpInput) (domain.StartUp, error) {
	su := in.StartUp
	su.Name = strings.TrimSpace(su.Name)
	su.URL = strings.TrimSpace(su.URL)
	su.Logo = strings.TrimSpace(su.Logo)

	if in.Upload != nil {
		// Check everything else first so a rejected form never leaves an
		// orphaned logo behind.
		pending := su
		pending.Logo = "pending"
		if err := checkStartUp(pending); err != nil {
			return domain.StartUp{}, err
		}
		url, err := s.logos.Put(ctx, *in.Upload)
		if err != nil {
			return domain.StartUp{}, err
		}
		su.Logo = url
	}

	if err := checkStartUp(su); err != nil {
		return domain.StartUp{}, err
	}
	return su, nil
}

// reservedName is the path segment of the start-up index page; a company
// with that name would be unreachable at /work20/start-ups/<name>.
const reservedName = "start-ups"

func checkStartUp(su domain.StartUp) error {
	if err := validateStruct(su); err != nil {
		return err
	}
	if strings.EqualFold(su.Name, reservedName) {
		return fmt.Errorf("%w: name %q is reserved", domain.ErrValidation, su.Name)
	}
	return nil
}

func (s *StartUpService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyStartUps); err != nil {
		s.log.WarnContext(ctx, "start-up cache invalidation failed", "error", err)
	}
}
