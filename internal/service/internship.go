package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkazala/work20/internal/cache"
	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/repo"
)

// InternshipService implements business logic for Internship operations.
// It holds the start-up repo because every internship must reference an
// existing start-up, and because merged listings join the two.
type InternshipService struct {
	internships repo.InternshipRepo
	startUps    repo.StartUpRepo
	cache       cache.Store
	log         *slog.Logger
}

// NewInternshipService constructs an InternshipService.
func NewInternshipService(internships repo.InternshipRepo, startUps repo.StartUpRepo, c cache.Store, log *slog.Logger) *InternshipService {
	return &InternshipService{internships: internships, startUps: startUps, cache: c, log: log}
}

// Create validates the internship, verifies its start-up exists, then persists.
// Returns domain.ErrValidation for invalid input or an unknown start-up.
func (s *InternshipService) Create(ctx context.Context, in domain.Internship) (domain.Internship, error) {
	in = normalizeInternship(in)
	if err := s.check(ctx, in); err != nil {
		return domain.Internship{}, fmt.Errorf("service.InternshipService.Create: %w", err)
	}

	created, err := s.internships.Create(ctx, in)
	if err != nil {
		return domain.Internship{}, fmt.Errorf("service.InternshipService.Create: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

// GetByID returns a single internship by ID.
func (s *InternshipService) GetByID(ctx context.Context, id uuid.UUID) (domain.Internship, error) {
	in, err := s.internships.GetByID(ctx, id)
	if err != nil {
		return domain.Internship{}, fmt.Errorf("service.InternshipService.GetByID: %w", err)
	}
	return in, nil
}

// List returns every internship, from the cache when warm.
func (s *InternshipService) List(ctx context.Context) ([]domain.Internship, error) {
	var cached []domain.Internship
	ok, err := s.cache.Get(ctx, cache.KeyInternships, &cached)
	if err != nil {
		s.log.WarnContext(ctx, "internship cache read failed", "error", err)
	}
	if ok {
		return cached, nil
	}

	list, err := s.internships.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.InternshipService.List: %w", err)
	}
	if list == nil {
		list = []domain.Internship{}
	}
	if err := s.cache.Set(ctx, cache.KeyInternships, list); err != nil {
		s.log.WarnContext(ctx, "internship cache write failed", "error", err)
	}
	return list, nil
}

// Merged returns the internships joined with their start-ups. When
// startUpID is non-nil only that company's postings are returned.
// Internships whose start-up is missing are dropped and logged. Unless
// includeArchived is set, archived internships and every posting of an
// archived start-up are left out.
func (s *InternshipService) Merged(ctx context.Context, startUpID *uuid.UUID, includeArchived bool) ([]domain.MergedInternship, error) {
	internships, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.InternshipService.Merged: %w", err)
	}
	startUps, err := s.startUps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.InternshipService.Merged: %w", err)
	}

	if !includeArchived {
		visible := domain.VisibleStartUps(startUps, false)
		live := make(map[uuid.UUID]bool, len(visible))
		for _, su := range visible {
			live[su.ID] = true
		}
		kept := make([]domain.Internship, 0, len(internships))
		for _, in := range domain.VisibleInternships(internships, false) {
			if live[in.StartUpID] {
				kept = append(kept, in)
			}
		}
		startUps, internships = visible, kept
	}

	res := domain.Merge(startUps, internships)
	if len(res.Dropped) > 0 {
		s.log.WarnContext(ctx, "internships without start-up dropped from listing",
			"count", len(res.Dropped), "ids", res.Dropped)
	}
	if startUpID != nil {
		return domain.FilterByCompany(res.Items, *startUpID), nil
	}
	return res.Items, nil
}

// Update validates and persists changes to an existing internship.
func (s *InternshipService) Update(ctx context.Context, in domain.Internship) (domain.Internship, error) {
	in = normalizeInternship(in)
	if err := s.check(ctx, in); err != nil {
		return domain.Internship{}, fmt.Errorf("service.InternshipService.Update: %w", err)
	}

	updated, err := s.internships.Update(ctx, in)
	if err != nil {
		return domain.Internship{}, fmt.Errorf("service.InternshipService.Update: %w", err)
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes an internship by ID.
func (s *InternshipService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.internships.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.InternshipService.Delete: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *InternshipService) check(ctx context.Context, in domain.Internship) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if _, err := s.startUps.GetByID(ctx, in.StartUpID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: start_up_id does not reference a start-up", domain.ErrValidation)
		}
		return err
	}
	return nil
}

func (s *InternshipService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyInternships); err != nil {
		s.log.WarnContext(ctx, "internship cache invalidation failed", "error", err)
	}
}

// normalizeInternship trims every text field and drops blank industries.
// Industry order is preserved.
func normalizeInternship(in domain.Internship) domain.Internship {
	for _, f := range []*string{
		&in.Name, &in.Type, &in.Deadline, &in.Description, &in.Duration,
		&in.DurationShort, &in.Salary, &in.Location, &in.RequiredExperiences, &in.Link,
	} {
		*f = strings.TrimSpace(*f)
	}

	industries := make([]string, 0, len(in.Industries))
	for _, ind := range in.Industries {
		if t := strings.TrimSpace(ind); t != "" {
			industries = append(industries, t)
		}
	}
	in.Industries = industries
	return in
}
