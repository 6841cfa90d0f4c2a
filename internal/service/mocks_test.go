package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkazala/work20/internal/cache"
	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/repo"
	"github.com/pkazala/work20/internal/storage"
)

// mockStartUpRepo is a hand-written test double for repo.StartUpRepo.
// Set only the method fields your test needs.
type mockStartUpRepo struct {
	create    func(ctx context.Context, s domain.StartUp) (domain.StartUp, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.StartUp, error)
	getByName func(ctx context.Context, name string) (domain.StartUp, error)
	list      func(ctx context.Context) ([]domain.StartUp, error)
	listPaged func(ctx context.Context, p domain.PaginationParams, includeArchived bool) ([]domain.StartUp, int64, error)
	update    func(ctx context.Context, s domain.StartUp) (domain.StartUp, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStartUpRepo) Create(ctx context.Context, s domain.StartUp) (domain.StartUp, error) {
	return m.create(ctx, s)
}
func (m *mockStartUpRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.StartUp, error) {
	return m.getByID(ctx, id)
}
func (m *mockStartUpRepo) GetByName(ctx context.Context, name string) (domain.StartUp, error) {
	return m.getByName(ctx, name)
}
func (m *mockStartUpRepo) List(ctx context.Context) ([]domain.StartUp, error) {
	return m.list(ctx)
}
func (m *mockStartUpRepo) ListPaged(ctx context.Context, p domain.PaginationParams, includeArchived bool) ([]domain.StartUp, int64, error) {
	return m.listPaged(ctx, p, includeArchived)
}
func (m *mockStartUpRepo) Update(ctx context.Context, s domain.StartUp) (domain.StartUp, error) {
	return m.update(ctx, s)
}
func (m *mockStartUpRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.StartUpRepo = (*mockStartUpRepo)(nil)

// mockInternshipRepo is a hand-written test double for repo.InternshipRepo.
type mockInternshipRepo struct {
	create          func(ctx context.Context, in domain.Internship) (domain.Internship, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Internship, error)
	list            func(ctx context.Context) ([]domain.Internship, error)
	listByStartUpID func(ctx context.Context, id uuid.UUID) ([]domain.Internship, error)
	update          func(ctx context.Context, in domain.Internship) (domain.Internship, error)
	delete          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockInternshipRepo) Create(ctx context.Context, in domain.Internship) (domain.Internship, error) {
	return m.create(ctx, in)
}
func (m *mockInternshipRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Internship, error) {
	return m.getByID(ctx, id)
}
func (m *mockInternshipRepo) List(ctx context.Context) ([]domain.Internship, error) {
	return m.list(ctx)
}
func (m *mockInternshipRepo) ListByStartUpID(ctx context.Context, id uuid.UUID) ([]domain.Internship, error) {
	return m.listByStartUpID(ctx, id)
}
func (m *mockInternshipRepo) Update(ctx context.Context, in domain.Internship) (domain.Internship, error) {
	return m.update(ctx, in)
}
func (m *mockInternshipRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.InternshipRepo = (*mockInternshipRepo)(nil)

// memCache is an in-memory cache.Store that records deletions.
type memCache struct {
	values  map[string]any
	deleted []string
}

func newMemCache() *memCache { return &memCache{values: map[string]any{}} }

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.StartUp:
		*d = v.([]domain.StartUp)
	case *[]domain.Internship:
		*d = v.([]domain.Internship)
	}
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, v any) error {
	c.values[key] = v
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

var _ cache.Store = (*memCache)(nil)

// mockLogoStore is a test double for storage.LogoStore.
type mockLogoStore struct {
	put   func(ctx context.Context, u storage.Upload) (string, error)
	calls int
}

func (m *mockLogoStore) Put(ctx context.Context, u storage.Upload) (string, error) {
	m.calls++
	return m.put(ctx, u)
}

var _ storage.LogoStore = (*mockLogoStore)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
