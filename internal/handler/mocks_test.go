package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/feed"
	"github.com/pkazala/work20/internal/handler"
	"github.com/pkazala/work20/internal/middleware"
	"github.com/pkazala/work20/internal/service"
	"github.com/pkazala/work20/internal/view"
)

// mockStartUpServicer is a test double for handler.StartUpServicer.
// Set only the method fields your test needs.
type mockStartUpServicer struct {
	create    func(ctx context.Context, in service.StartUpInput) (domain.StartUp, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.StartUp, error)
	getByName func(ctx context.Context, name string) (domain.StartUp, error)
	list      func(ctx context.Context) ([]domain.StartUp, error)
	listPaged func(ctx context.Context, p domain.PaginationParams, includeArchived bool) ([]domain.StartUp, int64, error)
	update    func(ctx context.Context, in service.StartUpInput) (domain.StartUp, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStartUpServicer) Create(ctx context.Context, in service.StartUpInput) (domain.StartUp, error) {
	return m.create(ctx, in)
}
func (m *mockStartUpServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.StartUp, error) {
	return m.getByID(ctx, id)
}
func (m *mockStartUpServicer) GetByName(ctx context.Context, name string) (domain.StartUp, error) {
	return m.getByName(ctx, name)
}
func (m *mockStartUpServicer) List(ctx context.Context) ([]domain.StartUp, error) {
	return m.list(ctx)
}
func (m *mockStartUpServicer) ListPaged(ctx context.Context, p domain.PaginationParams, includeArchived bool) ([]domain.StartUp, int64, error) {
	return m.listPaged(ctx, p, includeArchived)
}
func (m *mockStartUpServicer) Update(ctx context.Context, in service.StartUpInput) (domain.StartUp, error) {
	return m.update(ctx, in)
}
func (m *mockStartUpServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// mockInternshipServicer is a test double for handler.InternshipServicer.
type mockInternshipServicer struct {
	create  func(ctx context.Context, in domain.Internship) (domain.Internship, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Internship, error)
	list    func(ctx context.Context) ([]domain.Internship, error)
	merged  func(ctx context.Context, startUpID *uuid.UUID, includeArchived bool) ([]domain.MergedInternship, error)
	update  func(ctx context.Context, in domain.Internship) (domain.Internship, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockInternshipServicer) Create(ctx context.Context, in domain.Internship) (domain.Internship, error) {
	return m.create(ctx, in)
}
func (m *mockInternshipServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Internship, error) {
	return m.getByID(ctx, id)
}
func (m *mockInternshipServicer) List(ctx context.Context) ([]domain.Internship, error) {
	return m.list(ctx)
}
func (m *mockInternshipServicer) Merged(ctx context.Context, startUpID *uuid.UUID, includeArchived bool) ([]domain.MergedInternship, error) {
	return m.merged(ctx, startUpID, includeArchived)
}
func (m *mockInternshipServicer) Update(ctx context.Context, in domain.Internship) (domain.Internship, error) {
	return m.update(ctx, in)
}
func (m *mockInternshipServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// mockFeed is a test double for handler.Feed. Snapshots are plain fields;
// mutations default to success and record what they were given.
type mockFeed struct {
	startUps    feed.Snapshot[domain.StartUp]
	internships feed.Snapshot[domain.Internship]
	refreshed   int

	addStartUp       func(d view.StartUpDraft) view.Result
	editStartUp      func(d view.StartUpDraft) view.Result
	deleteStartUp    func(id uuid.UUID) view.Result
	addInternship    func(in domain.Internship) view.Result
	editInternship   func(in domain.Internship) view.Result
	deleteInternship func(id uuid.UUID) view.Result
}

func (m *mockFeed) StartUps() feed.Snapshot[domain.StartUp]       { return m.startUps }
func (m *mockFeed) Internships() feed.Snapshot[domain.Internship] { return m.internships }
func (m *mockFeed) Processing() bool                              { return false }
func (m *mockFeed) Refresh(context.Context)                       { m.refreshed++ }

func (m *mockFeed) AddStartUp(_ context.Context, d view.StartUpDraft) view.Result {
	return m.addStartUp(d)
}
func (m *mockFeed) EditStartUp(_ context.Context, d view.StartUpDraft) view.Result {
	return m.editStartUp(d)
}
func (m *mockFeed) DeleteStartUp(_ context.Context, id uuid.UUID) view.Result {
	return m.deleteStartUp(id)
}
func (m *mockFeed) AddInternship(_ context.Context, in domain.Internship) view.Result {
	return m.addInternship(in)
}
func (m *mockFeed) EditInternship(_ context.Context, in domain.Internship) view.Result {
	return m.editInternship(in)
}
func (m *mockFeed) DeleteInternship(_ context.Context, id uuid.UUID) view.Result {
	return m.deleteInternship(id)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.StartUpServicer    = (*mockStartUpServicer)(nil)
	_ handler.InternshipServicer = (*mockInternshipServicer)(nil)
	_ handler.Feed               = (*mockFeed)(nil)
)

const adminToken = "admin-token"

// stubVerifier accepts adminToken only.
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (domain.User, error) {
	if token != adminToken {
		return domain.User{}, domain.ErrUnauthorized
	}
	return domain.User{UID: "admin-1", Email: "admin@example.com"}, nil
}

// deps bundles the doubles behind one router.
type deps struct {
	startUps    *mockStartUpServicer
	internships *mockInternshipServicer
	feed        *mockFeed
}

func newDeps() *deps {
	return &deps{
		startUps:    &mockStartUpServicer{},
		internships: &mockInternshipServicer{},
		feed:        &mockFeed{},
	}
}

// router wires the doubles exactly as main.go wires the real services.
func (d *deps) router(t *testing.T) http.Handler {
	t.Helper()
	pages, err := view.NewRenderer()
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(d.startUps, d.internships, d.feed, pages, log)
	return handler.NewRouter(srv, handler.RouterConfig{
		Verifier:       stubVerifier{},
		Limiter:        middleware.NewRateLimiter(1000, 1000),
		CORSOrigins:    []string{"http://localhost:5173"},
		MaxUploadBytes: 1 << 20,
		Logger:         log,
	})
}

func asAdmin(r *http.Request) *http.Request {
	r.Header.Set("Authorization", "Bearer "+adminToken)
	return r
}

var errDB = errors.New("connection refused")
