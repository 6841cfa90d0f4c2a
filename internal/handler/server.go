// Package handler implements the HTTP surface of the Work 2.0 service: the
// server-rendered pages, the admin forms and the JSON API.
// All handlers are methods on Server. They are split into files by surface
// (pages.go, admin.go, api.go) but share the same dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/feed"
	"github.com/pkazala/work20/internal/service"
	"github.com/pkazala/work20/internal/view"
)

// StartUpServicer defines the start-up operations the handlers depend on.
// Declaring it here, in the consumer package, lets handler tests inject a
// mock without touching the database or service layer.
type StartUpServicer interface {
	Create(ctx context.Context, in service.StartUpInput) (domain.StartUp, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.StartUp, error)
	GetByName(ctx context.Context, name string) (domain.StartUp, error)
	List(ctx context.Context) ([]domain.StartUp, error)
	ListPaged(ctx context.Context, p domain.PaginationParams, includeArchived bool) ([]domain.StartUp, int64, error)
	Update(ctx context.Context, in service.StartUpInput) (domain.StartUp, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InternshipServicer defines the internship operations the handlers depend on.
type InternshipServicer interface {
	Create(ctx context.Context, in domain.Internship) (domain.Internship, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Internship, error)
	List(ctx context.Context) ([]domain.Internship, error)
	Merged(ctx context.Context, startUpID *uuid.UUID, includeArchived bool) ([]domain.MergedInternship, error)
	Update(ctx context.Context, in domain.Internship) (domain.Internship, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Feed is the page data source: snapshots to render and the mutations the
// admin forms submit.
type Feed interface {
	StartUps() feed.Snapshot[domain.StartUp]
	Internships() feed.Snapshot[domain.Internship]
	Processing() bool
	Refresh(ctx context.Context)

	AddStartUp(ctx context.Context, d view.StartUpDraft) view.Result
	EditStartUp(ctx context.Context, d view.StartUpDraft) view.Result
	DeleteStartUp(ctx context.Context, id uuid.UUID) view.Result
	AddInternship(ctx context.Context, in domain.Internship) view.Result
	EditInternship(ctx context.Context, in domain.Internship) view.Result
	DeleteInternship(ctx context.Context, id uuid.UUID) view.Result
}

// Server holds the dependencies shared by every handler.
type Server struct {
	startUps    StartUpServicer
	internships InternshipServicer
	feed        Feed
	pages       *view.Renderer
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(startUps StartUpServicer, internships InternshipServicer, f Feed, pages *view.Renderer, log *slog.Logger) *Server {
	return &Server{startUps: startUps, internships: internships, feed: f, pages: pages, log: log}
}
