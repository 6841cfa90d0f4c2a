// Package feed is the data-access component the Work 2.0 pages read from.
// It keeps the latest start-up and internship lists as snapshots with their
// own loading and error flags, and runs admin mutations, each of which
// returns its outcome and refreshes the affected snapshot.
//
// All work is bound to the caller's context and to the feed's lifetime
// context. After Close no snapshot is updated.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/service"
	"github.com/pkazala/work20/internal/storage"
	"github.com/pkazala/work20/internal/view"
)

// StartUpSource is the start-up service as the feed uses it.
type StartUpSource interface {
	List(ctx context.Context) ([]domain.StartUp, error)
	Create(ctx context.Context, in service.StartUpInput) (domain.StartUp, error)
	Update(ctx context.Context, in service.StartUpInput) (domain.StartUp, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InternshipSource is the internship service as the feed uses it.
type InternshipSource interface {
	List(ctx context.Context) ([]domain.Internship, error)
	Create(ctx context.Context, in domain.Internship) (domain.Internship, error)
	Update(ctx context.Context, in domain.Internship) (domain.Internship, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Snapshot is one resource's last fetched data with its flags.
// Data keeps the previous list while a reload runs or after it fails.
type Snapshot[T any] struct {
	Data    []T
	Loading bool
	Err     error
}

// Feed holds the two snapshots. It is safe for concurrent use.
type Feed struct {
	startUpSrc    StartUpSource
	internshipSrc InternshipSource
	log           *slog.Logger

	mu          sync.RWMutex
	startUps    resource[domain.StartUp]
	internships resource[domain.Internship]

	processing atomic.Int32

	life   context.Context
	cancel context.CancelFunc
}

// New returns a feed whose lifetime ends when parent is done or Close is
// called. Both snapshots start out loading until the first Refresh.
func New(parent context.Context, startUps StartUpSource, internships InternshipSource, log *slog.Logger) *Feed {
	life, cancel := context.WithCancel(parent)
	return &Feed{
		startUpSrc:    startUps,
		internshipSrc: internships,
		log:           log,
		startUps:      resource[domain.StartUp]{snap: Snapshot[domain.StartUp]{Loading: true}},
		internships:   resource[domain.Internship]{snap: Snapshot[domain.Internship]{Loading: true}},
		life:          life,
		cancel:        cancel,
	}
}

// Close ends the feed's lifetime and cancels in-flight work.
func (f *Feed) Close() {
	f.cancel()
}

// StartUps returns the current start-up snapshot.
func (f *Feed) StartUps() Snapshot[domain.StartUp] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.startUps.snap
}

// Internships returns the current internship snapshot.
func (f *Feed) Internships() Snapshot[domain.Internship] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.internships.snap
}

// Processing reports whether a mutation is in flight.
func (f *Feed) Processing() bool {
	return f.processing.Load() > 0
}

// Refresh reloads both resources concurrently and returns when both are done.
// Failures are recorded on the snapshots, not returned.
func (f *Feed) Refresh(ctx context.Context) {
	ctx, done := f.bind(ctx)
	defer done()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		f.refreshStartUps(ctx)
	}()
	go func() {
		defer wg.Done()
		f.refreshInternships(ctx)
	}()
	wg.Wait()
}

// resource is a snapshot plus the bookkeeping that orders overlapping
// fetches. started numbers fetches as they begin; applied is the number of
// the newest fetch whose result was recorded.
type resource[T any] struct {
	snap     Snapshot[T]
	started  uint64
	applied  uint64
	inflight int
}

func (f *Feed) refreshStartUps(ctx context.Context) {
	refresh(ctx, f, &f.startUps, f.startUpSrc.List, "start-up")
}

func (f *Feed) refreshInternships(ctx context.Context) {
	refresh(ctx, f, &f.internships, f.internshipSrc.List, "internship")
}

// refresh fetches one resource into r. A result older than one already
// recorded is discarded, and Loading stays set until no fetch is in flight.
// A fetch cut short by its caller's context or by Close records nothing.
func refresh[T any](ctx context.Context, f *Feed, r *resource[T], fetch func(context.Context) ([]T, error), kind string) {
	f.mu.Lock()
	r.started++
	gen := r.started
	r.inflight++
	r.snap.Loading = true
	f.mu.Unlock()

	list, err := fetch(ctx)
	cancelled := ctx.Err() != nil
	if err != nil && !cancelled {
		f.log.ErrorContext(ctx, kind+" refresh failed", "error", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	r.inflight--
	if r.inflight == 0 {
		r.snap.Loading = false
	}
	if cancelled || f.life.Err() != nil || gen < r.applied {
		return
	}
	r.applied = gen
	r.snap.Err = err
	if err == nil {
		r.snap.Data = list
	}
}

// bind returns a context cancelled when either ctx or the feed's lifetime
// ends.
func (f *Feed) bind(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(f.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// mutate runs op, then on success refreshes with reload. Every failure is
// logged and returned as a StatusFailure result.
func (f *Feed) mutate(ctx context.Context, action string, success view.Status, op func(context.Context) error, reload func(context.Context)) view.Result {
	f.processing.Add(1)
	defer f.processing.Add(-1)

	ctx, done := f.bind(ctx)
	defer done()

	if err := op(ctx); err != nil {
		f.log.ErrorContext(ctx, "mutation failed", "action", action, "error", err)
		return view.Failed(fmt.Errorf("feed.Feed.%s: %w", action, err))
	}
	reload(ctx)
	return view.Result{Status: success}
}

// AddStartUp creates a start-up from a form draft.
func (f *Feed) AddStartUp(ctx context.Context, d view.StartUpDraft) view.Result {
	return f.mutate(ctx, "AddStartUp", view.StatusSuccessAddStartUp, func(ctx context.Context) error {
		in, err := startUpInput(d)
		if err != nil {
			return err
		}
		_, err = f.startUpSrc.Create(ctx, in)
		return err
	}, f.refreshStartUps)
}

// EditStartUp saves a form draft over an existing start-up.
func (f *Feed) EditStartUp(ctx context.Context, d view.StartUpDraft) view.Result {
	return f.mutate(ctx, "EditStartUp", view.StatusSuccessEditStartUp, func(ctx context.Context) error {
		in, err := startUpInput(d)
		if err != nil {
			return err
		}
		_, err = f.startUpSrc.Update(ctx, in)
		return err
	}, f.refreshStartUps)
}

// DeleteStartUp removes a start-up.
func (f *Feed) DeleteStartUp(ctx context.Context, id uuid.UUID) view.Result {
	return f.mutate(ctx, "DeleteStartUp", view.StatusSuccessDeleteStartUp, func(ctx context.Context) error {
		return f.startUpSrc.Delete(ctx, id)
	}, f.refreshStartUps)
}

// AddInternship creates an internship.
func (f *Feed) AddInternship(ctx context.Context, in domain.Internship) view.Result {
	return f.mutate(ctx, "AddInternship", view.StatusSuccessAddInternship, func(ctx context.Context) error {
		_, err := f.internshipSrc.Create(ctx, in)
		return err
	}, f.refreshInternships)
}

// EditInternship saves changes to an internship.
func (f *Feed) EditInternship(ctx context.Context, in domain.Internship) view.Result {
	return f.mutate(ctx, "EditInternship", view.StatusSuccessEditInternship, func(ctx context.Context) error {
		_, err := f.internshipSrc.Update(ctx, in)
		return err
	}, f.refreshInternships)
}

// DeleteInternship removes an internship.
func (f *Feed) DeleteInternship(ctx context.Context, id uuid.UUID) view.Result {
	return f.mutate(ctx, "DeleteInternship", view.StatusSuccessDeleteInternship, func(ctx context.Context) error {
		return f.internshipSrc.Delete(ctx, id)
	}, f.refreshInternships)
}

// startUpInput turns a draft into a service write, reading a newly chosen
// logo file into memory.
func startUpInput(d view.StartUpDraft) (service.StartUpInput, error) {
	in := service.StartUpInput{StartUp: domain.StartUp{
		ID:       d.ID,
		Name:     d.Name,
		URL:      d.URL,
		Logo:     d.Logo.URL,
		Archived: d.Archived,
	}}
	if d.Logo.File == nil {
		return in, nil
	}

	file, err := d.Logo.File.Open()
	if err != nil {
		return service.StartUpInput{}, fmt.Errorf("open logo: %w", err)
	}
	defer file.Close()

	up, err := storage.ReadUpload(d.Logo.File.Filename, file)
	if err != nil {
		return service.StartUpInput{}, err
	}
	in.Upload = &up
	return in, nil
}
