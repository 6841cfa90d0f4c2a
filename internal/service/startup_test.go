package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkazala/work20/internal/cache"
	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/service"
	"github.com/pkazala/work20/internal/storage"
)

func validStartUp() domain.StartUp {
	return domain.StartUp{
		Name: "Acme",
		Logo: "https://cdn.example.com/acme.png",
		URL:  "https://acme.example.com",
	}
}

func newStartUpService(su *mockStartUpRepo, in *mockInternshipRepo, c cache.Store, logos *mockLogoStore) *service.StartUpService {
	if c == nil {
		c = cache.Nop{}
	}
	return service.NewStartUpService(su, in, c, logos, discardLogger())
}

// ---- Create ----------------------------------------------------------------

func TestStartUpService_Create_OK(t *testing.T) {
	c := newMemCache()
	c.values[cache.KeyStartUps] = []domain.StartUp{}
	var stored domain.StartUp
	svc := newStartUpService(&mockStartUpRepo{
		create: func(_ context.Context, s domain.StartUp) (domain.StartUp, error) {
			stored = s
			s.ID = uuid.New()
			return s, nil
		},
	}, nil, c, nil)

	input := validStartUp()
	input.Name = "  Acme  "
	got, err := svc.Create(context.Background(), service.StartUpInput{StartUp: input})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Acme", stored.Name, "name is trimmed before storing")
	assert.Contains(t, c.deleted, cache.KeyStartUps)
}

func TestStartUpService_Create_RequiredFields(t *testing.T) {
	cases := map[string]func(*domain.StartUp){
		"name": func(s *domain.StartUp) { s.Name = "   " },
		"logo": func(s *domain.StartUp) { s.Logo = "" },
		"url":  func(s *domain.StartUp) { s.URL = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			svc := newStartUpService(&mockStartUpRepo{}, nil, nil, nil)
			s := validStartUp()
			mutate(&s)

			_, err := svc.Create(context.Background(), service.StartUpInput{StartUp: s})

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, field+" is required")
		})
	}
}

func TestStartUpService_Create_InvalidURL(t *testing.T) {
	svc := newStartUpService(&mockStartUpRepo{}, nil, nil, nil)
	s := validStartUp()
	s.URL = "acme dot com"

	_, err := svc.Create(context.Background(), service.StartUpInput{StartUp: s})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "url must be an absolute URL")
}

func TestStartUpService_Create_ReservedName(t *testing.T) {
	for _, name := range []string{"start-ups", " Start-Ups "} {
		svc := newStartUpService(&mockStartUpRepo{}, nil, nil, nil)
		s := validStartUp()
		s.Name = name

		_, err := svc.Create(context.Background(), service.StartUpInput{StartUp: s})

		assert.ErrorIs(t, err, domain.ErrValidation, name)
		assert.ErrorContains(t, err, "is reserved", name)
	}
}

func TestStartUpService_Create_StoresUpload(t *testing.T) {
	logos := &mockLogoStore{
		put: func(_ context.Context, u storage.Upload) (string, error) {
			assert.Equal(t, "acme.png", u.Filename)
			return "/uploads/logos/new.png", nil
		},
	}
	svc := newStartUpService(&mockStartUpRepo{
		create: func(_ context.Context, s domain.StartUp) (domain.StartUp, error) { return s, nil },
	}, nil, nil, logos)

	s := validStartUp()
	s.Logo = ""
	got, err := svc.Create(context.Background(), service.StartUpInput{
		StartUp: s,
		Upload:  &storage.Upload{Filename: "acme.png", Data: []byte("img")},
	})

	require.NoError(t, err)
	assert.Equal(t, "/uploads/logos/new.png", got.Logo)
	assert.Equal(t, 1, logos.calls)
}

func TestStartUpService_Create_InvalidFormDoesNotStoreUpload(t *testing.T) {
	logos := &mockLogoStore{}
	svc := newStartUpService(&mockStartUpRepo{}, nil, nil, logos)

	s := validStartUp()
	s.Name = ""
	_, err := svc.Create(context.Background(), service.StartUpInput{
		StartUp: s,
		Upload:  &storage.Upload{Filename: "acme.png", Data: []byte("img")},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, logos.calls)
}

// ---- List ------------------------------------------------------------------

func TestStartUpService_List_ReadsThroughCache(t *testing.T) {
	c := newMemCache()
	calls := 0
	want := []domain.StartUp{{ID: uuid.New(), Name: "Acme"}}
	svc := newStartUpService(&mockStartUpRepo{
		list: func(context.Context) ([]domain.StartUp, error) {
			calls++
			return want, nil
		},
	}, nil, c, nil)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
	assert.Equal(t, 1, calls, "second call is served from the cache")
}

func TestStartUpService_List_NeverNil(t *testing.T) {
	svc := newStartUpService(&mockStartUpRepo{
		list: func(context.Context) ([]domain.StartUp, error) { return nil, nil },
	}, nil, nil, nil)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
}

// ---- Update ----------------------------------------------------------------

func TestStartUpService_Update_KeepsExistingLogo(t *testing.T) {
	id := uuid.New()
	logos := &mockLogoStore{}
	svc := newStartUpService(&mockStartUpRepo{
		update: func(_ context.Context, s domain.StartUp) (domain.StartUp, error) { return s, nil },
	}, nil, nil, logos)

	s := validStartUp()
	s.ID = id
	s.Archived = true
	got, err := svc.Update(context.Background(), service.StartUpInput{StartUp: s})

	require.NoError(t, err)
	assert.Equal(t, validStartUp().Logo, got.Logo)
	assert.True(t, got.Archived)
	assert.Zero(t, logos.calls)
}

func TestStartUpService_Update_NotFound(t *testing.T) {
	svc := newStartUpService(&mockStartUpRepo{
		update: func(context.Context, domain.StartUp) (domain.StartUp, error) {
			return domain.StartUp{}, domain.ErrNotFound
		},
	}, nil, nil, nil)

	s := validStartUp()
	s.ID = uuid.New()
	_, err := svc.Update(context.Background(), service.StartUpInput{StartUp: s})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete ----------------------------------------------------------------

func TestStartUpService_Delete_OK(t *testing.T) {
	deleted := uuid.Nil
	id := uuid.New()
	svc := newStartUpService(
		&mockStartUpRepo{delete: func(_ context.Context, got uuid.UUID) error {
			deleted = got
			return nil
		}},
		&mockInternshipRepo{listByStartUpID: func(context.Context, uuid.UUID) ([]domain.Internship, error) {
			return nil, nil
		}},
		nil, nil,
	)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, id, deleted)
}

func TestStartUpService_Delete_HasInternships(t *testing.T) {
	svc := newStartUpService(
		&mockStartUpRepo{},
		&mockInternshipRepo{listByStartUpID: func(_ context.Context, id uuid.UUID) ([]domain.Internship, error) {
			return []domain.Internship{{ID: uuid.New(), StartUpID: id}}, nil
		}},
		nil, nil,
	)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "start-up has internships")
}
