package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkazala/work20/internal/auth"
	"github.com/pkazala/work20/internal/middleware"
)

// RouterConfig carries the HTTP-level settings of NewRouter.
type RouterConfig struct {
	Verifier       auth.Verifier
	Limiter        *middleware.RateLimiter
	CORSOrigins    []string
	MaxUploadBytes int64
	// LogoDir, when set, is served at LogoBaseURL for the disk logo store.
	LogoDir     string
	LogoBaseURL string
	Logger      *slog.Logger
}

// NewRouter mounts every route of s.
//
// Middleware order: RequestID, RealIP, Authenticate (so the request line
// can name the admin), SlogLogger, Recoverer. Admin pages and API writes
// additionally require a user, are rate limited and have bounded bodies.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Authenticate(cfg.Verifier, cfg.Logger))
	r.Use(middleware.NewSlogLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)

	admin := func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Use(cfg.Limiter.Handler)
		r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxUploadBytes))
	}

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/work20", http.StatusFound)
	})
	r.Get("/work20", s.work20Page)
	r.Get("/work20/start-ups", s.startUpsPage)
	r.Get("/work20/{startUpName}", s.companyPage)

	r.Route("/admin/work20", func(r chi.Router) {
		admin(r)
		r.Get("/start-up/add", s.startUpAddForm)
		r.Post("/start-up/add", s.startUpAdd)
		r.Get("/start-up/edit/{id}", s.startUpEditForm)
		r.Post("/start-up/edit/{id}", s.startUpEdit)
		r.Post("/start-up/delete/{id}", s.startUpDelete)
		r.Get("/internship/add", s.internshipAddForm)
		r.Post("/internship/add", s.internshipAdd)
		r.Get("/internship/edit/{id}", s.internshipEditForm)
		r.Post("/internship/edit/{id}", s.internshipEdit)
		r.Post("/internship/delete/{id}", s.internshipDelete)
	})

	r.Route("/api/work20", func(r chi.Router) {
		r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

		r.Get("/start-ups", s.listStartUps)
		r.Get("/start-ups/{id}", s.getStartUp)
		r.Get("/internships", s.listInternships)
		r.Get("/internships/merged", s.listMerged)
		r.Get("/internships/{id}", s.getInternship)

		r.Group(func(r chi.Router) {
			admin(r)
			r.Post("/start-ups", s.createStartUp)
			r.Put("/start-ups/{id}", s.updateStartUp)
			r.Delete("/start-ups/{id}", s.deleteStartUp)
			r.Post("/internships", s.createInternship)
			r.Put("/internships/{id}", s.updateInternship)
			r.Delete("/internships/{id}", s.deleteInternship)
		})
	})

	if cfg.LogoDir != "" && strings.HasPrefix(cfg.LogoBaseURL, "/") {
		prefix := strings.TrimRight(cfg.LogoBaseURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.LogoDir))))
	}

	return r
}
