package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/pkazala/work20/internal/auth"
	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/view"
)

// render executes a page into a buffer first so a template failure becomes
// a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	p := view.Printer(r.Header.Get("Accept-Language"))
	if err := s.pages.Render(&buf, name, p, data); err != nil {
		s.log.ErrorContext(r.Context(), "render failed", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) page(r *http.Request) view.Page {
	lang := view.Language(r.Header.Get("Accept-Language")).String()
	return view.NewPage(lang, auth.UserFrom(r.Context()), s.feed.Processing(), r.URL)
}

func (s *Server) listInput(r *http.Request) view.ListInput {
	su := s.feed.StartUps()
	in := s.feed.Internships()
	return view.ListInput{
		StartUps:           su.Data,
		StartUpsLoading:    su.Loading,
		StartUpsErr:        su.Err,
		Internships:        in.Data,
		InternshipsLoading: in.Loading,
		InternshipsErr:     in.Err,
		User:               auth.UserFrom(r.Context()),
		Query:              r.URL.Query(),
		Path:               r.URL.Path,
	}
}

// work20Page handles GET /work20: the listing of every visible internship.
func (s *Server) work20Page(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, view.TemplateList, view.ListPage{
		Page: s.page(r),
		List: view.BuildList(s.listInput(r)),
	})
}

// startUpsPage handles GET /work20/start-ups: the logos grid.
func (s *Server) startUpsPage(w http.ResponseWriter, r *http.Request) {
	su := s.feed.StartUps()
	admin := auth.UserFrom(r.Context()) != nil
	s.render(w, r, http.StatusOK, view.TemplateLogos, view.LogosPage{
		Page:    s.page(r),
		Loading: su.Loading,
		Alerts:  view.FetchAlerts(su.Err, nil),
		Logos:   view.Logos(su.Data, admin),
	})
}

// companyPage handles GET /work20/{startUpName}: one start-up's internships.
// Archived start-ups are only visible to admins.
func (s *Server) companyPage(w http.ResponseWriter, r *http.Request) {
	// chi matches against RawPath when the request carried escapes that
	// Path cannot represent; only then is the parameter still encoded.
	name := chi.URLParam(r, "startUpName")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		name = unescaped
	}
	su, err := s.startUps.GetByName(r.Context(), name)
	if err == nil && su.Archived && auth.UserFrom(r.Context()) == nil {
		err = domain.ErrNotFound
	}
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.ErrorContext(r.Context(), "company lookup failed", "name", name, "error", err)
		}
		status := statusFor(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	in := s.listInput(r)
	in.CompanyID = &su.ID
	s.render(w, r, http.StatusOK, view.TemplateList, view.ListPage{
		Page:    s.page(r),
		Company: &su,
		List:    view.BuildList(in),
	})
}
