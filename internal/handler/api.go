package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkazala/work20/internal/auth"
	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/service"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// StartUpList is the body of GET /api/work20/start-ups.
type StartUpList struct {
	Data       []domain.StartUp `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// InternshipList is the body of GET /api/work20/internships.
type InternshipList struct {
	Data []domain.Internship `json:"data"`
}

// MergedList is the body of GET /api/work20/internships/merged.
type MergedList struct {
	Data []domain.MergedInternship `json:"data"`
}

// StartUpRequest is the body of start-up writes. Logo is the URL of an
// already hosted image; uploads go through the admin form.
type StartUpRequest struct {
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	URL      string `json:"url"`
	Archived bool   `json:"archived"`
}

// InternshipRequest is the body of internship writes.
type InternshipRequest struct {
	StartUpID                 openapi_types.UUID `json:"start_up_id"`
	Name                      string             `json:"name"`
	Type                      string             `json:"type"`
	Industries                []string           `json:"industries"`
	Deadline                  string             `json:"deadline"`
	Description               string             `json:"description"`
	Duration                  string             `json:"duration"`
	DurationShort             string             `json:"duration_short"`
	SalaryActive              bool               `json:"salary_active"`
	Salary                    string             `json:"salary"`
	LocationActive            bool               `json:"location_active"`
	Location                  string             `json:"location"`
	RequiredExperiencesActive bool               `json:"required_experiences_active"`
	RequiredExperiences       string             `json:"required_experiences"`
	Link                      string             `json:"link"`
	Archived                  bool               `json:"archived"`
}

// listStartUps handles GET /api/work20/start-ups.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) listStartUps(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		requestError(w, "invalid page parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		requestError(w, "invalid limit parameter")
		return
	}

	params := domain.NewPaginationParams(page, limit)
	list, total, err := s.startUps.ListPaged(r.Context(), params, isAdmin(r))
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}
	if list == nil {
		list = []domain.StartUp{}
	}
	writeJSON(w, http.StatusOK, StartUpList{
		Data:       list,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// createStartUp handles POST /api/work20/start-ups.
func (s *Server) createStartUp(w http.ResponseWriter, r *http.Request) {
	var body StartUpRequest
	if !decode(w, r, &body) {
		return
	}

	created, err := s.startUps.Create(r.Context(), service.StartUpInput{StartUp: body.toDomain(uuid.Nil)})
	if err != nil {
		s.serviceError(w, r, err, "start-up not found")
		return
	}
	s.feed.Refresh(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// getStartUp handles GET /api/work20/start-ups/{id}.
func (s *Server) getStartUp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	su, err := s.startUps.GetByID(r.Context(), id)
	if err == nil && su.Archived && !isAdmin(r) {
		err = domain.ErrNotFound
	}
	if err != nil {
		s.serviceError(w, r, err, "start-up not found")
		return
	}
	writeJSON(w, http.StatusOK, su)
}

// updateStartUp handles PUT /api/work20/start-ups/{id}.
func (s *Server) updateStartUp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body StartUpRequest
	if !decode(w, r, &body) {
		return
	}

	updated, err := s.startUps.Update(r.Context(), service.StartUpInput{StartUp: body.toDomain(id)})
	if err != nil {
		s.serviceError(w, r, err, "start-up not found")
		return
	}
	s.feed.Refresh(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

// deleteStartUp handles DELETE /api/work20/start-ups/{id}.
func (s *Server) deleteStartUp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.startUps.Delete(r.Context(), id); err != nil {
		s.serviceError(w, r, err, "start-up not found")
		return
	}
	s.feed.Refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// listInternships handles GET /api/work20/internships.
func (s *Server) listInternships(w http.ResponseWriter, r *http.Request) {
	list, err := s.internships.List(r.Context())
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}
	if !isAdmin(r) {
		list, err = s.liveInternships(r, list)
		if err != nil {
			s.serviceError(w, r, err, "")
			return
		}
	}
	writeJSON(w, http.StatusOK, InternshipList{Data: list})
}

// listMerged handles GET /api/work20/internships/merged.
// ?startUpId= narrows the listing to one company.
func (s *Server) listMerged(w http.ResponseWriter, r *http.Request) {
	var startUpID *openapi_types.UUID
	if err := runtime.BindQueryParameter("form", true, false, "startUpId", r.URL.Query(), &startUpID); err != nil {
		requestError(w, "invalid startUpId parameter")
		return
	}

	items, err := s.internships.Merged(r.Context(), startUpID, isAdmin(r))
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, MergedList{Data: items})
}

// createInternship handles POST /api/work20/internships.
func (s *Server) createInternship(w http.ResponseWriter, r *http.Request) {
	var body InternshipRequest
	if !decode(w, r, &body) {
		return
	}

	created, err := s.internships.Create(r.Context(), body.toDomain(uuid.Nil))
	if err != nil {
		s.serviceError(w, r, err, "internship not found")
		return
	}
	s.feed.Refresh(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// getInternship handles GET /api/work20/internships/{id}.
func (s *Server) getInternship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	in, err := s.internships.GetByID(r.Context(), id)
	if err == nil && !isAdmin(r) {
		err = s.requireLive(r, in)
	}
	if err != nil {
		s.serviceError(w, r, err, "internship not found")
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// updateInternship handles PUT /api/work20/internships/{id}.
func (s *Server) updateInternship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body InternshipRequest
	if !decode(w, r, &body) {
		return
	}

	updated, err := s.internships.Update(r.Context(), body.toDomain(id))
	if err != nil {
		s.serviceError(w, r, err, "internship not found")
		return
	}
	s.feed.Refresh(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

// deleteInternship handles DELETE /api/work20/internships/{id}.
func (s *Server) deleteInternship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.internships.Delete(r.Context(), id); err != nil {
		s.serviceError(w, r, err, "internship not found")
		return
	}
	s.feed.Refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// --- visibility -------------------------------------------------------------

// isAdmin reports whether the caller may see archived records.
func isAdmin(r *http.Request) bool {
	return auth.UserFrom(r.Context()) != nil
}

// liveInternships keeps the internships a visitor may see: not archived and
// owned by a start-up that is not archived.
func (s *Server) liveInternships(r *http.Request, list []domain.Internship) ([]domain.Internship, error) {
	startUps, err := s.startUps.List(r.Context())
	if err != nil {
		return nil, err
	}
	live := make(map[uuid.UUID]bool, len(startUps))
	for _, su := range domain.VisibleStartUps(startUps, false) {
		live[su.ID] = true
	}
	out := []domain.Internship{}
	for _, in := range domain.VisibleInternships(list, false) {
		if live[in.StartUpID] {
			out = append(out, in)
		}
	}
	return out, nil
}

// requireLive answers ErrNotFound for an internship a visitor may not see.
func (s *Server) requireLive(r *http.Request, in domain.Internship) error {
	if in.Archived {
		return domain.ErrNotFound
	}
	su, err := s.startUps.GetByID(r.Context(), in.StartUpID)
	if err != nil {
		return err
	}
	if su.Archived {
		return domain.ErrNotFound
	}
	return nil
}

// --- binding helpers --------------------------------------------------------

// pathID binds the {id} path parameter, answering 400 when it is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		requestError(w, "invalid id parameter")
		return uuid.Nil, false
	}
	return id, true
}

// decode reads a JSON body, answering 400 (or 413 past the body limit) on
// failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "request body too large")
			return false
		}
		requestError(w, "request body must be a JSON object: "+err.Error())
		return false
	}
	return true
}

func (b StartUpRequest) toDomain(id uuid.UUID) domain.StartUp {
	return domain.StartUp{ID: id, Name: b.Name, Logo: b.Logo, URL: b.URL, Archived: b.Archived}
}

func (b InternshipRequest) toDomain(id uuid.UUID) domain.Internship {
	return domain.Internship{
		ID:                        id,
		StartUpID:                 b.StartUpID,
		Name:                      b.Name,
		Type:                      b.Type,
		Industries:                b.Industries,
		Deadline:                  b.Deadline,
		Description:               b.Description,
		Duration:                  b.Duration,
		DurationShort:             b.DurationShort,
		SalaryActive:              b.SalaryActive,
		Salary:                    b.Salary,
		LocationActive:            b.LocationActive,
		Location:                  b.Location,
		RequiredExperiencesActive: b.RequiredExperiencesActive,
		RequiredExperiences:       b.RequiredExperiences,
		Link:                      b.Link,
		Archived:                  b.Archived,
	}
}
