package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/view"
)

const (
	startUpAddPath    = "/admin/work20/start-up/add"
	internshipAddPath = "/admin/work20/internship/add"
)

// --- start-up forms ---------------------------------------------------------

// startUpAddForm handles GET /admin/work20/start-up/add.
func (s *Server) startUpAddForm(w http.ResponseWriter, r *http.Request) {
	s.renderStartUpForm(w, r, http.StatusOK, view.NewAddStartUpForm())
}

// startUpAdd handles POST /admin/work20/start-up/add.
func (s *Server) startUpAdd(w http.ResponseWriter, r *http.Request) {
	form := view.NewAddStartUpForm()
	if !s.readStartUpDraft(w, r, &form.Draft) {
		return
	}
	s.submitStartUp(w, r, form, s.feed.AddStartUp)
}

// startUpEditForm handles GET /admin/work20/start-up/edit/{id}.
func (s *Server) startUpEditForm(w http.ResponseWriter, r *http.Request) {
	su, ok := s.loadStartUp(w, r)
	if !ok {
		return
	}
	s.renderStartUpForm(w, r, http.StatusOK, view.NewEditStartUpForm(su))
}

// startUpEdit handles POST /admin/work20/start-up/edit/{id}. Without a new
// file the stored logo is kept.
func (s *Server) startUpEdit(w http.ResponseWriter, r *http.Request) {
	su, ok := s.loadStartUp(w, r)
	if !ok {
		return
	}
	form := view.NewEditStartUpForm(su)
	if !s.readStartUpDraft(w, r, &form.Draft) {
		return
	}
	s.submitStartUp(w, r, form, s.feed.EditStartUp)
}

// startUpDelete handles POST /admin/work20/start-up/delete/{id}.
func (s *Server) startUpDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := s.feed.DeleteStartUp(r.Context(), id)
	http.Redirect(w, r, view.WithStatus("/work20/start-ups", res), http.StatusSeeOther)
}

func (s *Server) submitStartUp(w http.ResponseWriter, r *http.Request, form *view.StartUpForm, mutate func(ctx context.Context, d view.StartUpDraft) view.Result) {
	res, err := form.Submit(r.Context(), mutate)
	if errors.Is(err, view.ErrRequiredFields) {
		s.renderStartUpForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}
	if res.Status == view.StatusFailure {
		s.renderStartUpForm(w, r, statusFor(res.Err), form)
		return
	}

	target := startUpAddPath
	if form.Edit() {
		target = view.StartUpEditPath(form.Draft.ID)
	}
	http.Redirect(w, r, view.WithStatus(target, res), http.StatusSeeOther)
}

func (s *Server) renderStartUpForm(w http.ResponseWriter, r *http.Request, status int, form *view.StartUpForm) {
	data := view.StartUpFormPage{Page: s.page(r), Form: form, Action: startUpAddPath}
	if form.Popup.Open() {
		data.Popup = form.Popup
	}
	if form.Edit() {
		data.Action = view.StartUpEditPath(form.Draft.ID)
		data.DeleteAction = view.StartUpDeletePath(form.Draft.ID)
	}
	s.render(w, r, status, view.TemplateStartUpForm, data)
}

func (s *Server) loadStartUp(w http.ResponseWriter, r *http.Request) (domain.StartUp, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return domain.StartUp{}, false
	}
	su, err := s.startUps.GetByID(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err, "start-up not found")
		return domain.StartUp{}, false
	}
	return su, true
}

// readStartUpDraft copies the multipart form into d. The stored logo in d
// is replaced only when a file was chosen.
func (s *Server) readStartUpDraft(w http.ResponseWriter, r *http.Request, d *view.StartUpDraft) bool {
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "upload too large")
			return false
		}
		requestError(w, "invalid form")
		return false
	}

	d.Name = r.PostFormValue("name")
	d.URL = r.PostFormValue("url")
	d.Archived = r.PostFormValue("archived") == "true"
	if fh := formFile(r, "logo"); fh != nil {
		d.Logo.File = fh
	}
	return true
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 || files[0].Size == 0 {
		return nil
	}
	return files[0]
}

// --- internship forms -------------------------------------------------------

// internshipAddForm handles GET /admin/work20/internship/add.
func (s *Server) internshipAddForm(w http.ResponseWriter, r *http.Request) {
	s.renderInternshipForm(w, r, http.StatusOK, view.NewAddInternshipForm())
}

// internshipAdd handles POST /admin/work20/internship/add.
func (s *Server) internshipAdd(w http.ResponseWriter, r *http.Request) {
	form := view.NewAddInternshipForm()
	if !readInternshipDraft(w, r, &form.Draft) {
		return
	}
	s.submitInternship(w, r, form, s.feed.AddInternship)
}

// internshipEditForm handles GET /admin/work20/internship/edit/{id}.
func (s *Server) internshipEditForm(w http.ResponseWriter, r *http.Request) {
	in, ok := s.loadInternship(w, r)
	if !ok {
		return
	}
	s.renderInternshipForm(w, r, http.StatusOK, view.NewEditInternshipForm(in))
}

// internshipEdit handles POST /admin/work20/internship/edit/{id}.
func (s *Server) internshipEdit(w http.ResponseWriter, r *http.Request) {
	in, ok := s.loadInternship(w, r)
	if !ok {
		return
	}
	form := view.NewEditInternshipForm(in)
	if !readInternshipDraft(w, r, &form.Draft) {
		return
	}
	s.submitInternship(w, r, form, s.feed.EditInternship)
}

// internshipDelete handles POST /admin/work20/internship/delete/{id}, the
// confirm button of the delete modal. The modal closes whatever the delete
// returns; the outcome is shown by the status popup after the redirect.
func (s *Server) internshipDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		requestError(w, "invalid form")
		return
	}

	modal := view.ModalFromQuery(r.PostForm, id.String(), true)
	res, err := modal.ConfirmDelete(r.Context(), func(ctx context.Context) view.Result {
		return s.feed.DeleteInternship(ctx, id)
	})
	if err != nil {
		requestError(w, "delete was not confirmed")
		return
	}
	http.Redirect(w, r, view.WithStatus(localPath(r.PostFormValue("return"), "/work20"), res), http.StatusSeeOther)
}

func (s *Server) submitInternship(w http.ResponseWriter, r *http.Request, form *view.InternshipForm, mutate func(ctx context.Context, in domain.Internship) view.Result) {
	res, err := form.Submit(r.Context(), mutate)
	if errors.Is(err, view.ErrRequiredFields) {
		s.renderInternshipForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}
	if res.Status == view.StatusFailure {
		s.renderInternshipForm(w, r, statusFor(res.Err), form)
		return
	}

	target := internshipAddPath
	if form.Edit() {
		target = view.InternshipEditPath(form.Draft.ID)
	}
	http.Redirect(w, r, view.WithStatus(target, res), http.StatusSeeOther)
}

func (s *Server) renderInternshipForm(w http.ResponseWriter, r *http.Request, status int, form *view.InternshipForm) {
	data := view.InternshipFormPage{
		Page:     s.page(r),
		Form:     form,
		Action:   internshipAddPath,
		StartUps: s.feed.StartUps().Data,
	}
	if form.Popup.Open() {
		data.Popup = form.Popup
	}
	if form.Edit() {
		data.Action = view.InternshipEditPath(form.Draft.ID)
	}
	s.render(w, r, status, view.TemplateInternshipForm, data)
}

func (s *Server) loadInternship(w http.ResponseWriter, r *http.Request) (domain.Internship, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return domain.Internship{}, false
	}
	in, err := s.internships.GetByID(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err, "internship not found")
		return domain.Internship{}, false
	}
	return in, true
}

// readInternshipDraft copies the urlencoded form into d. An unparsable
// start-up id leaves the field empty so the required-field check reports it.
func readInternshipDraft(w http.ResponseWriter, r *http.Request, d *domain.Internship) bool {
	if err := r.ParseForm(); err != nil {
		requestError(w, "invalid form")
		return false
	}

	d.StartUpID, _ = uuid.Parse(r.PostFormValue("startUpId"))
	d.Name = r.PostFormValue("name")
	d.Type = r.PostFormValue("type")
	d.Industries = view.ParseIndustries(r.PostFormValue("industries"))
	d.Deadline = r.PostFormValue("deadline")
	d.Description = r.PostFormValue("description")
	d.Duration = r.PostFormValue("duration")
	d.DurationShort = r.PostFormValue("durationShort")
	d.SalaryActive = r.PostFormValue("salaryActive") == "true"
	d.Salary = r.PostFormValue("salary")
	d.LocationActive = r.PostFormValue("locationActive") == "true"
	d.Location = r.PostFormValue("location")
	d.RequiredExperiencesActive = r.PostFormValue("requiredExperiencesActive") == "true"
	d.RequiredExperiences = r.PostFormValue("requiredExperiences")
	d.Link = r.PostFormValue("link")
	d.Archived = r.PostFormValue("archived") == "true"
	return true
}

// localPath returns p when it is a path on this site, otherwise fallback.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}
