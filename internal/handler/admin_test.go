package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkazala/work20/internal/domain"
	"github.com/pkazala/work20/internal/view"
)

// multipartRequest builds an admin form post, attaching a logo when logo is
// non-nil.
func multipartRequest(t *testing.T, target string, fields map[string]string, logo []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if logo != nil {
		part, err := w.CreateFormFile("logo", "logo.png")
		require.NoError(t, err)
		_, err = part.Write(logo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return asAdmin(req)
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return asAdmin(req)
}

func TestAdmin_RequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	newDeps().router(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/work20/start-up/add", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStartUpAddForm_RendersInputs(t *testing.T) {
	rec := httptest.NewRecorder()
	newDeps().router(t).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/work20/start-up/add", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	for _, id := range []string{"name-input", "url-input", "logo-upload", "start-up-submit-button"} {
		assert.Contains(t, rec.Body.String(), `id="`+id+`"`)
	}
}

func TestStartUpAdd_EmptyFieldBlocksMutation(t *testing.T) {
	d := newDeps()
	d.feed.addStartUp = func(view.StartUpDraft) view.Result {
		t.Fatal("no mutation for an incomplete form")
		return view.Result{}
	}

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, multipartRequest(t, "/admin/work20/start-up/add",
		map[string]string{"name": "", "url": "https://acme.example"}, []byte("png")))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fill in every required field.")
	assert.Contains(t, rec.Body.String(), `value="https://acme.example"`, "the draft is kept")
}

func TestStartUpAdd_SuccessRedirects(t *testing.T) {
	d := newDeps()
	var got view.StartUpDraft
	d.feed.addStartUp = func(draft view.StartUpDraft) view.Result {
		got = draft
		return view.Result{Status: view.StatusSuccessAddStartUp}
	}

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, multipartRequest(t, "/admin/work20/start-up/add",
		map[string]string{"name": "Acme", "url": "https://acme.example"}, []byte("png")))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/work20/start-up/add?status=success-add-start-up", rec.Header().Get("Location"))
	assert.Equal(t, "Acme", got.Name)
	require.NotNil(t, got.Logo.File)
	assert.Equal(t, "logo.png", got.Logo.File.Filename)
}

func TestStartUpAdd_FailureShowsPopup(t *testing.T) {
	d := newDeps()
	d.feed.addStartUp = func(view.StartUpDraft) view.Result {
		return view.Failed(fmt.Errorf("%w: logo must be an image", domain.ErrValidation))
	}

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, multipartRequest(t, "/admin/work20/start-up/add",
		map[string]string{"name": "Acme", "url": "https://acme.example"}, []byte("not an image")))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong. Try again.")
	assert.Contains(t, rec.Body.String(), `value="Acme"`)
}

func TestStartUpEdit_KeepsLogoWithoutNewFile(t *testing.T) {
	d := newDeps()
	su := startUpFixture()
	d.startUps.getByID = func(context.Context, uuid.UUID) (domain.StartUp, error) { return su, nil }
	var got view.StartUpDraft
	d.feed.editStartUp = func(draft view.StartUpDraft) view.Result {
		got = draft
		return view.Result{Status: view.StatusSuccessEditStartUp}
	}

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, multipartRequest(t, view.StartUpEditPath(su.ID),
		map[string]string{"name": "Acme Oy", "url": su.URL, "archived": "true"}, nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, view.StartUpEditPath(su.ID)+"?status=success-edit-start-up", rec.Header().Get("Location"))
	assert.Equal(t, su.ID, got.ID)
	assert.Equal(t, "Acme Oy", got.Name)
	assert.True(t, got.Archived)
	assert.True(t, got.Logo.Unchanged())
	assert.Equal(t, su.Logo, got.Logo.URL)
}

func TestStartUpEditForm_404(t *testing.T) {
	d := newDeps()
	d.startUps.getByID = func(context.Context, uuid.UUID) (domain.StartUp, error) {
		return domain.StartUp{}, domain.ErrNotFound
	}

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, view.StartUpEditPath(uuid.New()), nil)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartUpDelete_RedirectsWithOutcome(t *testing.T) {
	d := newDeps()
	d.feed.deleteStartUp = func(uuid.UUID) view.Result {
		return view.Failed(fmt.Errorf("%w: start-up has internships", domain.ErrValidation))
	}

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, formRequest(view.StartUpDeletePath(uuid.New()), url.Values{}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/work20/start-ups?status=failure", rec.Header().Get("Location"))
}

func internshipForm(startUpID uuid.UUID) url.Values {
	return url.Values{
		"startUpId":     {startUpID.String()},
		"name":          {"Backend intern"},
		"type":          {"Remote"},
		"industries":    {"software, ai"},
		"deadline":      {"2026-12-01"},
		"description":   {"Build things."},
		"duration":      {"Three months"},
		"durationShort": {"3 mo"},
		"link":          {"https://acme.example/apply"},
	}
}

func TestInternshipAdd_SuccessRedirects(t *testing.T) {
	d := newDeps()
	startUpID := uuid.New()
	var got domain.Internship
	d.feed.addInternship = func(in domain.Internship) view.Result {
		got = in
		return view.Result{Status: view.StatusSuccessAddInternship}
	}

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, formRequest("/admin/work20/internship/add", internshipForm(startUpID)))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/work20/internship/add?status=success-add-internship", rec.Header().Get("Location"))
	assert.Equal(t, startUpID, got.StartUpID)
	assert.Equal(t, []string{"software", "ai"}, got.Industries)
}

func TestInternshipAdd_ActiveFlagRequiresValue(t *testing.T) {
	d := newDeps()
	d.feed.addInternship = func(domain.Internship) view.Result {
		t.Fatal("no mutation for an incomplete form")
		return view.Result{}
	}
	form := internshipForm(uuid.New())
	form.Set("salaryActive", "true")

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, formRequest("/admin/work20/internship/add", form))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="internship-submit-button"`)
}

func TestInternshipEditForm_Renders(t *testing.T) {
	d := newDeps()
	su := startUpFixture()
	in := internshipFixture(su.ID)
	d.feed = loadedFeed([]domain.StartUp{su}, nil)
	d.internships.getByID = func(context.Context, uuid.UUID) (domain.Internship, error) { return in, nil }

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, view.InternshipEditPath(in.ID), nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="`+view.InternshipEditPath(in.ID)+`"`)
	assert.Contains(t, rec.Body.String(), `value="`+su.ID.String()+`" selected`)
}

func TestInternshipDelete_ConfirmedRedirectsBack(t *testing.T) {
	d := newDeps()
	id := uuid.New()
	var deleted uuid.UUID
	d.feed.deleteInternship = func(got uuid.UUID) view.Result {
		deleted = got
		return view.Result{Status: view.StatusSuccessDeleteInternship}
	}

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, formRequest(view.InternshipDeletePath(id), url.Values{
		"internship": {id.String()},
		"confirm":    {"delete"},
		"return":     {"/work20/Acme"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, id, deleted)
	assert.Equal(t, "/work20/Acme?status=success-delete-internship", rec.Header().Get("Location"))
}

func TestInternshipDelete_Unconfirmed(t *testing.T) {
	d := newDeps()
	d.feed.deleteInternship = func(uuid.UUID) view.Result {
		t.Fatal("delete must be confirmed")
		return view.Result{}
	}
	id := uuid.New()

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, formRequest(view.InternshipDeletePath(id), url.Values{"internship": {id.String()}}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInternshipDelete_RejectsForeignReturn(t *testing.T) {
	d := newDeps()
	id := uuid.New()
	d.feed.deleteInternship = func(uuid.UUID) view.Result { return view.Result{Status: view.StatusSuccessDeleteInternship} }

	rec := httptest.NewRecorder()
	d.router(t).ServeHTTP(rec, formRequest(view.InternshipDeletePath(id), url.Values{
		"internship": {id.String()},
		"confirm":    {"delete"},
		"return":     {"//evil.example"},
	}))

	assert.Equal(t, "/work20?status=success-delete-internship", rec.Header().Get("Location"))
}
