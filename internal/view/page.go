package view

import (
	"net/url"

	"github.com/pkazala/work20/internal/domain"
)

// QueryStatus carries a mutation's outcome across a redirect.
const QueryStatus = "status"

// Page is the data shared by every page: the viewer, the processing bar and
// the status popup.
type Page struct {
	Lang       string
	User       *domain.User
	Processing bool
	Popup      StatusPopup
	// PopupClose is the current URL without the status parameter.
	PopupClose string
}

// NewPage reads the status popup from the request URL.
func NewPage(lang string, user *domain.User, processing bool, u *url.URL) Page {
	p := Page{Lang: lang, User: user, Processing: processing}
	p.Popup.Show(Result{Status: ParseStatus(u.Query().Get(QueryStatus))})

	q := u.Query()
	q.Del(QueryStatus)
	p.PopupClose = u.Path
	if len(q) > 0 {
		p.PopupClose += "?" + q.Encode()
	}
	return p
}

// WithStatus returns path with r's status appended for the page it
// redirects to.
func WithStatus(path string, r Result) string {
	if r.Status == StatusIdle {
		return path
	}
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	q.Set(QueryStatus, r.Status.String())
	u.RawQuery = q.Encode()
	return u.String()
}

// ListPage is the main listing and the per-company listing.
type ListPage struct {
	Page
	// Company is set on a company page.
	Company *domain.StartUp
	List    List
}

// LogosPage is the start-ups grid.
type LogosPage struct {
	Page
	Loading bool
	Alerts  []Alert
	Logos   []LogoLink
}

// StartUpFormPage renders the start-up add or edit form.
type StartUpFormPage struct {
	Page
	Form   *StartUpForm
	Action string
	// DeleteAction is set on the edit form only.
	DeleteAction string
}

// InternshipFormPage renders the internship add or edit form. StartUps
// fills the start-up select.
type InternshipFormPage struct {
	Page
	Form     *InternshipForm
	Action   string
	StartUps []domain.StartUp
}
