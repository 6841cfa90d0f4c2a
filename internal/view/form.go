package view

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"github.com/pkazala/work20/internal/domain"
)

// ErrRequiredFields is returned by Submit when a required draft field is
// empty. No mutation is issued in that case.
var ErrRequiredFields = errors.New("required fields are empty")

// Logo is either the URL of the stored logo or a newly chosen file.
// File wins when both are set.
type Logo struct {
	URL  string
	File *multipart.FileHeader
}

// Empty reports whether no logo was given at all.
func (l Logo) Empty() bool {
	return l.File == nil && strings.TrimSpace(l.URL) == ""
}

// Unchanged reports whether the stored logo is kept.
func (l Logo) Unchanged() bool {
	return l.File == nil
}

// StartUpDraft is the editable copy of a start-up held by a form.
type StartUpDraft struct {
	ID       uuid.UUID
	Name     string
	URL      string
	Logo     Logo
	Archived bool
}

// StartUpDraftFrom copies an existing record into a draft.
func StartUpDraftFrom(su domain.StartUp) StartUpDraft {
	return StartUpDraft{
		ID:       su.ID,
		Name:     su.Name,
		URL:      su.URL,
		Logo:     Logo{URL: su.Logo},
		Archived: su.Archived,
	}
}

// StartUpForm is the add or edit form for a start-up.
type StartUpForm struct {
	Draft StartUpDraft
	Alert Alert
	Popup StatusPopup
	edit  bool
}

// NewAddStartUpForm returns a form with an empty draft.
func NewAddStartUpForm() *StartUpForm {
	return &StartUpForm{}
}

// NewEditStartUpForm returns a form whose draft is a copy of su.
func NewEditStartUpForm(su domain.StartUp) *StartUpForm {
	return &StartUpForm{Draft: StartUpDraftFrom(su), edit: true}
}

// Edit reports whether the form edits an existing record.
func (f *StartUpForm) Edit() bool {
	return f.edit
}

// Missing lists the required fields that are empty.
func (f *StartUpForm) Missing() []string {
	var missing []string
	if strings.TrimSpace(f.Draft.Name) == "" {
		missing = append(missing, "name")
	}
	if f.Draft.Logo.Empty() {
		missing = append(missing, "logo")
	}
	if strings.TrimSpace(f.Draft.URL) == "" {
		missing = append(missing, "url")
	}
	return missing
}

// Submit hands the draft to mutate unless a required field is empty, in
// which case the empty-fields alert opens and ErrRequiredFields is returned.
// The mutation's result is shown in the form's popup. A successful add
// resets the draft.
func (f *StartUpForm) Submit(ctx context.Context, mutate func(context.Context, StartUpDraft) Result) (Result, error) {
	if len(f.Missing()) > 0 {
		f.Alert = NewAlert(AlertEmptyFields)
		return Result{}, ErrRequiredFields
	}

	r := mutate(ctx, f.Draft)
	f.Popup.Show(r)
	if !f.edit && r.Status == StatusSuccessAddStartUp {
		f.Draft = StartUpDraft{}
	}
	return r, nil
}

// InternshipForm is the add or edit form for an internship.
type InternshipForm struct {
	Draft domain.Internship
	Alert Alert
	Popup StatusPopup
	edit  bool
}

// NewAddInternshipForm returns a form with an empty draft.
func NewAddInternshipForm() *InternshipForm {
	return &InternshipForm{}
}

// NewEditInternshipForm returns a form whose draft is a copy of in.
func NewEditInternshipForm(in domain.Internship) *InternshipForm {
	in.Industries = append([]string(nil), in.Industries...)
	return &InternshipForm{Draft: in, edit: true}
}

// Edit reports whether the form edits an existing record.
func (f *InternshipForm) Edit() bool {
	return f.edit
}

// IndustriesText is the comma-separated industries input value.
func (f *InternshipForm) IndustriesText() string {
	return strings.Join(f.Draft.Industries, ", ")
}

// ParseIndustries splits a comma-separated input, keeping order and
// dropping blanks.
func ParseIndustries(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Missing lists the required fields that are empty. An active flag makes
// its paired field required.
func (f *InternshipForm) Missing() []string {
	d := f.Draft
	var missing []string
	if d.StartUpID == uuid.Nil {
		missing = append(missing, "startUpId")
	}
	for _, field := range []struct {
		name     string
		value    string
		required bool
	}{
		{"name", d.Name, true},
		{"type", d.Type, true},
		{"deadline", d.Deadline, true},
		{"description", d.Description, true},
		{"duration", d.Duration, true},
		{"durationShort", d.DurationShort, true},
		{"salary", d.Salary, d.SalaryActive},
		{"location", d.Location, d.LocationActive},
		{"requiredExperiences", d.RequiredExperiences, d.RequiredExperiencesActive},
		{"link", d.Link, true},
	} {
		if field.required && strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(d.Industries) == 0 {
		missing = append(missing, "industries")
	}
	return missing
}

// Submit behaves like StartUpForm.Submit. A successful add resets the draft.
func (f *InternshipForm) Submit(ctx context.Context, mutate func(context.Context, domain.Internship) Result) (Result, error) {
	if len(f.Missing()) > 0 {
		f.Alert = NewAlert(AlertEmptyFields)
		return Result{}, ErrRequiredFields
	}

	r := mutate(ctx, f.Draft)
	f.Popup.Show(r)
	if !f.edit && r.Status == StatusSuccessAddInternship {
		f.Draft = domain.Internship{}
	}
	return r, nil
}
