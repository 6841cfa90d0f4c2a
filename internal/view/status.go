// Package view holds the UI state of the Work 2.0 pages as plain Go values:
// alerts, the detail modal, form drafts and the status popup. Handlers build
// these from requests, drive their transitions and render them with the
// embedded html/template set. Nothing here performs I/O; mutations are passed
// in as functions.
package view

// Status is the outcome of the most recent admin mutation.
type Status int

const (
	StatusIdle Status = iota
	StatusSuccessAddStartUp
	StatusSuccessEditStartUp
	StatusSuccessDeleteStartUp
	StatusSuccessAddInternship
	StatusSuccessEditInternship
	StatusSuccessDeleteInternship
	StatusFailure
)

var statusNames = map[Status]string{
	StatusIdle:                    "",
	StatusSuccessAddStartUp:       "success-add-start-up",
	StatusSuccessEditStartUp:      "success-edit-start-up",
	StatusSuccessDeleteStartUp:    "success-delete-start-up",
	StatusSuccessAddInternship:    "success-add-internship",
	StatusSuccessEditInternship:   "success-edit-internship",
	StatusSuccessDeleteInternship: "success-delete-internship",
	StatusFailure:                 "failure",
}

// String returns the query-string form of s. StatusIdle is the empty string.
func (s Status) String() string {
	return statusNames[s]
}

// MessageKey is the translation key of the popup text for s.
func (s Status) MessageKey() string {
	if s == StatusIdle {
		return ""
	}
	return "work20.status." + s.String()
}

// Success reports whether s is one of the success outcomes.
func (s Status) Success() bool {
	return s != StatusIdle && s != StatusFailure
}

// ParseStatus is the inverse of Status.String. Unknown values are idle.
func ParseStatus(v string) Status {
	for s, name := range statusNames {
		if name == v && v != "" {
			return s
		}
	}
	return StatusIdle
}

// Result is what every mutation returns. Err is set only for StatusFailure.
type Result struct {
	Status Status
	Err    error
}

// Failed builds a failure result.
func Failed(err error) Result {
	return Result{Status: StatusFailure, Err: err}
}

// StatusPopup shows the outcome of the last mutation until it is reset.
type StatusPopup struct {
	status Status
}

// Show displays r's outcome.
func (p *StatusPopup) Show(r Result) {
	p.status = r.Status
}

// Reset returns the popup to idle.
func (p *StatusPopup) Reset() {
	p.status = StatusIdle
}

// Status is the outcome currently displayed.
func (p StatusPopup) Status() Status {
	return p.status
}

// Open reports whether the popup is visible.
func (p StatusPopup) Open() bool {
	return p.status != StatusIdle
}
