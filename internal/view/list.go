package view

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/pkazala/work20/internal/domain"
)

// CombinedLoading is true while either source is still loading.
func CombinedLoading(startUpsLoading, internshipsLoading bool) bool {
	return startUpsLoading || internshipsLoading
}

// CompanyPath is the page listing one start-up's internships.
func CompanyPath(name string) string {
	return "/work20/" + url.PathEscape(name)
}

// InternshipEditPath is the admin edit form of an internship.
func InternshipEditPath(id uuid.UUID) string {
	return "/admin/work20/internship/edit/" + id.String()
}

// InternshipDeletePath receives the confirmed delete of an internship.
func InternshipDeletePath(id uuid.UUID) string {
	return "/admin/work20/internship/delete/" + id.String()
}

// StartUpEditPath is the admin edit form of a start-up.
func StartUpEditPath(id uuid.UUID) string {
	return "/admin/work20/start-up/edit/" + id.String()
}

// StartUpDeletePath receives the delete of a start-up.
func StartUpDeletePath(id uuid.UUID) string {
	return "/admin/work20/start-up/delete/" + id.String()
}

// Field is one label/value row of the detail view. Label is a translation key.
type Field struct {
	Label string
	Value string
}

// ListItem is one rendered internship card with its detail modal.
type ListItem struct {
	ID          uuid.UUID
	Title       string
	Type        string
	Duration    string
	Industries  []string
	StartUpName string
	StartUpLogo string
	// StartUpURL is the start-up's own website, opened in a new tab.
	StartUpURL string
	ApplyLink  string
	EditPath   string
	Fields     []Field
	Modal      *DetailModal
	Links      ModalLinks
	Admin      bool
	// ReturnPath is where a confirmed delete redirects.
	ReturnPath string
}

// ModalOpen reports whether the detail view is shown.
func (li ListItem) ModalOpen() bool {
	return li.Modal != nil && li.Modal.State() == ModalOpen
}

// ConfirmingDelete reports whether the delete confirmation is shown.
func (li ListItem) ConfirmingDelete() bool {
	return li.Modal != nil && li.Modal.State() == ModalConfirmingDelete
}

// DeleteAction is the form action confirming the delete.
func (li ListItem) DeleteAction() string {
	return InternshipDeletePath(li.ID)
}

// ModalLinks are the hrefs that move an item's modal to its next states.
// A link is empty when the transition is not allowed from the current state.
type ModalLinks struct {
	Open          string
	Close         string
	RequestDelete string
	CancelDelete  string
}

func modalLinks(path, id string, m *DetailModal) ModalLinks {
	return ModalLinks{
		Open:          modalHref(path, id, m, (*DetailModal).Open),
		Close:         modalHref(path, id, m, (*DetailModal).Close),
		RequestDelete: modalHref(path, id, m, (*DetailModal).RequestDelete),
		CancelDelete:  modalHref(path, id, m, (*DetailModal).CancelDelete),
	}
}

// modalHref applies step to a copy of m and encodes the resulting state.
func modalHref(path, id string, m *DetailModal, step func(*DetailModal) error) string {
	next := *m
	if err := step(&next); err != nil {
		return ""
	}
	if q := next.Query(id); len(q) > 0 {
		return path + "?" + q.Encode()
	}
	return path
}

// NewListItem builds the card for m. Industries are shown sorted without
// reordering m's own slice.
func NewListItem(m domain.MergedInternship) ListItem {
	industries := slices.Clone(m.Industries)
	slices.Sort(industries)

	fields := []Field{
		{Label: "work20.internship.deadlineApplication", Value: m.Deadline},
		{Label: "work20.internship.description", Value: m.Description},
		{Label: "work20.internship.duration", Value: m.Duration},
	}
	if v, ok := m.ShowLocation(); ok {
		fields = append(fields, Field{Label: "work20.internship.location", Value: v})
	}
	if v, ok := m.ShowSalary(); ok {
		fields = append(fields, Field{Label: "work20.internship.salary", Value: v})
	}
	if v, ok := m.ShowRequiredExperiences(); ok {
		fields = append(fields, Field{Label: "work20.internship.requiredExperiences", Value: v})
	}
	fields = append(fields,
		Field{Label: "work20.internship.industries", Value: strings.Join(m.Industries, ", ")},
		Field{Label: "work20.internship.type", Value: m.Type},
	)

	return ListItem{
		ID:          m.ID,
		Title:       m.StartUpName + " - " + m.Name,
		Type:        strings.ToLower(m.Type),
		Duration:    m.DurationShort,
		Industries:  industries,
		StartUpName: m.StartUpName,
		StartUpLogo: m.StartUpLogo,
		StartUpURL:  m.StartUpURL,
		ApplyLink:   m.Link,
		EditPath:    InternshipEditPath(m.ID),
		Fields:      fields,
	}
}

// Summary is the card's one-line description, e.g.
// "Work remote ● 3 mo ● ai, software". work is the translated "Work" label.
func (li ListItem) Summary(work string) string {
	return fmt.Sprintf("%s %s ● %s ● %s", work, li.Type, li.Duration, strings.Join(li.Industries, ", "))
}

// ListInput is everything a list needs: the two fetched sources with their
// flags, the viewer and the request query carrying modal state.
type ListInput struct {
	StartUps           []domain.StartUp
	StartUpsLoading    bool
	StartUpsErr        error
	Internships        []domain.Internship
	InternshipsLoading bool
	InternshipsErr     error
	User               *domain.User
	// CompanyID narrows the list to one start-up when set.
	CompanyID *uuid.UUID
	Query     url.Values
	// Path is the page the list is rendered on; modal links point back to it.
	Path string
}

// List is a rendered internship list.
type List struct {
	Loading bool
	Alerts  []Alert
	Items   []ListItem
	Admin   bool
}

// BuildList merges the visible sources and builds one card per internship.
// Each fetch error opens its own alert; data from the other source is still
// shown.
func BuildList(in ListInput) List {
	admin := in.User != nil
	merged := domain.Merge(
		domain.VisibleStartUps(in.StartUps, admin),
		domain.VisibleInternships(in.Internships, admin),
	).Items
	if in.CompanyID != nil {
		merged = domain.FilterByCompany(merged, *in.CompanyID)
	}

	items := make([]ListItem, 0, len(merged))
	for _, m := range merged {
		item := NewListItem(m)
		item.Modal = ModalFromQuery(in.Query, m.ID.String(), admin)
		item.Links = modalLinks(in.Path, m.ID.String(), item.Modal)
		item.Admin = admin
		item.ReturnPath = in.Path
		items = append(items, item)
	}

	return List{
		Loading: CombinedLoading(in.StartUpsLoading, in.InternshipsLoading),
		Alerts:  FetchAlerts(in.StartUpsErr, in.InternshipsErr),
		Items:   items,
		Admin:   admin,
	}
}

// LogoLink is one tile of the logos grid.
type LogoLink struct {
	Name string
	Logo string
	Href string
}

// Logos builds the logos grid from the visible start-ups.
func Logos(list []domain.StartUp, admin bool) []LogoLink {
	visible := domain.VisibleStartUps(list, admin)
	out := make([]LogoLink, 0, len(visible))
	for _, su := range visible {
		out = append(out, LogoLink{Name: su.Name, Logo: su.Logo, Href: CompanyPath(su.Name)})
	}
	return out
}
