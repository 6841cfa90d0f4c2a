package view

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidTransition is returned when a modal action is not allowed from
// the current state.
var ErrInvalidTransition = errors.New("invalid modal transition")

// ModalState is the state of an internship's detail modal.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
	ModalConfirmingDelete
)

func (s ModalState) String() string {
	switch s {
	case ModalOpen:
		return "open"
	case ModalConfirmingDelete:
		return "confirming-delete"
	default:
		return "closed"
	}
}

// DetailModal tracks one list item's detail view and its delete
// confirmation. Only administrators may request a delete.
//
// A list item can ask for delete from the card itself, so RequestDelete is
// also allowed from ModalClosed. Cancelling then returns to ModalOpen only if
// the request came from the open modal.
type DetailModal struct {
	state     ModalState
	admin     bool
	fromModal bool
}

// NewDetailModal returns a closed modal.
func NewDetailModal(admin bool) *DetailModal {
	return &DetailModal{admin: admin}
}

// State is the current state.
func (m *DetailModal) State() ModalState {
	return m.state
}

// Open shows the detail view.
func (m *DetailModal) Open() error {
	if m.state != ModalClosed {
		return fmt.Errorf("open from %s: %w", m.state, ErrInvalidTransition)
	}
	m.state = ModalOpen
	return nil
}

// Close hides the detail view.
func (m *DetailModal) Close() error {
	if m.state != ModalOpen {
		return fmt.Errorf("close from %s: %w", m.state, ErrInvalidTransition)
	}
	m.state = ModalClosed
	return nil
}

// RequestDelete shows the delete confirmation.
func (m *DetailModal) RequestDelete() error {
	if !m.admin || m.state == ModalConfirmingDelete {
		return fmt.Errorf("request delete from %s: %w", m.state, ErrInvalidTransition)
	}
	m.fromModal = m.state == ModalOpen
	m.state = ModalConfirmingDelete
	return nil
}

// CancelDelete hides the confirmation.
func (m *DetailModal) CancelDelete() error {
	if m.state != ModalConfirmingDelete {
		return fmt.Errorf("cancel delete from %s: %w", m.state, ErrInvalidTransition)
	}
	if m.fromModal {
		m.state = ModalOpen
	} else {
		m.state = ModalClosed
	}
	return nil
}

// ConfirmDelete closes the modal and then runs del. The modal stays closed
// whatever del returns.
func (m *DetailModal) ConfirmDelete(ctx context.Context, del func(context.Context) Result) (Result, error) {
	if m.state != ModalConfirmingDelete {
		return Result{}, fmt.Errorf("confirm delete from %s: %w", m.state, ErrInvalidTransition)
	}
	m.state = ModalClosed
	m.fromModal = false
	return del(ctx), nil
}

// Query parameters carrying the modal across page loads.
const (
	QueryInternship = "internship"
	QueryConfirm    = "confirm"
	QueryFrom       = "from"
	confirmDelete   = "delete"
	fromModal       = "modal"
)

// ModalFromQuery rebuilds the modal for internship id from a request's query.
// Confirmation is ignored for non-admins.
func ModalFromQuery(q url.Values, id string, admin bool) *DetailModal {
	m := NewDetailModal(admin)
	if q.Get(QueryInternship) != id {
		return m
	}
	if admin && q.Get(QueryConfirm) == confirmDelete {
		m.state = ModalConfirmingDelete
		m.fromModal = q.Get(QueryFrom) == fromModal
		return m
	}
	m.state = ModalOpen
	return m
}

// Query encodes the modal state for internship id. A closed modal encodes
// to an empty set.
func (m *DetailModal) Query(id string) url.Values {
	q := url.Values{}
	switch m.state {
	case ModalOpen:
		q.Set(QueryInternship, id)
	case ModalConfirmingDelete:
		q.Set(QueryInternship, id)
		q.Set(QueryConfirm, confirmDelete)
		if m.fromModal {
			q.Set(QueryFrom, fromModal)
		}
	}
	return q
}
