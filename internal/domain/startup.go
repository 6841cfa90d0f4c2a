// Package domain contains the core data types for the Work 2.0 service.
// This package has no dependencies on other internal packages and is
// imported by every other internal package (repo, service, feed, view, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// StartUp is a partner organisation offering internships.
// Logo is the public URL of the stored logo image.
// Archived start-ups are hidden from public listings but stay editable by admins.
type StartUp struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Logo      string    `json:"logo" validate:"required"`
	URL       string    `json:"url" validate:"required,url"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is the authenticated administrator. A nil *User means an anonymous
// visitor and disables every admin affordance.
type User struct {
	UID   string
	Email string
}
