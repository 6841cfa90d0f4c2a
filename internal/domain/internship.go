package domain

import (
	"time"

	"github.com/google/uuid"
)

// Internship is a posting owned by exactly one StartUp.
//
// The three *Active flags gate their paired optional field: when a flag is
// false the paired value is not authoritative even if it is non-empty.
// Use the Show* accessors rather than reading the raw fields for display.
type Internship struct {
	ID                        uuid.UUID `json:"id"`
	StartUpID                 uuid.UUID `json:"start_up_id" validate:"required"`
	Name                      string    `json:"name" validate:"required"`
	Type                      string    `json:"type" validate:"required"`
	Industries                []string  `json:"industries" validate:"min=1,dive,required"`
	Deadline                  string    `json:"deadline" validate:"required"`
	Description               string    `json:"description" validate:"required"`
	Duration                  string    `json:"duration" validate:"required"`
	DurationShort             string    `json:"duration_short" validate:"required"`
	SalaryActive              bool      `json:"salary_active"`
	Salary                    string    `json:"salary" validate:"required_if=SalaryActive true"`
	LocationActive            bool      `json:"location_active"`
	Location                  string    `json:"location" validate:"required_if=LocationActive true"`
	RequiredExperiencesActive bool      `json:"required_experiences_active"`
	RequiredExperiences       string    `json:"required_experiences" validate:"required_if=RequiredExperiencesActive true"`
	Link                      string    `json:"link" validate:"required,url"`
	Archived                  bool      `json:"archived"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// ShowSalary returns the salary and whether it should be displayed.
func (i Internship) ShowSalary() (string, bool) {
	return i.Salary, i.SalaryActive
}

// ShowLocation returns the location and whether it should be displayed.
func (i Internship) ShowLocation() (string, bool) {
	return i.Location, i.LocationActive
}

// ShowRequiredExperiences returns the required experiences and whether they
// should be displayed.
func (i Internship) ShowRequiredExperiences() (string, bool) {
	return i.RequiredExperiences, i.RequiredExperiencesActive
}

// MergedInternship is an Internship joined with its owning start-up's display
// fields. It is derived for rendering and never persisted.
type MergedInternship struct {
	Internship
	StartUpName string `json:"start_up_name"`
	StartUpLogo string `json:"start_up_logo"`
	StartUpURL  string `json:"start_up_url"`
}
