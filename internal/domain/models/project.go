package models

import "time"

// ProjectStatus gates whether the project itself shows up on the public
// project list. Draft and archived projects are visible only to their
// owner or an admin; the status of a project is independent of the
// schedule state of its content items.
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// PubliclyListed reports whether a project in this status appears on
// the public project list for non-privileged viewers.
func (s ProjectStatus) PubliclyListed() bool {
	return s == ProjectActive || s == ProjectCompleted
}

// Project is a pre-selling development microsite. It owns a collection
// of scheduled content items (updates, offers, events).
type Project struct {
	ID          string        `json:"id"`
	CreatedBy   string        `json:"created_by"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Developer   string        `json:"developer"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Member is a project-microsite membership record. Members are managed
// by admins only.
type Member struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
