// Package seed loads the embedded demo fixtures used by cmd/seed.
package seed

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

// Fixtures is the full demo dataset. Properties reference their seller
// and projects their owner by principal email; cmd/seed maps those to
// the generated IDs at insert time.
type Fixtures struct {
	Principals []PrincipalFixture `yaml:"principals"`
	Properties []PropertyFixture  `yaml:"properties"`
	Projects   []ProjectFixture   `yaml:"projects"`
}

// PrincipalFixture is a demo account.
type PrincipalFixture struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
	Role  string `yaml:"role"`
}

// PropertyFixture is a demo listing.
type PropertyFixture struct {
	Seller      string   `yaml:"seller"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	ListingType string   `yaml:"listing_type"`
	Price       float64  `yaml:"price"`
	Address     string   `yaml:"address"`
	City        string   `yaml:"city"`
	Province    string   `yaml:"province"`
	Latitude    *float64 `yaml:"latitude"`
	Longitude   *float64 `yaml:"longitude"`
	AreaSqm     float64  `yaml:"area_sqm"`
	Bedrooms    int      `yaml:"bedrooms"`
	Bathrooms   int      `yaml:"bathrooms"`
	Amenities   []string `yaml:"amenities"`
}

// ProjectFixture is a demo microsite with its scheduled content.
type ProjectFixture struct {
	Owner       string          `yaml:"owner"`
	Name        string          `yaml:"name"`
	Slug        string          `yaml:"slug"`
	Description string          `yaml:"description"`
	Location    string          `yaml:"location"`
	Developer   string          `yaml:"developer"`
	Status      string          `yaml:"status"`
	Updates     []UpdateFixture `yaml:"updates"`
	Offers      []OfferFixture  `yaml:"offers"`
	Events      []EventFixture  `yaml:"events"`
}

// ScheduleFixture carries the visibility state for a content item.
type ScheduleFixture struct {
	Visibility  string     `yaml:"visibility"`
	ScheduledAt *time.Time `yaml:"scheduled_at"`
}

// WindowFixture carries the display window for offers and events.
type WindowFixture struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// UpdateFixture is a demo project update.
type UpdateFixture struct {
	Title    string          `yaml:"title"`
	Body     string          `yaml:"body"`
	Schedule ScheduleFixture `yaml:"schedule"`
}

// OfferFixture is a demo project offer.
type OfferFixture struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Terms       string          `yaml:"terms"`
	Schedule    ScheduleFixture `yaml:"schedule"`
	Window      WindowFixture   `yaml:"window"`
}

// EventFixture is a demo project event.
type EventFixture struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Venue       string          `yaml:"venue"`
	Schedule    ScheduleFixture `yaml:"schedule"`
	Window      WindowFixture   `yaml:"window"`
}

// Load parses the embedded demo fixture file.
func Load() (*Fixtures, error) {
	data, err := fixtureFiles.ReadFile("fixtures/demo.yaml")
	if err != nil {
		return nil, fmt.Errorf("read demo fixtures: %w", err)
	}

	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal demo fixtures: %w", err)
	}
	return &f, nil
}
