package models

import "time"

// PropertyType classifies a listing.
type PropertyType string

const (
	PropertyHouse      PropertyType = "house"
	PropertyCondo      PropertyType = "condo"
	PropertyLot        PropertyType = "lot"
	PropertyCommercial PropertyType = "commercial"
)

// ListingType says whether a property is offered for sale or rent.
type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

// PropertyStatus tracks the sales lifecycle of a listing.
type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertyPending   PropertyStatus = "pending"
	PropertySold      PropertyStatus = "sold"
)

// Property is a marketplace listing owned by its seller.
type Property struct {
	ID          string         `json:"id"`
	SellerID    string         `json:"seller_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        PropertyType   `json:"type"`
	ListingType ListingType    `json:"listing_type"`
	Status      PropertyStatus `json:"status"`
	Price       float64        `json:"price"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	Province    string         `json:"province"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	AreaSqm     float64        `json:"area_sqm"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	Amenities   []string       `json:"amenities"`
	ImageURLs   []string       `json:"image_urls"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
