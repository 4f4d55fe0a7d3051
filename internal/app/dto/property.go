package dto

import (
	"time"

	domainproperty "staybook/internal/domain/property"
)

type PropertySummary struct {
	ID                 string    `json:"id"`
	HostID             string    `json:"host_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	PricePerNightCents int64     `json:"price_per_night_cents"`
	Location           string    `json:"location,omitempty"`
	ImageURL           string    `json:"image_url,omitempty"`
	Available          bool      `json:"available"`
	CreatedAt          time.Time `json:"created_at"`
}

type PropertyCollection struct {
	Items []PropertySummary `json:"items"`
}

func MapPropertySummary(p *domainproperty.Property) PropertySummary {
	return PropertySummary{
		ID:                 string(p.ID),
		HostID:             p.HostID,
		Title:              p.Title,
		Description:        p.Description,
		PricePerNightCents: p.PricePerNightCents,
		Location:           p.Location,
		ImageURL:           p.ImageURL,
		Available:          p.Available,
		CreatedAt:          p.CreatedAt,
	}
}
