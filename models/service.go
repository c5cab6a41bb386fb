package models

import (
	"gorm.io/gorm"
)

// Service is a catalog entry ("Plumbing", "House Cleaning", ...) that
// providers attach their listings to. Managed by admins.
type Service struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PictureURL  string `json:"picture_url"`

	Listings []Listing `json:"listings,omitempty" gorm:"foreignKey:ServiceID"`
}
