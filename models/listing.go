package models

import (
	"gorm.io/gorm"
)

type Listing struct {
	gorm.Model
	UserID      uint    `json:"user_id"`
	User        User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ServiceID   uint    `json:"service_id"`
	Service     Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Title       string  `json:"title" gorm:"not null"`
	Description string  `json:"description"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	Location    string  `json:"location"`
	PictureURL  string  `json:"picture_url"`
	Available   bool    `json:"available" gorm:"default:true"`
}
