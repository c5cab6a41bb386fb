package models

import (
	"gorm.io/gorm"
)

type Profile struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"uniqueIndex"`
	FullName      string  `json:"full_name"`
	Location      string  `json:"location"`
	Bio           string  `json:"bio"`
	Phone         string  `json:"phone"`
	PictureURL    string  `json:"picture_url"`
	AverageRating float64 `json:"average_rating"`
}

// RecalculateRating refreshes AverageRating from the reviews received by
// the profile's owner. Called after every review create/update.
func (p *Profile) RecalculateRating(tx *gorm.DB) error {
	var avg *float64
	err := tx.Model(&Review{}).
		Where("reviewee_id = ?", p.UserID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return err
	}
	if avg != nil {
		p.AverageRating = *avg
	} else {
		p.AverageRating = 0
	}
	return tx.Save(p).Error
}
