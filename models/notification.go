package models

import (
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationRequest NotificationType = "request"
	NotificationQuote   NotificationType = "quote"
	NotificationBooking NotificationType = "booking"
	NotificationReview  NotificationType = "review"
	NotificationSystem  NotificationType = "system"
)

type Notification struct {
	gorm.Model
	UserID  uint             `json:"user_id" gorm:"index;not null"`
	Type    NotificationType `json:"type" gorm:"not null"`
	Message string           `json:"message" gorm:"not null"`
	Link    string           `json:"link"`
	IsRead  bool             `json:"is_read" gorm:"default:false"`
}
