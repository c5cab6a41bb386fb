package models

import (
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

type UserStatus string

const (
	UserEnabled  UserStatus = "enabled"
	UserDisabled UserStatus = "disabled"
)

type User struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Email    string     `json:"email" gorm:"unique;not null"`
	Password string     `json:"password,omitempty"`
	Role     Role       `json:"role" gorm:"not null"`
	Status   UserStatus `json:"status" gorm:"default:enabled"`

	Profile  *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	Listings []Listing `json:"listings,omitempty" gorm:"foreignKey:UserID"`
	Requests []Request `json:"requests,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }
func (u *User) IsProvider() bool { return u.Role == RoleProvider }
func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
