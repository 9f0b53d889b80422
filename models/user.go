package models

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleWorker UserRole = "worker"
	RoleAdmin  UserRole = "admin"
)

// Location is a geotagged address shared by users and tasks.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Phone        string    `json:"phone,omitempty"`
	Role         UserRole  `json:"role" gorm:"not null;default:'client'"`
	Avatar       string    `json:"avatar"`
	Rating       float64   `json:"rating" gorm:"default:0"`
	TotalReviews int       `json:"totalReviews" gorm:"default:0"`
	Bio          string    `json:"bio,omitempty"`
	Skills       []string  `json:"skills,omitempty" gorm:"serializer:json"`
	Verified     bool      `json:"verified" gorm:"default:false"`
	Location     *Location `json:"location,omitempty" gorm:"embedded;embeddedPrefix:loc_"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser builds a freshly registered user. New accounts start unverified
// with no reviews and a generated initials avatar.
func NewUser(name, email, passwordHash string, role UserRole) User {
	return User{
		ID:           "user-" + uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Avatar:       "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=0D8ABC&color=fff",
		Rating:       0,
		TotalReviews: 0,
		Verified:     false,
		CreatedAt:    time.Now().UTC(),
	}
}
