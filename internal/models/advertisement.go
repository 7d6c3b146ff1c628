package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Advertisement is an embeddable video ad with a click-through target.
// More than one row may be active at a time.
type Advertisement struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id" example:"5e1c1f8a-7d0b-4b1f-8f9e-2a3b4c5d6e7f"`
	Title     string    `gorm:"not null" json:"title" example:"Summer season pass"`
	VideoURL  string    `json:"video_url" example:"https://www.youtube.com/embed/dQw4w9WgXcQ"`
	LinkURL   string    `json:"link_url" example:"https://shop.example.com/season-pass"`
	IsActive  bool      `gorm:"index;not null;default:true" json:"is_active" example:"true"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Advertisement) TableName() string {
	return "advertisements"
}

func (a *Advertisement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
