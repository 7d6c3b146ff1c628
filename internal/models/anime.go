package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Anime struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id" example:"0b8f5c2e-3a4d-4d4c-9a8e-1f2b3c4d5e6f"`
	Title       string    `gorm:"not null;index" json:"title" example:"Cowboy Bebop"`
	Description string    `gorm:"type:text" json:"description" example:"Bounty hunters drift through the solar system."`
	ImageURL    string    `json:"image_url" example:"https://cdn.example.com/posters/bebop.jpg"`
	VideoURL    string    `json:"video_url" example:"https://www.youtube.com/embed/qig4KOK2R2g"`
	Rating      float64   `gorm:"index;check:rating >= 0 AND rating <= 10" json:"rating" example:"8.9"`
	Genre       string    `json:"genre" example:"Sci-Fi"`
	ReleaseYear int       `json:"release_year" example:"1998"`
	Episodes    int       `gorm:"check:episodes >= 0" json:"episodes" example:"26"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Anime) TableName() string {
	return "anime"
}

func (a *Anime) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
