package handlers

import (
	"strconv"

	"anime-stream/internal/services"
)

// AnimeRequest is the JSON body for creating or updating an anime. Numbers
// are pointers so a missing field is reported as required rather than zero.
type AnimeRequest struct {
	Title       string   `json:"title" example:"Fullmetal Alchemist: Brotherhood"`
	Description string   `json:"description" example:"Two brothers search for the Philosopher's Stone."`
	ImageURL    string   `json:"image_url" example:"https://cdn.example.com/posters/fmab.jpg"`
	VideoURL    string   `json:"video_url" example:"https://www.youtube.com/embed/--IcmZkvL0Q"`
	Rating      *float64 `json:"rating" example:"9.1"`
	Genre       string   `json:"genre" example:"Action"`
	ReleaseYear *int     `json:"release_year" example:"2009"`
	Episodes    *int     `json:"episodes" example:"64"`
}

func (r AnimeRequest) toForm() services.AnimeForm {
	form := services.AnimeForm{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		VideoURL:    r.VideoURL,
		Genre:       r.Genre,
	}
	if r.Rating != nil {
		form.Rating = strconv.FormatFloat(*r.Rating, 'f', -1, 64)
	}
	if r.ReleaseYear != nil {
		form.ReleaseYear = strconv.Itoa(*r.ReleaseYear)
	}
	if r.Episodes != nil {
		form.Episodes = strconv.Itoa(*r.Episodes)
	}
	return form
}

// AdvertisementRequest is the JSON body for advertisements. is_active
// defaults to true when omitted.
type AdvertisementRequest struct {
	Title    string `json:"title" example:"Summer merch sale"`
	VideoURL string `json:"video_url" example:"https://www.youtube.com/embed/dQw4w9WgXcQ"`
	LinkURL  string `json:"link_url" example:"https://shop.example.com/summer"`
	IsActive *bool  `json:"is_active" example:"true"`
}

func (r AdvertisementRequest) toForm() services.AdvertisementForm {
	form := services.AdvertisementForm{
		Title:    r.Title,
		VideoURL: r.VideoURL,
		LinkURL:  r.LinkURL,
		IsActive: true,
	}
	if r.IsActive != nil {
		form.IsActive = *r.IsActive
	}
	return form
}

// SessionResponse describes the signed-in administrator.
type SessionResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
