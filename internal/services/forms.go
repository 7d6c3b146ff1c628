package services

import (
	"math"
	"strconv"
	"strings"
	"time"

	"anime-stream/internal/apperror"
	"anime-stream/internal/models"

	"github.com/go-playground/validator/v10"
)

const minReleaseYear = 1900

var validate = validator.New(validator.WithRequiredStructEnabled())

// AnimeForm is the admin form as submitted: every field is raw text.
type AnimeForm struct {
	Title       string `form:"title" json:"title" validate:"required"`
	Description string `form:"description" json:"description" validate:"required"`
	ImageURL    string `form:"image_url" json:"image_url" validate:"required,http_url"`
	VideoURL    string `form:"video_url" json:"video_url" validate:"required,http_url"`
	Rating      string `form:"rating" json:"rating" validate:"required"`
	Genre       string `form:"genre" json:"genre" validate:"required"`
	ReleaseYear string `form:"release_year" json:"release_year" validate:"required"`
	Episodes    string `form:"episodes" json:"episodes" validate:"required"`
}

type AdvertisementForm struct {
	Title    string `form:"title" json:"title" validate:"required"`
	VideoURL string `form:"video_url" json:"video_url" validate:"required,http_url"`
	LinkURL  string `form:"link_url" json:"link_url" validate:"required,http_url"`
	IsActive bool   `form:"is_active" json:"is_active"`
}

func DefaultAnimeForm(now time.Time) AnimeForm {
	return AnimeForm{
		Rating:      "0",
		Episodes:    "0",
		ReleaseYear: strconv.Itoa(now.Year()),
	}
}

func AnimeFormFrom(a *models.Anime) AnimeForm {
	return AnimeForm{
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		VideoURL:    a.VideoURL,
		Rating:      strconv.FormatFloat(a.Rating, 'f', -1, 64),
		Genre:       a.Genre,
		ReleaseYear: strconv.Itoa(a.ReleaseYear),
		Episodes:    strconv.Itoa(a.Episodes),
	}
}

func DefaultAdvertisementForm() AdvertisementForm {
	return AdvertisementForm{IsActive: true}
}

func AdvertisementFormFrom(ad *models.Advertisement) AdvertisementForm {
	return AdvertisementForm{
		Title:    ad.Title,
		VideoURL: ad.VideoURL,
		LinkURL:  ad.LinkURL,
		IsActive: ad.IsActive,
	}
}

// ToAnime validates the form and converts it into a row. now fixes the
// upper bound for release_year. Text is stored as typed; the templates
// escape it on output.
func (f AnimeForm) ToAnime(now time.Time) (*models.Anime, error) {
	f = f.trimmed()
	verr := apperror.NewValidationError()
	collectFieldErrors(verr, validate.Struct(f))

	anime := &models.Anime{
		Title:       f.Title,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		VideoURL:    f.VideoURL,
		Genre:       f.Genre,
	}

	if f.Rating != "" {
		rating, err := strconv.ParseFloat(f.Rating, 64)
		switch {
		case err != nil || math.IsNaN(rating):
			verr.Add("rating", "rating must be a number")
		case rating < 0 || rating > 10:
			verr.Add("rating", "rating must be between 0 and 10")
		default:
			anime.Rating = rating
		}
	}

	if f.Episodes != "" {
		episodes, err := strconv.Atoi(f.Episodes)
		switch {
		case err != nil:
			verr.Add("episodes", "episodes must be a whole number")
		case episodes < 0:
			verr.Add("episodes", "episodes must not be negative")
		default:
			anime.Episodes = episodes
		}
	}

	if f.ReleaseYear != "" {
		year, err := strconv.Atoi(f.ReleaseYear)
		maxYear := now.Year() + 1
		switch {
		case err != nil:
			verr.Add("release_year", "release_year must be a whole number")
		case year < minReleaseYear || year > maxYear:
			verr.Add("release_year", "release_year must be between "+strconv.Itoa(minReleaseYear)+" and "+strconv.Itoa(maxYear))
		default:
			anime.ReleaseYear = year
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return anime, nil
}

func (f AnimeForm) trimmed() AnimeForm {
	return AnimeForm{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		ImageURL:    strings.TrimSpace(f.ImageURL),
		VideoURL:    strings.TrimSpace(f.VideoURL),
		Rating:      strings.TrimSpace(f.Rating),
		Genre:       strings.TrimSpace(f.Genre),
		ReleaseYear: strings.TrimSpace(f.ReleaseYear),
		Episodes:    strings.TrimSpace(f.Episodes),
	}
}

func (f AdvertisementForm) ToAdvertisement() (*models.Advertisement, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.VideoURL = strings.TrimSpace(f.VideoURL)
	f.LinkURL = strings.TrimSpace(f.LinkURL)

	verr := apperror.NewValidationError()
	collectFieldErrors(verr, validate.Struct(f))
	if verr.HasErrors() {
		return nil, verr
	}

	return &models.Advertisement{
		Title:    f.Title,
		VideoURL: f.VideoURL,
		LinkURL:  f.LinkURL,
		IsActive: f.IsActive,
	}, nil
}

func collectFieldErrors(verr *apperror.ValidationError, err error) {
	if err == nil {
		return
	}
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.Add("form", err.Error())
		return
	}
	for _, fe := range fieldErrors {
		field := formFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			verr.Add(field, field+" is required")
		case "http_url", "url":
			verr.Add(field, field+" must be an http(s) URL")
		default:
			verr.Add(field, field+" is invalid")
		}
	}
}

func formFieldName(field string) string {
	names := map[string]string{
		"Title":       "title",
		"Description": "description",
		"ImageURL":    "image_url",
		"VideoURL":    "video_url",
		"LinkURL":     "link_url",
		"Rating":      "rating",
		"Genre":       "genre",
		"ReleaseYear": "release_year",
		"Episodes":    "episodes",
	}
	if name, ok := names[field]; ok {
		return name
	}
	return strings.ToLower(field)
}
