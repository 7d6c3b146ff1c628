package web

import (
	"anime-stream/internal/models"
	"anime-stream/internal/services"
)

type CatalogCard struct {
	Anime   models.Anime
	Visible bool
}

type CatalogPage struct {
	Title  string
	Notice *Notice
	Query  string
	Cards  []CatalogCard
	// Empty is true when no card survives the current query.
	Empty bool
}

type DetailPage struct {
	Title  string
	Notice *Notice
	Anime  *models.Anime
	Ad     *models.Advertisement
}

type AnimeFormView struct {
	Action    string
	EditingID string
	Form      services.AnimeForm
	Errors    map[string]string
}

type AdFormView struct {
	Action    string
	EditingID string
	Form      services.AdvertisementForm
	Errors    map[string]string
}

type AdminPage struct {
	Title     string
	Notice    *Notice
	Tab       string
	UserEmail string
	Anime     []models.Anime
	Ads       []models.Advertisement
	AnimeForm *AnimeFormView
	AdForm    *AdFormView
}

type ConfirmPage struct {
	Title     string
	Notice    *Notice
	Label     string
	Action    string
	CancelURL string
}

// NewCatalogPage marks which cards match query while keeping the full list,
// so the page can keep filtering as the user types.
func NewCatalogPage(all []models.Anime, query string, notice *Notice) CatalogPage {
	visible := make(map[string]bool)
	for _, a := range services.FilterByTitle(all, query) {
		visible[a.ID] = true
	}

	page := CatalogPage{
		Title:  "AnimeStream",
		Notice: notice,
		Query:  query,
		Cards:  make([]CatalogCard, 0, len(all)),
		Empty:  len(visible) == 0,
	}
	for _, a := range all {
		page.Cards = append(page.Cards, CatalogCard{Anime: a, Visible: visible[a.ID]})
	}
	return page
}
