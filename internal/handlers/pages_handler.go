package handlers

import (
	"errors"
	"net/url"

	"anime-stream/internal/apperror"
	"anime-stream/internal/middleware"
	"anime-stream/internal/services"
	"anime-stream/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	tabAnime = "anime"
	tabAds   = "ads"

	siteName = "AnimeStream"
)

// PagesHandler serves the server-rendered site. Admin form posts follow
// post/redirect/get; a rejected form is rendered again with its errors.
type PagesHandler struct {
	catalog services.CatalogService
	anime   services.AnimeService
	ads     services.AdvertisementService
	gate    *services.AdminGate
	session *middleware.Gate
	logger  *logrus.Logger
}

func NewPagesHandler(
	catalog services.CatalogService,
	anime services.AnimeService,
	ads services.AdvertisementService,
	gate *services.AdminGate,
	session *middleware.Gate,
	logger *logrus.Logger,
) *PagesHandler {
	return &PagesHandler{
		catalog: catalog,
		anime:   anime,
		ads:     ads,
		gate:    gate,
		session: session,
		logger:  logger,
	}
}

func (h *PagesHandler) Catalog(c *fiber.Ctx) error {
	query := c.Query("q")
	dismiss := "/"
	if query != "" {
		dismiss = "/?q=" + url.QueryEscape(query)
	}
	notice := web.LookupNotice(c.Query("notice"), dismiss)

	all, err := h.catalog.Browse(c.UserContext(), "")
	if err != nil {
		h.logger.WithError(err).Error("Failed to load catalog page")
		notice = web.LookupNotice("load_failed", dismiss)
	}

	return c.Render("catalog", web.NewCatalogPage(all, query, notice))
}

func (h *PagesHandler) Detail(c *fiber.Ctx) error {
	id := c.Params("id")
	anime, err := h.catalog.GetAnime(c.UserContext(), id)
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Warn("Failed to load anime page")
		return c.Redirect("/?notice=load_failed", fiber.StatusSeeOther)
	}

	return c.Render("detail", web.DetailPage{
		Title: anime.Title + " | " + siteName,
		Anime: anime,
		Ad:    h.catalog.ActiveAdvertisement(c.UserContext()),
	})
}

func (h *PagesHandler) Admin(c *fiber.Ctx) error {
	tab := adminTab(c.Query("tab"))
	page := h.adminPage(c, tab, c.Query("notice"))

	editID := c.Query("edit")
	switch {
	case editID != "" && tab == tabAnime:
		anime, err := h.anime.Get(c.UserContext(), editID)
		if err != nil {
			h.logger.WithError(err).WithField("id", editID).Warn("Failed to load anime for editing")
			page.Notice = web.LookupNotice("load_failed", adminURL(tab))
			break
		}
		page.AnimeForm = &web.AnimeFormView{
			Action:    "/admin/anime/" + anime.ID,
			EditingID: anime.ID,
			Form:      services.AnimeFormFrom(anime),
		}
	case editID != "" && tab == tabAds:
		ad, err := h.ads.Get(c.UserContext(), editID)
		if err != nil {
			h.logger.WithError(err).WithField("id", editID).Warn("Failed to load advertisement for editing")
			page.Notice = web.LookupNotice("load_failed", adminURL(tab))
			break
		}
		page.AdForm = &web.AdFormView{
			Action:    "/admin/ads/" + ad.ID,
			EditingID: ad.ID,
			Form:      services.AdvertisementFormFrom(ad),
		}
	case c.Query("new") != "" && tab == tabAnime:
		page.AnimeForm = &web.AnimeFormView{Action: "/admin/anime", Form: h.anime.NewForm()}
	case c.Query("new") != "" && tab == tabAds:
		page.AdForm = &web.AdFormView{Action: "/admin/ads", Form: h.ads.NewForm()}
	}

	return c.Render("admin", page)
}

func (h *PagesHandler) CreateAnime(c *fiber.Ctx) error {
	return h.saveAnime(c, "", "anime_created")
}

func (h *PagesHandler) UpdateAnime(c *fiber.Ctx) error {
	return h.saveAnime(c, c.Params("id"), "anime_updated")
}

func (h *PagesHandler) saveAnime(c *fiber.Ctx, id, success string) error {
	var form services.AnimeForm
	if err := c.BodyParser(&form); err != nil {
		return h.redirectAdmin(c, tabAnime, "invalid_form")
	}

	var err error
	if id == "" {
		_, err = h.anime.Create(c.UserContext(), form)
	} else {
		_, err = h.anime.Update(c.UserContext(), id, form)
	}

	if err == nil {
		return h.redirectAdmin(c, tabAnime, success)
	}

	action := "/admin/anime"
	if id != "" {
		action += "/" + id
	}
	status, notice, fieldErrors := h.rejection(err, tabAnime, "anime_failed")
	page := h.adminPage(c, tabAnime, "")
	page.Notice = web.LookupNotice(notice, adminURL(tabAnime))
	page.AnimeForm = &web.AnimeFormView{Action: action, EditingID: id, Form: form, Errors: fieldErrors}
	return c.Status(status).Render("admin", page)
}

func (h *PagesHandler) ConfirmDeleteAnime(c *fiber.Ctx) error {
	id := c.Params("id")
	anime, err := h.anime.Get(c.UserContext(), id)
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Warn("Failed to load anime for deletion")
		return h.redirectAdmin(c, tabAnime, "load_failed")
	}

	return c.Render("confirm", web.ConfirmPage{
		Title:     "Delete anime | " + siteName,
		Label:     anime.Title,
		Action:    "/admin/anime/" + id + "/delete",
		CancelURL: adminURL(tabAnime),
	})
}

func (h *PagesHandler) DeleteAnime(c *fiber.Ctx) error {
	_, err := h.anime.Delete(c.UserContext(), c.Params("id"), confirmed(c))
	switch {
	case errors.Is(err, apperror.ErrConfirmationRequired):
		return h.redirectAdmin(c, tabAnime, "confirm_missing")
	case err != nil:
		return h.redirectAdmin(c, tabAnime, "anime_del_fail")
	}
	return h.redirectAdmin(c, tabAnime, "anime_deleted")
}

func (h *PagesHandler) CreateAdvertisement(c *fiber.Ctx) error {
	return h.saveAdvertisement(c, "", "ad_created")
}

func (h *PagesHandler) UpdateAdvertisement(c *fiber.Ctx) error {
	return h.saveAdvertisement(c, c.Params("id"), "ad_updated")
}

func (h *PagesHandler) saveAdvertisement(c *fiber.Ctx, id, success string) error {
	var form services.AdvertisementForm
	if err := c.BodyParser(&form); err != nil {
		return h.redirectAdmin(c, tabAds, "invalid_form")
	}

	var err error
	if id == "" {
		_, err = h.ads.Create(c.UserContext(), form)
	} else {
		_, err = h.ads.Update(c.UserContext(), id, form)
	}

	if err == nil {
		return h.redirectAdmin(c, tabAds, success)
	}

	action := "/admin/ads"
	if id != "" {
		action += "/" + id
	}
	status, notice, fieldErrors := h.rejection(err, tabAds, "ad_failed")
	page := h.adminPage(c, tabAds, "")
	page.Notice = web.LookupNotice(notice, adminURL(tabAds))
	page.AdForm = &web.AdFormView{Action: action, EditingID: id, Form: form, Errors: fieldErrors}
	return c.Status(status).Render("admin", page)
}

func (h *PagesHandler) ConfirmDeleteAdvertisement(c *fiber.Ctx) error {
	id := c.Params("id")
	ad, err := h.ads.Get(c.UserContext(), id)
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Warn("Failed to load advertisement for deletion")
		return h.redirectAdmin(c, tabAds, "load_failed")
	}

	return c.Render("confirm", web.ConfirmPage{
		Title:     "Delete advertisement | " + siteName,
		Label:     ad.Title,
		Action:    "/admin/ads/" + id + "/delete",
		CancelURL: adminURL(tabAds),
	})
}

func (h *PagesHandler) DeleteAdvertisement(c *fiber.Ctx) error {
	_, err := h.ads.Delete(c.UserContext(), c.Params("id"), confirmed(c))
	switch {
	case errors.Is(err, apperror.ErrConfirmationRequired):
		return h.redirectAdmin(c, tabAds, "confirm_missing")
	case err != nil:
		return h.redirectAdmin(c, tabAds, "ad_del_fail")
	}
	return h.redirectAdmin(c, tabAds, "ad_deleted")
}

func (h *PagesHandler) ToggleAdvertisement(c *fiber.Ctx) error {
	if _, err := h.ads.Toggle(c.UserContext(), c.Params("id")); err != nil {
		return h.redirectAdmin(c, tabAds, "ad_toggle_fail")
	}
	return h.redirectAdmin(c, tabAds, "")
}

// Logout ends the session at the auth service and always clears the cookie,
// even when the remote sign-out fails.
func (h *PagesHandler) Logout(c *fiber.Ctx) error {
	if err := h.gate.Logout(c.UserContext(), h.session.Token(c)); err != nil {
		h.logger.WithError(err).Warn("Remote sign-out failed")
	}
	h.session.ClearSession(c)
	return c.Redirect("/?notice=logged_out", fiber.StatusSeeOther)
}

// rejection decides how a refused form is shown again. Validation failures
// carry field errors; anything else gets the generic failure notice.
func (h *PagesHandler) rejection(err error, tab, failure string) (int, string, map[string]string) {
	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusUnprocessableEntity, "invalid_form", verr.Fields
	}
	h.logger.WithError(err).WithField("tab", tab).Warn("Admin form rejected by the store")
	return fiber.StatusInternalServerError, failure, nil
}

// adminPage loads the list behind tab. A failed load leaves the list empty
// and replaces the notice.
func (h *PagesHandler) adminPage(c *fiber.Ctx, tab, notice string) web.AdminPage {
	page := web.AdminPage{
		Title:  "Admin | " + siteName,
		Notice: web.LookupNotice(notice, adminURL(tab)),
		Tab:    tab,
	}
	if session := middleware.CurrentSession(c); session != nil {
		page.UserEmail = session.Email
	}

	var err error
	if tab == tabAds {
		page.Ads, err = h.ads.List(c.UserContext())
	} else {
		page.Anime, err = h.anime.List(c.UserContext())
	}
	if err != nil {
		h.logger.WithError(err).WithField("tab", tab).Error("Failed to load admin list")
		page.Notice = web.LookupNotice("list_failed", adminURL(tab))
	}
	return page
}

func (h *PagesHandler) redirectAdmin(c *fiber.Ctx, tab, notice string) error {
	return c.Redirect(middleware.WithNotice(adminURL(tab), notice), fiber.StatusSeeOther)
}

func adminTab(tab string) string {
	if tab == tabAds {
		return tabAds
	}
	return tabAnime
}

func adminURL(tab string) string {
	return "/admin?tab=" + tab
}

func confirmed(c *fiber.Ctx) bool {
	return c.FormValue("confirm") == "yes"
}
