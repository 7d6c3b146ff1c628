package routes

import (
	"anime-stream/internal/handlers"
	"anime-stream/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	gate *middleware.Gate,
	catalogHandler *handlers.CatalogHandler,
	adminHandler *handlers.AdminHandler,
	uploadHandler *handlers.UploadHandler,
	pagesHandler *handlers.PagesHandler,
) {
	// Public pages
	app.Get("/", pagesHandler.Catalog)
	app.Get("/anime/:id", pagesHandler.Detail)

	// Registered ahead of the admin group so signing out never runs the gate.
	app.Post("/admin/logout", pagesHandler.Logout)

	// Admin pages - role checked on every request
	admin := app.Group("/admin", gate.RequireAdminPage())
	{
		admin.Get("/", pagesHandler.Admin)

		admin.Post("/anime", pagesHandler.CreateAnime)
		admin.Post("/anime/:id", pagesHandler.UpdateAnime)
		admin.Get("/anime/:id/delete", pagesHandler.ConfirmDeleteAnime)
		admin.Post("/anime/:id/delete", pagesHandler.DeleteAnime)

		admin.Post("/ads", pagesHandler.CreateAdvertisement)
		admin.Post("/ads/:id", pagesHandler.UpdateAdvertisement)
		admin.Get("/ads/:id/delete", pagesHandler.ConfirmDeleteAdvertisement)
		admin.Post("/ads/:id/delete", pagesHandler.DeleteAdvertisement)
		admin.Post("/ads/:id/toggle", pagesHandler.ToggleAdvertisement)
	}

	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Public catalog routes
	anime := v1.Group("/anime")
	{
		anime.Get("/", catalogHandler.ListAnime)
		anime.Get("/:id", catalogHandler.GetAnime)
	}
	v1.Get("/advertisements/active", catalogHandler.GetActiveAdvertisement)

	// Admin routes
	adminAPI := v1.Group("/admin", gate.RequireAdmin())
	{
		adminAPI.Get("/session", adminHandler.GetSession)

		adminAPI.Get("/anime", adminHandler.ListAnime)
		adminAPI.Post("/anime", adminHandler.CreateAnime)
		adminAPI.Put("/anime/:id", adminHandler.UpdateAnime)
		adminAPI.Delete("/anime/:id", adminHandler.DeleteAnime)

		adminAPI.Get("/advertisements", adminHandler.ListAdvertisements)
		adminAPI.Post("/advertisements", adminHandler.CreateAdvertisement)
		adminAPI.Put("/advertisements/:id", adminHandler.UpdateAdvertisement)
		adminAPI.Delete("/advertisements/:id", adminHandler.DeleteAdvertisement)
		adminAPI.Post("/advertisements/:id/toggle", adminHandler.ToggleAdvertisement)

		adminAPI.Get("/upload/presign", uploadHandler.GetPresignedURL)
	}
}
