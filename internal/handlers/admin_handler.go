package handlers

import (
	"time"

	"anime-stream/internal/middleware"
	"anime-stream/internal/services"
	"anime-stream/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AdminHandler exposes the entity managers as JSON. Every mutation answers
// with the list refetched after the write.
type AdminHandler struct {
	anime  services.AnimeService
	ads    services.AdvertisementService
	logger *logrus.Logger
}

func NewAdminHandler(anime services.AnimeService, ads services.AdvertisementService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		anime:  anime,
		ads:    ads,
		logger: logger,
	}
}

// GetSession godoc
// @Summary Current admin session
// @Description Returns the signed-in administrator. The role is checked again on every call.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse{data=SessionResponse}
// @Failure 401 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Router /admin/session [get]
func (h *AdminHandler) GetSession(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authorization required")
	}

	resp := SessionResponse{UserID: session.UserID, Email: session.Email}
	if !session.ExpiresAt.IsZero() {
		resp.ExpiresAt = session.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Session retrieved successfully", resp)
}

// ListAnime godoc
// @Summary List anime for management
// @Description List every anime, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /admin/anime [get]
func (h *AdminHandler) ListAnime(c *fiber.Ctx) error {
	list, err := h.anime.List(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list anime")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve anime")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Anime retrieved successfully", list)
}

// CreateAnime godoc
// @Summary Create an anime
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param anime body AnimeRequest true "Anime request object"
// @Success 201 {object} utils.StandardResponse "Refetched list"
// @Failure 400 {object} utils.StandardResponse "Validation failed"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /admin/anime [post]
func (h *AdminHandler) CreateAnime(c *fiber.Ctx) error {
	var req AnimeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	list, err := h.anime.Create(c.UserContext(), req.toForm())
	if err != nil {
		return utils.AppErrorResponse(c, err, "Failed to create anime")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Anime created successfully", list)
}

// UpdateAnime godoc
// @Summary Update an anime
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Anime ID (UUID)"
// @Param anime body AnimeRequest true "Anime request object"
// @Success 200 {object} utils.StandardResponse "Refetched list"
// @Failure 400 {object} utils.StandardResponse "Validation failed"
// @Failure 404 {object} utils.StandardResponse "Anime not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /admin/anime/{id} [put]
func (h *AdminHandler) UpdateAnime(c *fiber.Ctx) error {
	var req AnimeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	list, err := h.anime.Update(c.UserContext(), c.Params("id"), req.toForm())
	if err != nil {
		return utils.AppErrorResponse(c, err, "Failed to update anime")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Anime updated successfully", list)
}

// DeleteAnime godoc
// @Summary Delete an anime
// @Description Deletion must be confirmed with confirm=true
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Anime ID (UUID)"
// @Param confirm query bool true "Confirm the deletion"
// @Success 200 {object} utils.StandardResponse "Refetched list"
// @Failure 404 {object} utils.StandardResponse "Anime not found"
// @Failure 428 {object} utils.StandardResponse "Confirmation required"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /admin/anime/{id} [delete]
func (h *AdminHandler) DeleteAnime(c *fiber.Ctx) error {
	list, err := h.anime.Delete(c.UserContext(), c.Params("id"), c.QueryBool("confirm"))
	if err != nil {
		return utils.AppErrorResponse(c, err, "Failed to delete anime")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Anime deleted successfully", list)
}

// ListAdvertisements godoc
// @Summary List advertisements
// @Description List every advertisement, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /admin/advertisements [get]
func (h *AdminHandler) ListAdvertisements(c *fiber.Ctx) error {
	ads, err := h.ads.List(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list advertisements")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve advertisements")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Advertisements retrieved successfully", ads)
}

// CreateAdvertisement godoc
// @Summary Create an advertisement
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param advertisement body AdvertisementRequest true "Advertisement request object"
// @Success 201 {object} utils.StandardResponse "Refetched list"
// @Failure 400 {object} utils.StandardResponse "Validation failed"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /admin/advertisements [post]
func (h *AdminHandler) CreateAdvertisement(c *fiber.Ctx) error {
	var req AdvertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	ads, err := h.ads.Create(c.UserContext(), req.toForm())
	if err != nil {
		return utils.AppErrorResponse(c, err, "Failed to create advertisement")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Advertisement created successfully", ads)
}

// UpdateAdvertisement godoc
// @Summary Update an advertisement
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advertisement ID (UUID)"
// @Param advertisement body AdvertisementRequest true "Advertisement request object"
// @Success 200 {object} utils.StandardResponse "Refetched list"
// @Failure 400 {object} utils.StandardResponse "Validation failed"
// @Failure 404 {object} utils.StandardResponse "Advertisement not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /admin/advertisements/{id} [put]
func (h *AdminHandler) UpdateAdvertisement(c *fiber.Ctx) error {
	var req AdvertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	ads, err := h.ads.Update(c.UserContext(), c.Params("id"), req.toForm())
	if err != nil {
		return utils.AppErrorResponse(c, err, "Failed to update advertisement")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Advertisement updated successfully", ads)
}

// DeleteAdvertisement godoc
// @Summary Delete an advertisement
// @Description Deletion must be confirmed with confirm=true
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advertisement ID (UUID)"
// @Param confirm query bool true "Confirm the deletion"
// @Success 200 {object} utils.StandardResponse "Refetched list"
// @Failure 404 {object} utils.StandardResponse "Advertisement not found"
// @Failure 428 {object} utils.StandardResponse "Confirmation required"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /admin/advertisements/{id} [delete]
func (h *AdminHandler) DeleteAdvertisement(c *fiber.Ctx) error {
	ads, err := h.ads.Delete(c.UserContext(), c.Params("id"), c.QueryBool("confirm"))
	if err != nil {
		return utils.AppErrorResponse(c, err, "Failed to delete advertisement")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Advertisement deleted successfully", ads)
}

// ToggleAdvertisement godoc
// @Summary Toggle an advertisement
// @Description Flip is_active on one advertisement. No confirmation is needed.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advertisement ID (UUID)"
// @Success 200 {object} utils.StandardResponse "Refetched list"
// @Failure 404 {object} utils.StandardResponse "Advertisement not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /admin/advertisements/{id}/toggle [post]
func (h *AdminHandler) ToggleAdvertisement(c *fiber.Ctx) error {
	ads, err := h.ads.Toggle(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.AppErrorResponse(c, err, "Failed to toggle advertisement")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Advertisement toggled successfully", ads)
}
