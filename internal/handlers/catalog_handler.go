package handlers

import (
	"anime-stream/internal/services"
	"anime-stream/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	service services.CatalogService
	logger  *logrus.Logger
}

func NewCatalogHandler(service services.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

// ListAnime godoc
// @Summary List anime
// @Description List the catalog ordered by rating, highest first, optionally filtered by a case-insensitive title substring
// @Tags anime
// @Accept json
// @Produce json
// @Param search query string false "Title substring"
// @Success 200 {object} utils.StandardResponse "List of anime"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /anime [get]
func (h *CatalogHandler) ListAnime(c *fiber.Ctx) error {
	ctx := c.UserContext()

	list, err := h.service.Browse(ctx, c.Query("search"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to browse catalog")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve anime")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Anime retrieved successfully", list)
}

// GetAnime godoc
// @Summary Get anime by ID
// @Description Get a single anime by its UUID
// @Tags anime
// @Accept json
// @Produce json
// @Param id path string true "Anime ID (UUID)"
// @Success 200 {object} utils.StandardResponse "Anime details"
// @Failure 404 {object} utils.StandardResponse "Anime not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /anime/{id} [get]
func (h *CatalogHandler) GetAnime(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	anime, err := h.service.GetAnime(ctx, id)
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Warn("Failed to get anime")
		return utils.AppErrorResponse(c, err, "Failed to retrieve anime")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Anime retrieved successfully", anime)
}

// GetActiveAdvertisement godoc
// @Summary Get the active advertisement
// @Description Returns one active advertisement, or null data when none is active or it cannot be loaded
// @Tags advertisements
// @Produce json
// @Success 200 {object} utils.StandardResponse "Active advertisement or null"
// @Router /advertisements/active [get]
func (h *CatalogHandler) GetActiveAdvertisement(c *fiber.Ctx) error {
	ad := h.service.ActiveAdvertisement(c.UserContext())
	if ad == nil {
		return c.Status(fiber.StatusOK).JSON(utils.StandardResponse{
			Status:  "success",
			Code:    fiber.StatusOK,
			Message: "No active advertisement",
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Advertisement retrieved successfully", ad)
}
