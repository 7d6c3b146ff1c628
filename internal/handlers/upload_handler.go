package handlers

import (
	"context"

	"anime-stream/internal/services"
	"anime-stream/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Presigner issues direct-to-bucket upload URLs for poster images.
type Presigner interface {
	PresignPosterUpload(ctx context.Context, filename string) (*services.PresignedUpload, error)
}

type UploadHandler struct {
	presigner Presigner
	logger    *logrus.Logger
}

func NewUploadHandler(presigner Presigner, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		presigner: presigner,
		logger:    logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for a poster upload
// @Description Generate a presigned PUT URL for uploading a poster image to MinIO/S3. The returned public_url goes into the anime image_url field.
// @Tags upload
// @Produce json
// @Security BearerAuth
// @Param filename query string true "Poster filename (.jpg, .jpeg, .png, .webp, .gif)"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /admin/upload/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}

	upload, err := h.presigner.PresignPosterUpload(c.UserContext(), filename)
	if err != nil {
		h.logger.WithError(err).WithField("filename", filename).Error("Failed to generate presigned URL")
		return utils.AppErrorResponse(c, err, "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", upload)
}
