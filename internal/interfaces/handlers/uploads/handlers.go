package uploads

import (
	upsvc "wasteline-backend/internal/application/uploads"
	"wasteline-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *upsvc.Service
}

// SignRequest body for the signed-upload endpoints.
type SignRequest struct {
	FileName string `json:"file_name"`
}

// SignListingImage POST /api/v1/uploads/listing-image
func (h *Handlers) SignListingImage(c *fiber.Ctx) error {
	return h.sign(c, upsvc.BucketListingImages)
}

// SignReportImage POST /api/v1/uploads/report-image
func (h *Handlers) SignReportImage(c *fiber.Ctx) error {
	return h.sign(c, upsvc.BucketReportImages)
}

func (h *Handlers) sign(c *fiber.Ctx, bucket string) error {
	var body SignRequest
	if err := c.BodyParser(&body); err != nil || body.FileName == "" {
		return response.Error(c, "file_name is required", fiber.StatusBadRequest, nil)
	}
	result, err := h.Service.GetSignedUploadURL(c.Context(), bucket, body.FileName)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Signed upload URL created successfully", result, nil)
}
