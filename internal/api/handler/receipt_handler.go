package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

// ReceiptHandler handles multipart receipt uploads.
type ReceiptHandler struct {
	service ports.ReceiptService
}

func NewReceiptHandler(service ports.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{service: service}
}

// Upload handles POST /api/uploads/receipt. The file is expected in the
// "file" multipart form field.
//
// @Summary      Upload a receipt file
// @Tags         receipts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Receipt file"
// @Success      201   {object}  ports.UploadReceiptResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/uploads/receipt [post]
func (h *ReceiptHandler) Upload(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return domain.ErrNoFile
	}

	f, err := fh.Open()
	if err != nil {
		return domain.ErrNoFile
	}
	defer f.Close()

	result, err := h.service.Upload(c.Request().Context(), ports.UploadReceiptInput{
		UserID:      userID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		File:        f,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}
