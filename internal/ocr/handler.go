package ocr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"capture-backend/internal/shared/server/middleware"
	"capture-backend/internal/shared/server/respond"
	"capture-backend/internal/shared/util"
)

// Handler wires the upload endpoint to the ingestion service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the upload route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/records/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "an image file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}
	defer file.Close()

	delta, err := h.Svc.ProcessImage(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidFileName):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		case errors.Is(err, ErrEngineFailure):
			respond.Error(c, http.StatusInternalServerError, "ocr_failure", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process image", nil)
		}
		return
	}

	respond.OK(c, gin.H{"delta": delta})
}
