package records

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"capture-backend/internal/shared/server/middleware"
	"capture-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches record routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/records", h.list)
	rg.POST("/records", h.create)
	rg.GET("/records/:id", h.get)
	rg.PUT("/records/:id", h.update)
	rg.DELETE("/records/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	page := 1
	limit := 20
	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			page = parsed
		}
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	result, err := h.Svc.List(c.Request.Context(), userID, page, limit, c.Query("search"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "owner is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list records", nil)
		}
		return
	}

	respond.OK(c, toPageResponse(result))
}

type saveRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Comment string `json:"comment"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "title and content are required", nil)
		return
	}

	rec, err := h.Svc.Create(c.Request.Context(), userID, req.Title, req.Content, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "title and content are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save record", nil)
		}
		return
	}

	c.Set("recordId", rec.ID)
	respond.JSON(c, http.StatusCreated, toResponse(rec))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rec, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "record id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch record", nil)
		}
		return
	}

	respond.OK(c, toResponse(rec))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "title and content are required", nil)
		return
	}

	err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), req.Title, req.Content, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "title and content are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update record", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "record updated"})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "record id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete record", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "record deleted"})
}
