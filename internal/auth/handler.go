package auth

import (
	"errors"
	"net/http"

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

// RegisterPublicRoutes attaches the unauthenticated credential routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/refresh", h.refresh)
	rg.POST("/auth/logout", h.logout)
}

// RegisterProtectedRoutes attaches the routes gated by the access token.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.me)
	rg.GET("/auth/profile", h.profile)
	rg.PUT("/auth/profile", h.updateProfile)
	rg.DELETE("/auth/profile", h.deleteAccount)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name, email and password are required", nil)
		return
	}

	pair, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "conflict", "email already registered", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name, email and password are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, pair)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		return
	}

	pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusBadRequest, "invalid_credentials", "invalid email or password", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		}
		return
	}

	respond.OK(c, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "refresh token is required", nil)
		return
	}

	access, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired refresh token", nil)
		case errors.Is(err, ErrTokenRevoked):
			respond.Error(c, http.StatusForbidden, "forbidden", "refresh token revoked", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to refresh session", nil)
		}
		return
	}

	respond.OK(c, gin.H{"accessToken": access})
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *Handler) logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "refresh token is required", nil)
		return
	}

	if err := h.Svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		switch {
		case errors.Is(err, ErrTokenNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "refresh token not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "refresh token is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log out", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "logged out"})
}

func (h *Handler) me(c *gin.Context) {
	h.respondProfile(c)
}

func (h *Handler) profile(c *gin.Context) {
	h.respondProfile(c)
}

func (h *Handler) respondProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	user, err := h.Svc.Profile(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}

	respond.OK(c, gin.H{"name": user.Name, "email": user.Email})
}

type updateProfileRequest struct {
	Name            string `json:"name"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	err := h.Svc.UpdateProfile(c.Request.Context(), userID, req.Name, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			respond.Error(c, http.StatusBadRequest, "invalid_credentials", "current password does not match", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "nothing to update", nil)
		case errors.Is(err, ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "profile updated"})
}

func (h *Handler) deleteAccount(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.DeleteAccount(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete account", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "account deleted"})
}
