package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"capture-backend/internal/auth"
	"capture-backend/internal/ocr"
	"capture-backend/internal/records"
	sharedauth "capture-backend/internal/shared/auth"
	"capture-backend/internal/shared/config"
	"capture-backend/internal/shared/server/middleware"
	"capture-backend/internal/shared/server/respond"
)

const credentialGroup = "CREDENTIALS"

// RouterDeps carries the handlers and verifier the router wires up.
type RouterDeps struct {
	Config         config.Config
	JWT            *sharedauth.Manager
	AuthHandler    *auth.Handler
	RecordsHandler *records.Handler
	OCRHandler     *ocr.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	public := api.Group("")
	public.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			credentialGroup: {Rate: 1, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/") {
				return credentialGroup
			}
			return ""
		},
	}))
	deps.AuthHandler.RegisterPublicRoutes(public)

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.JWT))
	deps.AuthHandler.RegisterProtectedRoutes(protected)
	deps.RecordsHandler.RegisterRoutes(protected)
	deps.OCRHandler.RegisterRoutes(protected)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
