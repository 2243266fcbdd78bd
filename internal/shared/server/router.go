package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KarimovMurodilla/lead-management-system/internal/authn"
	"github.com/KarimovMurodilla/lead-management-system/internal/leads"
	sharedauth "github.com/KarimovMurodilla/lead-management-system/internal/shared/auth"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/config"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/metrics"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/server/middleware"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/server/respond"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/storage/object"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Config       config.Config
	Issuer       *sharedauth.Issuer
	Store        object.ObjectStore
	LeadsHandler *leads.Handler
	AuthHandler  *authn.Handler
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

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/media/*key", mediaHandler(deps.Store))

	public := r.Group("")
	public.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"PUBLIC": {Rate: 5, Burst: 30},
		},
		DefaultGroup: "PUBLIC",
	}))
	deps.LeadsHandler.RegisterPublicRoutes(public)
	deps.AuthHandler.RegisterPublicRoutes(public)

	authed := r.Group("")
	authed.Use(middleware.Auth(deps.Issuer))
	deps.LeadsHandler.RegisterRoutes(authed)
	deps.AuthHandler.RegisterRoutes(authed)

	return r
}

// mediaHandler streams stored resume files, Content-Type sniffed from the
// object bytes.
func mediaHandler(store object.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" || store == nil {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}

		f, err := store.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
				return
			}
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		defer f.Close()

		var sniff [512]byte
		n, readErr := io.ReadFull(f, sniff[:])
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to read file", nil)
			return
		}

		c.Header("Content-Type", http.DetectContentType(sniff[:n]))
		c.Status(http.StatusOK)
		if n > 0 {
			if _, err := c.Writer.Write(sniff[:n]); err != nil {
				return
			}
		}
		_, _ = io.Copy(c.Writer, f)
	}
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
