package edge

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/STAR-173/prms-admin-gateway/internal/config"
)

// BuildRouter assembles the edge engine: health probe plus the proxied
// public API surface. The edge knows nothing about authentication; the
// bearer header rides through it untouched.
func BuildRouter(cfg *config.Config) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), gin.Logger(), requestID())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	rw := NewRewriter(cfg.PublicPrefix, cfg.APIVersion, cfg.BackendURL)
	proxy := NewProxy(rw)

	api := r.Group(cfg.PublicPrefix)
	api.Any("/*path", func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	})

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Request.Header.Set("X-Request-ID", id)
		c.Next()
	}
}
