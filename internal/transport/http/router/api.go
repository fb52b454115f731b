package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	mdw "gin-gorm-users/internal/transport/http/middleware"
	resp "gin-gorm-users/internal/transport/http/response"
)

type Options struct {
	BasePath       string
	CORSOrigins    []string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	MaxInFlight    int64
}

func (o *Options) defaults() {
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	if o.MaxInFlight <= 0 {
		o.MaxInFlight = 300
	}
}

func NewAPIEngine(l *zap.Logger, o Options, mods ...APIModule) *gin.Engine {
	o.defaults()
	// unknown JSON fields are rejected instead of silently dropped
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		corsMiddleware(o.CORSOrigins),
		mdw.Timeout(o.RequestTimeout),
		mdw.ConcurrencyLimit(o.MaxInFlight),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(http.StatusNotFound, "route not found"))
	})
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, resp.Error(http.StatusMethodNotAllowed, ""))
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"status": "ok"})) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	mountAll(r.Group(o.BasePath), mods)
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	cfg.AllowHeaders = append(cfg.AllowHeaders, mdw.KeyRequestID)
	cfg.ExposeHeaders = []string{mdw.KeyRequestID}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
