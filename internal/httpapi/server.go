// Package httpapi exposes the repository, the view aggregators and the AI
// collaborator as a JSON API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"homeinventory/internal/archive"
	"homeinventory/internal/assist"
	"homeinventory/internal/core"
)

// Options wires the handlers' collaborators. Repository and Archiver are
// required; a nil Assistant disables AI features.
type Options struct {
	Repository  *core.Repository
	Assistant   assist.Assistant
	Archiver    *archive.Archiver
	Logger      *zap.Logger
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

// Handler groups the route handlers.
type Handler struct {
	repo      *core.Repository
	assistant assist.Assistant
	archiver  *archive.Archiver
	logger    *zap.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Assistant == nil {
		opts.Assistant = assist.Disabled{}
	}
	h := &Handler{
		repo:      opts.Repository,
		assistant: opts.Assistant,
		archiver:  opts.Archiver,
		logger:    opts.Logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger), cors.New(corsConfig(opts.CORSOrigins)))
	_ = router.SetTrustedProxies(nil)

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		api.GET("/rooms", h.ListRooms)
		api.POST("/rooms", h.CreateRoom)
		api.GET("/rooms/:id", h.GetRoom)
		api.PUT("/rooms/:id", h.UpdateRoom)
		api.POST("/rooms/:id/suggestions", h.SuggestRoomItems)

		api.GET("/items", h.ListItems)
		api.POST("/items", h.CreateItem)
		api.GET("/items/:id", h.GetItem)
		api.PUT("/items/:id", h.UpdateItem)
		api.POST("/items/:id/manual", h.FindManual)
		api.POST("/items/:id/valuation", h.EstimateValue)

		api.GET("/projects", h.ListProjects)
		api.POST("/projects", h.CreateProject)
		api.GET("/projects/:id", h.GetProject)
		api.DELETE("/projects/:id", h.DeleteProject)

		api.GET("/catalog", h.Catalog)

		api.GET("/reports", h.Report)
		api.GET("/reports/export.csv", h.ExportReport(archive.FormatCSV))
		api.GET("/reports/export.xlsx", h.ExportReport(archive.FormatXLSX))

		api.GET("/backup", h.ExportBackup)
		api.POST("/backup", h.ImportBackup)
		api.GET("/archive", h.ListArchive)
		api.DELETE("/data", h.ClearData)

		api.GET("/preferences", h.GetPreferences)
		api.PUT("/preferences", h.UpdatePreferences)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.AllowCredentials = true
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		// credentials forbid a literal "*", so echo the caller's origin
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
			return
		}
		logger.Debug("request", fields...)
	}
}
