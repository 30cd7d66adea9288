package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/tkwed/tours-api/internal/handlers/tours"
	"github.com/tkwed/tours-api/internal/middleware"
)

// Store is everything the router needs from the database handle.
type Store interface {
	tours.Store
	PingContext(ctx context.Context) error
}

// Options configures the router.
type Options struct {
	Logger      *zap.Logger
	Store       Store
	ServiceName string
	CORSOrigins []string
}

// NewRouter builds the HTTP surface: the Tours routes plus health and metrics.
func NewRouter(o Options) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(o.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(o.Logger))
	r.Use(middleware.Metrics())
	r.Use(otelgin.Middleware(o.ServiceName))
	r.Use(middleware.CORS(o.CORSOrigins))
	r.Use(middleware.Errors(o.Logger))

	r.GET("/healthz", health(o.Store))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	th := tours.New(o.Store)
	api := r.Group("/api")
	{
		api.GET("/Tours", th.List)
		api.GET("/Tours/:id", th.Get)
		api.POST("/Tours", th.Create)
		api.PUT("/Tours/:id", th.Update)
		api.DELETE("/Tours/:id", th.Delete)
	}

	return r
}

func health(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
