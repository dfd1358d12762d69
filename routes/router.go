package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/middleware"
	"github.com/sidhant-sriv/roomshare-api/realtime"
	"github.com/sidhant-sriv/roomshare-api/service"
	"github.com/sidhant-sriv/roomshare-api/storage"
)

// Options wires the router. Hub and Objects are optional; their routes are
// not registered when nil.
type Options struct {
	Service              *service.Service
	JWTSecret            string
	Logger               *slog.Logger
	Hub                  *realtime.Hub
	Objects              storage.ObjectStore
	WSInsecureSkipVerify bool
}

// NewRouter builds the gin engine with every API route registered.
func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.AuthMiddleware(opts.JWTSecret)
	api := router.Group("/api")

	RoomRoutes(api, opts.Service, auth)
	ApplicationRoutes(api, opts.Service, auth)
	ChatRoutes(api, opts.Service, auth)
	FavoriteRoutes(api, opts.Service, auth)
	ProfileRoutes(api, opts.Service, auth)
	ReviewRoutes(api, opts.Service, auth)

	if opts.Hub != nil {
		RealtimeRoutes(api, &RealtimeHandler{
			Hub:                  opts.Hub,
			JWTSecret:            opts.JWTSecret,
			WSInsecureSkipVerify: opts.WSInsecureSkipVerify,
		})
	}
	if opts.Objects != nil {
		StorageRoutes(api, opts.Objects, auth)
	}
	return router
}
