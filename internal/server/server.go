package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prestigo/internal/auth"
	"prestigo/internal/config"
	"prestigo/internal/reservation"
	"prestigo/internal/session"
	"prestigo/internal/venue"
)

// Handlers groups the domain handlers the router mounts.
type Handlers struct {
	Venues       *venue.Handler
	Sessions     *session.Handler
	Reservations *reservation.Handler
	Email        Mailer
}

type Server struct {
	router  *gin.Engine
	http    *http.Server
	config  *config.Config
	limiter *RateLimiter
}

func New(cfg *config.Config, h Handlers) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/venues", h.Venues.ListVenues)
		protected.GET("/venues/:venueID", h.Venues.GetVenue)
		protected.GET("/venues/:venueID/days", h.Venues.ListDays)
		protected.GET("/venues/:venueID/slots", h.Venues.ListSlots)

		protected.POST("/sessions", h.Sessions.Open)
		protected.GET("/sessions/:sessionID/slots", h.Sessions.Slots)
		protected.PUT("/sessions/:sessionID/day", h.Sessions.SetDay)
		protected.POST("/sessions/:sessionID/selection", h.Sessions.Select)
		protected.POST("/sessions/:sessionID/reservations", limiter.Middleware(), h.Sessions.Confirm)
		protected.GET("/sessions/:sessionID/attempts/:slotID", h.Sessions.Attempt)
		protected.DELETE("/sessions/:sessionID", h.Sessions.Close)

		protected.GET("/reservations", h.Reservations.ListMine)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/venues", h.Venues.CreateVenue)
		if h.Email != nil {
			admin.POST("/test-email", TestEmail(h.Email))
		}
	}

	return &Server{
		router:  router,
		config:  cfg,
		limiter: limiter,
	}
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	if s.http == nil {
		return nil
	}
	if err := s.http.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
