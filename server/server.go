package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"github.com/erosk616101/agenda/internal/config"
	"github.com/erosk616101/agenda/internal/logger"
	"github.com/erosk616101/agenda/internal/store"
)

// Server exposes the local calendar over HTTP: a JSON API, an
// iCalendar feed, and a scheduled on-disk backup.
type Server struct {
	store *store.Store
	cfg   *config.Config
	echo  *echo.Echo
	cron  *cron.Cron
}

// New creates a new server over an open store
func New(st *store.Store, cfg *config.Config) (*Server, error) {
	s := &Server{
		store: st,
		cfg:   cfg,
	}

	s.setupEcho()

	if err := s.setupBackup(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			logger.Info("HTTP Request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("remote", req.RemoteAddr))

			err := next(c)

			res := c.Response()
			duration := time.Since(start)

			logger.Info("HTTP Response",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("size", res.Size),
				logger.F("duration", duration.String()))

			fmt.Printf("REQUEST: %s %s  status=%d  size=%d  duration=%s\n",
				req.Method, req.RequestURI, res.Status, res.Size, duration)

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check and calendar feed are public
	e.GET("/health", s.handleHealth)
	e.GET("/calendar.ics", s.handleFeed)

	api := e.Group("/api")
	api.Use(s.authMiddleware)
	api.GET("/appointments", s.handleList)
	api.POST("/appointments", s.handleCreate)
	api.GET("/appointments/:id", s.handleGet)
	api.PUT("/appointments/:id", s.handleUpdate)
	api.DELETE("/appointments/:id", s.handleDelete)

	s.echo = e
}

// Close stops the backup scheduler
func (s *Server) Close() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
