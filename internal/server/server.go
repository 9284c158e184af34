// Package server exposes the solver over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/piwi3910/RoomPlan/internal/engine"
	"github.com/piwi3910/RoomPlan/internal/export"
	"github.com/piwi3910/RoomPlan/internal/model"
)

// SolveRequest is a scenario document with optional per-request settings.
type SolveRequest struct {
	model.Scenario
	Settings *model.Settings `json:"settings,omitempty"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error string     `json:"error"`
	Code  model.Code `json:"code,omitempty"`
}

// Server serves the solve API.
type Server struct {
	settings model.Settings
	logger   *log.Logger
	router   *gin.Engine
}

// New builds the router. Settings are the defaults for requests that do not
// carry their own.
func New(settings model.Settings, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{settings: settings.WithDefaults(), logger: logger}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api/v1")
	api.POST("/solve", s.handleSolve)
	api.GET("/settings/default", s.handleDefaultSettings)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Microsecond))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDefaultSettings(c *gin.Context) {
	c.JSON(http.StatusOK, model.DefaultSettings())
}

// handleSolve runs the solver on the posted scenario. The response is the
// result as JSON, or the drawing when format=svg or format=geojson.
func (s *Server) handleSolve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		code := model.CodeOf(err)
		if code == "" {
			code = model.ErrCodeInvalidFormat
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: code})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: model.CodeOf(err)})
		return
	}

	settings := s.settings
	if req.Settings != nil {
		settings = req.Settings.WithDefaults()
	}

	room := req.Room()
	res := engine.New(settings, engine.WithLogger(s.logger)).Solve(room, req.Items())

	switch c.Query("format") {
	case "", "json":
		c.JSON(http.StatusOK, res)
	case "geojson":
		c.JSON(http.StatusOK, export.FeatureCollection(room, res))
	case "svg":
		var buf bytes.Buffer
		if err := export.WriteSVG(&buf, room, res); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "unsupported format " + c.Query("format"),
			Code:  model.ErrCodeInvalidInput,
		})
	}
}
