package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"status-leds/animation"
	"status-leds/types"
)

const shutdownTimeout = 5 * time.Second

// Controller is the part of animation.Controller the API needs
type Controller interface {
	Switch(name string) error
	Active() string
	Finished() bool
	Rate() float64
	Names() []string
}

// Server exposes the animation controller over HTTP
type Server struct {
	controller Controller
	logger     *types.Logger
	startTime  time.Time
}

func NewServer(controller Controller, logger *types.Logger) *Server {
	return &Server{
		controller: controller,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// Router builds the gin engine with all routes
func (s *Server) Router(enableCORS bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if enableCORS {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "PUT", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	v1 := r.Group("/api")
	{
		v1.GET("/health", s.handleHealth)
		v1.GET("/animations", s.handleListAnimations)
		v1.GET("/animation", s.handleGetAnimation)
		v1.PUT("/animation", s.handleSwitchAnimation)
	}
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: gin.H{
			"uptime": time.Since(s.startTime).Round(time.Second).String(),
		},
	})
}

func (s *Server) handleListAnimations(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: AnimationList{
			Active:     s.controller.Active(),
			Animations: s.controller.Names(),
		},
	})
}

func (s *Server) handleGetAnimation(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   s.status(),
	})
}

func (s *Server) handleSwitchAnimation(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "invalid animation request: " + err.Error(),
		})
		return
	}

	if err := s.controller.Switch(req.Name); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, animation.ErrUnknownAnimation) {
			code = http.StatusNotFound
		}
		s.logger.WarnLog.Printf("Rejected animation switch: %s", err.Error())
		c.JSON(code, ApiResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	s.logger.InfoLog.Printf("Animation switched to %s via API", req.Name)
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   s.status(),
	})
}

func (s *Server) status() AnimationStatus {
	return AnimationStatus{
		Name:     s.controller.Active(),
		Finished: s.controller.Finished(),
		TickRate: s.controller.Rate(),
	}
}

// ListenAndServe serves handler on addr until ctx is cancelled
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *types.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoLog.Printf("HTTP API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
