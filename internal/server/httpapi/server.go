// Package httpapi exposes the REST surface of the task tracker: user
// registration and login, profile management, and ownership-scoped task
// CRUD with analytics.
//
// Sessions are signed, time-limited JWTs and are not stored server-side;
// logout is a client-side operation and a token stays valid until it
// expires or the signing secret is rotated.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	tasks     *services.TaskService
	jwtSecret []byte
	echo      *echo.Echo
}

func NewServer(address string, l logging.Logger, us *services.UserService, ts *services.TaskService, secretKey string) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "httpapi"),
		users:     us,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}
	s.echo = s.buildRouter()
	return s
}

// buildRouter assembles the single route table. The session gate is applied
// once, on the protected group; the two credential routes stay outside it.
func (s *Server) buildRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = s.errorHandler

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "server is started!")
	})

	api := e.Group("/api")
	api.POST("/users/register", s.register)
	api.POST("/users/login", s.login)

	protected := api.Group("", s.sessionGate)
	protected.GET("/users/profile", s.getProfile)
	protected.PUT("/users/profile", s.updateProfile)
	protected.PUT("/users/profile-pic", s.updateProfilePic)
	protected.PUT("/users/password", s.updatePassword)

	protected.GET("/tasks", s.listTasks)
	protected.POST("/tasks", s.createTask)
	protected.PUT("/tasks/:id", s.updateTask)
	protected.DELETE("/tasks/:id", s.deleteTask)
	protected.GET("/tasks/analytics", s.taskAnalytics)

	return e
}

// errorHandler converts anything that escapes a handler (including panics
// recovered by the middleware) into the standard envelope. No internal
// detail reaches the client.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	if code == http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "unhandled error", "err", err.Error(), "path", c.Path())
	}

	_ = fail(c, code, message)
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "err", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
