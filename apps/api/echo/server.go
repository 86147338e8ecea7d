package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/contact"
	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/core/enrollment"
	"github.com/coursely/coursely/core/payment"
)

type (
	ServerDeps struct {
		Conf          *core.Config
		Logger        core.Logger
		CourseSvc     *course.Service
		EnrollmentSvc *enrollment.Service
		PaymentSvc    *payment.Service
		ContactSvc    *contact.Service
		Validate      *validator.Validate
		Translator    ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if conf.FrontendBaseURL != "" {
		s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{conf.FrontendBaseURL},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	registerCourseAPI(v1, s.deps.CourseSvc, s.deps.EnrollmentSvc, s.deps.Validate)
	registerEnrollmentAPI(v1, s.deps.EnrollmentSvc)
	registerCheckoutAPI(v1, s.deps.PaymentSvc, s.deps.Validate)
	registerContactAPI(v1, s.deps.ContactSvc, s.deps.Validate)
}

// Start blocks until the server stops. Errors other than a graceful close are sent to Errors().
func (s *Server) Start() {
	s.deps.Logger.Info("API listening on " + s.deps.Conf.Server.Address)
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
