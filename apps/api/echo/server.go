package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/core/roster"
	"github.com/trezcool/missingwork/core/student"
	"github.com/trezcool/missingwork/services/media"
)

type (
	Deps struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		GradeSvc      *grade.Service
		StudentSvc    *student.Service
		AssignmentSvc *assignment.Service
		ProfileSvc    *profile.Service
		RosterSvc     *roster.Service
	}

	Server struct {
		deps     *Deps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps *Deps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if conf.Debug {
		s.app.Logger.SetLevel(log.DEBUG)
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	// available before setup
	registerProfileAPI(s.app.Group("/api/profile"), s.deps.ProfileSvc, mediaOptions(conf))

	api := s.app.Group("/api", setupRequiredMiddleware(s.deps.ProfileSvc))
	registerImageAPI(api, mediaOptions(conf))
	registerGradeAPI(api, s.deps.GradeSvc)
	registerStudentAPI(api, s.deps.StudentSvc, s.deps.RosterSvc)
	registerAssignmentAPI(api, s.deps.AssignmentSvc, s.deps.RosterSvc)
	registerRosterAPI(api, s.deps.RosterSvc)
}

// Start listens on the configured address, errors are sent to Errors().
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Missing Work API!")
}

func mediaOptions(conf *core.Config) media.Options {
	return media.Options{MaxBytes: conf.Media.MaxBytes, MaxDimension: conf.Media.MaxDimension}
}
