package helpers

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/edukube/gradebook/core"
)

type (
	Options struct {
		Address        string
		ServiceName    string
		DisableReqLogs bool

		Conf   *core.Config
		Logger core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts *Options
		app  *echo.Echo

		errChan     chan error
		shutdownSig chan os.Signal
	}
)

var _ Server = (*server)(nil)

// NewServer builds an echo server with the shared middleware, error handling
// and health endpoint, then lets register attach the service's own routes.
func NewServer(opts *Options, register func(app *echo.Echo)) Server {
	s := &server{
		opts:        opts,
		app:         echo.New(),
		errChan:     make(chan error, 1),
		shutdownSig: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownSig, os.Interrupt, syscall.SIGTERM)
	s.setup()
	register(s.app)
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORS())

	s.app.HTTPErrorHandler = NewHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/health", s.health)
}

func (s *server) health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": s.opts.ServiceName,
		"version": s.opts.Conf.Version,
	})
}

func (s *server) Start() {
	s.errChan <- s.app.Start(s.opts.Address)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errChan
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownSig
}

func (s *server) signalShutdown() {
	s.shutdownSig <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
