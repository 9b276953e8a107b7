package server

import (
	"context"
	"time"

	"github.com/drivefetch/drivefetch/internal/app/repository"
	"github.com/drivefetch/drivefetch/internal/app/service"
	inthttp "github.com/drivefetch/drivefetch/internal/http/handler"
	"github.com/drivefetch/drivefetch/internal/http/middleware"
	httputil "github.com/drivefetch/drivefetch/internal/http/util"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies bundles infrastructure and application dependencies required by
// the HTTP server.
type Dependencies struct {
	Logger      *zap.Logger
	Postgres    *pgxpool.Pool
	Redis       *redis.Client
	NATS        *nats.Conn
	JetStream   nats.JetStreamContext
	Conversions repository.ConversionRepository

	Converter *service.Converter
	Notifier  *service.Notifier
	Theme     *service.ThemeService

	SessionSecret []byte
	ListLimit     int
	DisplayWindow time.Duration
	FadeDelay     time.Duration
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	app := fiber.New()

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerRoutes()
	return s
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) registerRoutes() {
	logger := s.deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(logger))
	s.app.Use(middleware.Recovery(logger))
	s.app.Use(middleware.CORS())
	s.app.Use(middleware.Session(httputil.NewSessionSigner(s.deps.SessionSecret)))

	if s.deps.Redis != nil {
		s.app.Use("/api", middleware.RateLimit(s.deps.Redis, middleware.DefaultRateLimitConfig(), logger))
	}

	pageHandler := inthttp.NewPageHandler(inthttp.PageDeps{
		Logger:        logger,
		Converter:     s.deps.Converter,
		Theme:         s.deps.Theme,
		Postgres:      s.deps.Postgres,
		DisplayWindow: s.deps.DisplayWindow,
		FadeDelay:     s.deps.FadeDelay,
	})
	pageHandler.Register(s.app)

	apiHandler := inthttp.NewAPIHandler(inthttp.APIDeps{
		Logger:      logger,
		Converter:   s.deps.Converter,
		Notifier:    s.deps.Notifier,
		Theme:       s.deps.Theme,
		Conversions: s.deps.Conversions,
		ListLimit:   s.deps.ListLimit,
	})
	apiHandler.Register(s.app)
}
