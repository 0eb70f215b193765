package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/config"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/http/metric"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/http/middleware"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/http/swagger"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/service"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-tracker/pkg/correlationid"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	authSvc      service.AuthService
	inventorySvc service.InventoryService
	tokens       middleware.TokenVerifier
	health       db.HealthChecker
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	authSvc service.AuthService,
	inventorySvc service.InventoryService,
	tokens middleware.TokenVerifier,
	health db.HealthChecker,
) *Service {
	return &Service{
		cfg:          cfg,
		logger:       log.With(slog.String("service", "http")),
		metrics:      metric.New(),
		authSvc:      authSvc,
		inventorySvc: inventorySvc,
		tokens:       tokens,
		health:       health,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := s.Router()
	s.logRoutes(ctx, r)

	return s.RunWithServer(ctx, r)
}

// Router builds the complete handler tree: middlewares, API routes, docs and
// metrics.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", slog.Any("error", err))
		}
	}()

	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		correlationid.Middleware(),
		middleware.Cors(s.cfg.CorsOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	authH := newAuthHandler(s, s.authSvc)
	inventoryH := newInventoryHandler(s, s.inventorySvc)
	healthH := newHealthHandler(s, s.health)

	requireAuth := middleware.Authenticate(s.tokens, s.handleResponseError)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.wrap(authH.Register))
		r.Post("/login", s.wrap(authH.Login))
		r.Get("/health", s.wrap(healthH.Health))
		r.Get("/health/ready", s.wrap(healthH.Ready))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/profile", s.wrap(authH.GetProfile))

			r.Get("/inventory", s.wrap(inventoryH.ListItems))
			r.Post("/inventory", s.wrap(inventoryH.CreateItem))
			r.Get("/inventory/{id}", s.wrap(inventoryH.GetItem))
			r.Put("/inventory/{id}", s.wrap(inventoryH.UpdateItem))
			r.Delete("/inventory/{id}", s.wrap(inventoryH.DeleteItem))
		})
	})

	r.Handle(middleware.MetricsPath, s.metrics.Handler(s.logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.handleResponseError(w, r, apperr.RouteNotFoundErr)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.handleResponseError(w, r, apperr.MethodNotAllowedErr)
	})
}

func (s *Service) logRoutes(ctx context.Context, r chi.Routes) {
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		s.logger.InfoContext(ctx, "route mounted", slog.String("method", method), slog.String("route", route))
		return nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "walk routes", slog.Any("error", err))
	}
}
