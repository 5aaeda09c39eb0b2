package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jsavoy93/time-tracker/internal/config"
	"github.com/jsavoy93/time-tracker/internal/domain"
	"github.com/jsavoy93/time-tracker/internal/ledger"
	"github.com/jsavoy93/time-tracker/internal/metrics"
	"github.com/jsavoy93/time-tracker/internal/platform/requestid"
	"github.com/jsavoy93/time-tracker/web"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "github.com/jsavoy93/time-tracker/internal/errors"
)

// LedgerService is the slice of the ledger the handlers use.
type LedgerService interface {
	Start(ctx context.Context, categoryID *int64, description string) (*domain.Session, error)
	Stop(ctx context.Context) (*domain.Session, error)
	Edit(ctx context.Context, id int64, categoryID *int64, description, startRaw string, endRaw *string) (*domain.Session, error)
	Delete(ctx context.Context, id int64) error
	Active(ctx context.Context) (*domain.Session, error)
	List(ctx context.Context) ([]ledger.Entry, error)
	ComputeDuration(startUTC string, endUTC *string) string
}

// CatalogService is the slice of the category store the handlers use.
type CatalogService interface {
	Add(ctx context.Context, name string) (*domain.Category, error)
	Rename(ctx context.Context, id int64, name string) (*domain.Category, error)
	Deactivate(ctx context.Context, id int64) error
	ListActive(ctx context.Context) ([]domain.Category, error)
	ListAll(ctx context.Context) ([]domain.Category, error)
	ResolveAny(ctx context.Context, id int64) (*domain.Category, error)
}

// healthChecker is a minimal interface for database health checks.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Server struct {
	echo    *echo.Echo
	config  *config.Config
	ledger  LedgerService
	catalog CatalogService
	db      healthChecker
	clock   clockwork.Clock

	startTime          time.Time
	indexTemplate      *template.Template
	categoriesTemplate *template.Template
}

// templateFuncs are helpers for the session and category pages. "local"
// strips the trailing Z so stored timestamps fit a datetime-local input.
var templateFuncs = template.FuncMap{
	"local": func(v any) string {
		switch t := v.(type) {
		case string:
			return strings.TrimSuffix(t, "Z")
		case *string:
			if t != nil {
				return strings.TrimSuffix(*t, "Z")
			}
		}
		return ""
	},
	"selected": func(id *int64, optionID int64) bool {
		return id != nil && *id == optionID
	},
}

func NewServer(cfg *config.Config, ledgerSvc LedgerService, catalogSvc CatalogService, db healthChecker, clock clockwork.Clock) (*Server, error) {
	// Parse templates once at startup
	indexTmpl, err := template.New("index.html").Funcs(templateFuncs).ParseFS(web.Templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}
	categoriesTmpl, err := template.New("categories.html").Funcs(templateFuncs).ParseFS(web.Templates, "templates/categories.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse categories template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(requestMiddleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:               e,
		config:             cfg,
		ledger:             ledgerSvc,
		catalog:            catalogSvc,
		db:                 db,
		clock:              clock,
		startTime:          clock.Now(),
		indexTemplate:      indexTmpl,
		categoriesTemplate: categoriesTmpl,
	}

	// Register routes
	srv.registerRoutes()

	return srv, nil
}

// requestMiddleware tags each request with an id, records its duration, and
// writes one access log line per request.
func requestMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := requestid.WithID(c.Request().Context(), requestid.NewID())
			c.SetRequest(c.Request().WithContext(ctx))

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			status := c.Response().Status
			if err != nil {
				if structured := apperrors.AsStructuredError(err); structured != nil {
					status = structured.HTTPStatus()
				}
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			metrics.HTTPRequestDuration.WithLabelValues(c.Request().Method, path).Observe(elapsed.Seconds())

			slog.InfoContext(ctx, "Request handled",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", elapsed.Milliseconds(),
			)
			return err
		}
	}
}

func renderTemplate(c echo.Context, tmpl *template.Template, data any) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(200)
	if err := tmpl.Execute(c.Response(), data); err != nil {
		return apperrors.InternalError("failed to render page", err)
	}
	return nil
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
