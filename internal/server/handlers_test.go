package server

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jsavoy93/time-tracker/internal/config"
	"github.com/jsavoy93/time-tracker/internal/domain"
	"github.com/jsavoy93/time-tracker/internal/ledger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockLedger struct {
	startFn  func(ctx context.Context, categoryID *int64, description string) (*domain.Session, error)
	stopFn   func(ctx context.Context) (*domain.Session, error)
	editFn   func(ctx context.Context, id int64, categoryID *int64, description, startRaw string, endRaw *string) (*domain.Session, error)
	deleteFn func(ctx context.Context, id int64) error
	activeFn func(ctx context.Context) (*domain.Session, error)
	listFn   func(ctx context.Context) ([]ledger.Entry, error)
}

func (m *mockLedger) Start(ctx context.Context, categoryID *int64, description string) (*domain.Session, error) {
	if m.startFn != nil {
		return m.startFn(ctx, categoryID, description)
	}
	return &domain.Session{ID: 1}, nil
}

func (m *mockLedger) Stop(ctx context.Context) (*domain.Session, error) {
	if m.stopFn != nil {
		return m.stopFn(ctx)
	}
	return &domain.Session{ID: 1}, nil
}

func (m *mockLedger) Edit(ctx context.Context, id int64, categoryID *int64, description, startRaw string, endRaw *string) (*domain.Session, error) {
	if m.editFn != nil {
		return m.editFn(ctx, id, categoryID, description, startRaw, endRaw)
	}
	return &domain.Session{ID: id}, nil
}

func (m *mockLedger) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockLedger) Active(ctx context.Context) (*domain.Session, error) {
	if m.activeFn != nil {
		return m.activeFn(ctx)
	}
	return nil, nil
}

func (m *mockLedger) List(ctx context.Context) ([]ledger.Entry, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockLedger) ComputeDuration(startUTC string, endUTC *string) string {
	return "00:10:00"
}

type mockCatalog struct {
	addFn        func(ctx context.Context, name string) (*domain.Category, error)
	renameFn     func(ctx context.Context, id int64, name string) (*domain.Category, error)
	deactivateFn func(ctx context.Context, id int64) error
	listActiveFn func(ctx context.Context) ([]domain.Category, error)
	listAllFn    func(ctx context.Context) ([]domain.Category, error)
	resolveAnyFn func(ctx context.Context, id int64) (*domain.Category, error)
}

func (m *mockCatalog) Add(ctx context.Context, name string) (*domain.Category, error) {
	if m.addFn != nil {
		return m.addFn(ctx, name)
	}
	return &domain.Category{ID: 1, Name: name, IsActive: true}, nil
}

func (m *mockCatalog) Rename(ctx context.Context, id int64, name string) (*domain.Category, error) {
	if m.renameFn != nil {
		return m.renameFn(ctx, id, name)
	}
	return &domain.Category{ID: id, Name: name, IsActive: true}, nil
}

func (m *mockCatalog) Deactivate(ctx context.Context, id int64) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, id)
	}
	return nil
}

func (m *mockCatalog) ListActive(ctx context.Context) ([]domain.Category, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) ListAll(ctx context.Context) ([]domain.Category, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) ResolveAny(ctx context.Context, id int64) (*domain.Category, error) {
	if m.resolveAnyFn != nil {
		return m.resolveAnyFn(ctx, id)
	}
	return nil, domain.ErrCategoryNotFound
}

type mockDB struct {
	pingErr error
}

func (m *mockDB) HealthCheck(_ context.Context) error {
	return m.pingErr
}

// --- Test helpers ---

var testEpoch = time.Date(2026, 1, 27, 15, 53, 55, 0, time.UTC)

func newTestServer(t *testing.T, ledgerSvc LedgerService, catalogSvc CatalogService) *Server {
	t.Helper()

	cfg := &config.Config{AppEnv: "test", Port: "8080"}
	srv, err := NewServer(cfg, ledgerSvc, catalogSvc, &mockDB{}, clockwork.NewFakeClockAt(testEpoch))
	require.NoError(t, err)
	return srv
}

// doRequest runs a request through the full router and middleware chain.
func doRequest(srv *Server, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func int64p(v int64) *int64 { return &v }

func strp(s string) *string { return &s }
