package server

import (
	"context"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/jsavoy93/time-tracker/internal/domain"
	"github.com/jsavoy93/time-tracker/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleExportCSV(t *testing.T) {
	ml := &mockLedger{
		listFn: func(_ context.Context) ([]ledger.Entry, error) {
			return []ledger.Entry{
				{
					Session: domain.Session{
						ID:          2,
						CategoryID:  nil,
						Description: "running work",
						StartUTC:    "2026-01-27T15:53:55Z",
					},
					CategoryName: ledger.NoCategoryLabel,
					Duration:     "",
				},
				{
					Session: domain.Session{
						ID:          1,
						CategoryID:  int64p(3),
						Description: "closed work",
						StartUTC:    "2026-01-27T10:00:00Z",
						EndUTC:      strp("2026-01-27T11:30:00Z"),
					},
					CategoryName: "Coding",
					Duration:     "01:30:00",
				},
			}, nil
		},
	}
	srv := newTestServer(t, ml, &mockCatalog{})

	rec := doRequest(srv, http.MethodGet, "/export.csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sessions.csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Category", "Description", "Start Time", "End Time", "Duration"}, records[0])
	assert.Equal(t, []string{"2", "(No Category)", "running work", "2026-01-27T15:53:55Z", "", ""}, records[1])
	assert.Equal(t, []string{"1", "Coding", "closed work", "2026-01-27T10:00:00Z", "2026-01-27T11:30:00Z", "01:30:00"}, records[2])
}

func TestHandleExportCSV_Empty(t *testing.T) {
	srv := newTestServer(t, &mockLedger{}, &mockCatalog{})

	rec := doRequest(srv, http.MethodGet, "/export.csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ID", records[0][0])
}
