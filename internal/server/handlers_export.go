package server

import (
	"encoding/csv"
	"strconv"

	"github.com/jsavoy93/time-tracker/internal/metrics"
	"github.com/labstack/echo/v4"

	apperrors "github.com/jsavoy93/time-tracker/internal/errors"
)

var csvHeader = []string{"ID", "Category", "Description", "Start Time", "End Time", "Duration"}

// handleExportCSV streams all sessions as a CSV download, in the same order
// and with the same derived fields as the session table.
func (s *Server) handleExportCSV(c echo.Context) error {
	entries, err := s.ledger.List(c.Request().Context())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="sessions.csv"`)
	c.Response().WriteHeader(200)

	w := csv.NewWriter(c.Response())
	if err := w.Write(csvHeader); err != nil {
		return apperrors.InternalError("failed to write csv", err)
	}

	for _, entry := range entries {
		end := ""
		if entry.EndUTC != nil {
			end = *entry.EndUTC
		}
		record := []string{
			strconv.FormatInt(entry.ID, 10),
			entry.CategoryName,
			entry.Description,
			entry.StartUTC,
			end,
			entry.Duration,
		}
		if err := w.Write(record); err != nil {
			return apperrors.InternalError("failed to write csv", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.InternalError("failed to flush csv", err)
	}

	metrics.CSVExportsTotal.Inc()
	return nil
}
