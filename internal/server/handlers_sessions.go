package server

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/jsavoy93/time-tracker/internal/errors"
)

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// formCategoryID reads the optional category_id form field. An empty value
// means no category.
func formCategoryID(c echo.Context) (*int64, error) {
	raw := strings.TrimSpace(c.FormValue("category_id"))
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw)
	if err != nil {
		return nil, apperrors.ValidationError("invalid category id").WithContext("category_id", raw)
	}
	return &id, nil
}

func (s *Server) handleStartSession(c echo.Context) error {
	categoryID, err := formCategoryID(c)
	if err != nil {
		return err
	}
	description := strings.TrimSpace(c.FormValue("description"))

	if _, err := s.ledger.Start(c.Request().Context(), categoryID, description); err != nil {
		return err
	}

	return c.Redirect(303, "/")
}

func (s *Server) handleStopSession(c echo.Context) error {
	if _, err := s.ledger.Stop(c.Request().Context()); err != nil {
		return err
	}

	return c.Redirect(303, "/")
}

func (s *Server) handleEditSession(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	categoryID, err := formCategoryID(c)
	if err != nil {
		return err
	}
	description := strings.TrimSpace(c.FormValue("description"))
	startRaw := strings.TrimSpace(c.FormValue("start_utc"))

	// An empty end keeps the session open.
	var endRaw *string
	if end := strings.TrimSpace(c.FormValue("end_utc")); end != "" {
		endRaw = &end
	}

	if _, err := s.ledger.Edit(c.Request().Context(), id, categoryID, description, startRaw, endRaw); err != nil {
		return err
	}

	return c.Redirect(303, "/")
}

func (s *Server) handleDeleteSession(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.ledger.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.Redirect(303, "/")
}
