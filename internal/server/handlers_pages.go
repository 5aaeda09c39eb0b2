package server

import (
	"github.com/jsavoy93/time-tracker/internal/ledger"
	"github.com/labstack/echo/v4"

	apperrors "github.com/jsavoy93/time-tracker/internal/errors"
)

func (s *Server) handleIndex(c echo.Context) error {
	ctx := c.Request().Context()

	active, err := s.ledger.Active(ctx)
	if err != nil {
		return err
	}

	entries, err := s.ledger.List(ctx)
	if err != nil {
		return err
	}

	categories, err := s.catalog.ListActive(ctx)
	if err != nil {
		return err
	}

	activeElapsed := ""
	activeCategoryName := ledger.NoCategoryLabel
	if active != nil {
		activeElapsed = s.ledger.ComputeDuration(active.StartUTC, nil)
		if active.CategoryID != nil {
			if cat, err := s.catalog.ResolveAny(ctx, *active.CategoryID); err == nil {
				activeCategoryName = cat.Name
			}
		}
	}

	data := map[string]any{
		"Active":             active,
		"ActiveElapsed":      activeElapsed,
		"ActiveCategoryName": activeCategoryName,
		"Categories":         categories,
		"Entries":            entries,
	}

	return renderTemplate(c, s.indexTemplate, data)
}

func (s *Server) handleCategoriesPage(c echo.Context) error {
	categories, err := s.catalog.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	data := map[string]any{
		"Categories": categories,
	}

	return renderTemplate(c, s.categoriesTemplate, data)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := parseID(raw)
	if err != nil {
		return 0, apperrors.ValidationError("invalid id").WithContext("id", raw)
	}
	return id, nil
}
