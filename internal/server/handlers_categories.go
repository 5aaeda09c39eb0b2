package server

import (
	"github.com/labstack/echo/v4"
)

func (s *Server) handleAddCategory(c echo.Context) error {
	if _, err := s.catalog.Add(c.Request().Context(), c.FormValue("name")); err != nil {
		return err
	}

	return c.Redirect(303, "/categories")
}

func (s *Server) handleRenameCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if _, err := s.catalog.Rename(c.Request().Context(), id, c.FormValue("name")); err != nil {
		return err
	}

	return c.Redirect(303, "/categories")
}

func (s *Server) handleDeactivateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.catalog.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}

	return c.Redirect(303, "/categories")
}
