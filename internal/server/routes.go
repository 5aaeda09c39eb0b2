package server

import (
	"github.com/jsavoy93/time-tracker/web"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Pages
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/categories", s.handleCategoriesPage)
	s.echo.GET("/export.csv", s.handleExportCSV)

	// Session actions (form POSTs, redirect back with 303)
	s.echo.POST("/start", s.handleStartSession)
	s.echo.POST("/stop", s.handleStopSession)
	s.echo.POST("/sessions/:id/edit", s.handleEditSession)
	s.echo.POST("/sessions/:id/delete", s.handleDeleteSession)

	// Category actions
	s.echo.POST("/categories/add", s.handleAddCategory)
	s.echo.POST("/categories/:id/edit", s.handleRenameCategory)
	s.echo.POST("/categories/:id/delete", s.handleDeactivateCategory)

	// Static assets
	s.echo.StaticFS("/static", echo.MustSubFS(web.Static, "static"))
}
