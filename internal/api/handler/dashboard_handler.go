package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the dashboard shell behind the authorization
// gate. Each section endpoint confirms what the gate let through; the
// actual screens are rendered by the frontend.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardSectionResponse struct {
	Section string `json:"section"`
	Path    string `json:"path"`
	Role    string `json:"role"`
}

// Section reports the dashboard section the caller landed on.
func (h *DashboardHandler) Section(section string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, dashboardSectionResponse{
			Section: section,
			Path:    c.Request().URL.Path,
			Role:    ctxRole(c).String(),
		})
	}
}
