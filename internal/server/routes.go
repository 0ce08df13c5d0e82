package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Category.RegisterRoutes(e)
	h.Menu.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.Analytics.RegisterRoutes(e)
}
