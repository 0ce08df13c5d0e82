package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/analytics のHTTP。読み取り専用。
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc *usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/analytics")

	g.GET("/daily-sales", h.dailySales)
	g.GET("/orders", h.orderHistory)
}

func (h *AnalyticsHandler) dailySales(c echo.Context) error {
	out, err := h.uc.DailySales(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) orderHistory(c echo.Context) error {
	out, err := h.uc.OrderHistory(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
