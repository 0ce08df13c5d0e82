package server

import (
	"log/slog"
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers はルーティングに必要なハンドラ一式。
type Handlers struct {
	Category  *handler.CategoryHandler
	Menu      *handler.MenuHandler
	Order     *handler.OrderHandler
	Analytics *handler.AnalyticsHandler
}

func Start(addr string, cfg config.Config, log *slog.Logger, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(appmw.RequestLogger(log))

	//CORSはフロントのオリジンだけ許可
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	RegisterRoutes(e, h)

	return e.Start(addr)
}
