package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /api/menu のHTTP
type MenuHandler struct {
	uc *usecase.MenuUsecase
}

// DI
func NewMenuHandler(uc *usecase.MenuUsecase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

type MenuCreateRequest struct {
	Name       string `json:"menu_name"`
	Price      int64  `json:"menu_price"`
	CategoryID int64  `json:"menu_type"`
}

type MenuEditRequest struct {
	Name       string `json:"menu_name"`
	Price      int64  `json:"menu_price"`
	CategoryID int64  `json:"menu_type"`
	IsActive   bool   `json:"is_active"`
}

func (h *MenuHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/menu")

	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.edit)
	g.DELETE("/:id", h.deactivate)
}

func (h *MenuHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) create(c echo.Context) error {
	var req MenuCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateMenuInput{
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MenuHandler) edit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req MenuEditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Edit(c.Request().Context(), id, usecase.EditMenuInput{
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) deactivate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Deactivate(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "menu item deactivated"})
}
