package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// MenuUsecase はメニュー管理（一覧・作成・編集・無効化）を担当する。
type MenuUsecase struct {
	menuRepo     repo.MenuRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewMenuUsecase(menuRepo repo.MenuRepository, categoryRepo repo.CategoryRepository) *MenuUsecase {
	return &MenuUsecase{
		menuRepo:     menuRepo,
		categoryRepo: categoryRepo,
	}
}

type CreateMenuInput struct {
	Name       string
	Price      int64
	CategoryID int64
}

type EditMenuInput struct {
	Name       string
	Price      int64
	CategoryID int64
	IsActive   bool
}

type CategoryOutput struct {
	ID   int64  `json:"id"`
	Name string `json:"menu_type_name"`
}

// 分類を埋め込んだメニュー表示用DTO。
type MenuOutput struct {
	ID        int64          `json:"id"`
	Name      string         `json:"menu_name"`
	Price     int64          `json:"menu_price"`
	Category  CategoryOutput `json:"menu_type"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// 無効化済みも含めた全メニュー。分類はIDごとにまとめて引いて埋める。
func (u *MenuUsecase) List(ctx context.Context) ([]MenuOutput, error) {
	items, err := u.menuRepo.List(ctx)
	if err != nil {
		return []MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cats, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	byID := make(map[int64]model.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	outs := make([]MenuOutput, 0, len(items))
	for _, m := range items {
		out := toMenuOutput(m)
		if c, ok := byID[m.CategoryID]; ok {
			out.Category = CategoryOutput{ID: c.ID, Name: c.Name}
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func (u *MenuUsecase) Create(ctx context.Context, in CreateMenuInput) (MenuOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "menu_name is required")
	}
	if in.Price < 0 {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "menu_price must be >= 0")
	}
	if in.CategoryID <= 0 {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	//分類の存在チェック
	c, err := u.categoryRepo.FindByID(ctx, in.CategoryID)
	if err == repo.ErrNotFound {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	if err != nil {
		return MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//作成時は必ず公開状態から始める
	created, err := u.menuRepo.Create(ctx, model.MenuItem{
		Name:       name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		IsActive:   true,
	})
	if err != nil {
		return MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := toMenuOutput(created)
	out.Category = CategoryOutput{ID: c.ID, Name: c.Name}
	return out, nil
}

func (u *MenuUsecase) Edit(ctx context.Context, menuID int64, in EditMenuInput) (MenuOutput, error) {
	if menuID <= 0 {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "menu_name is required")
	}
	if in.Price < 0 {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "menu_price must be >= 0")
	}
	if in.CategoryID <= 0 {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	c, err := u.categoryRepo.FindByID(ctx, in.CategoryID)
	if err == repo.ErrNotFound {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	if err != nil {
		return MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.menuRepo.Update(ctx, model.MenuItem{
		ID:         menuID,
		Name:       name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		IsActive:   in.IsActive,
	})
	if err == repo.ErrNotFound {
		return MenuOutput{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated, err := u.menuRepo.FindByID(ctx, menuID)
	if err != nil {
		return MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := toMenuOutput(updated)
	out.Category = CategoryOutput{ID: c.ID, Name: c.Name}
	return out, nil
}

// ソフトデリート。注文の明細から参照されるので行は消さない。
func (u *MenuUsecase) Deactivate(ctx context.Context, menuID int64) error {
	if menuID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.menuRepo.Deactivate(ctx, menuID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func toMenuOutput(m model.MenuItem) MenuOutput {
	return MenuOutput{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
