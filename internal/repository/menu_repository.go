package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// メニューの永続化（保存・取得）だけを約束。
type MenuRepository interface {
	//無効化済みも含めて全件返す（管理画面で使う）
	List(ctx context.Context) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id int64) (model.MenuItem, error)

	Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error)
	Update(ctx context.Context, m model.MenuItem) error

	//物理削除はしない。is_active=falseにするだけ。
	Deactivate(ctx context.Context, id int64) error
}
