package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//新しい注文から順に全件
	List(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//編集で合計を付け替える（updated_atも進める）
	UpdateTotal(ctx context.Context, orderID int64, total int64) error
	Delete(ctx context.Context, orderID int64) error

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, key string) (model.Order, bool, error)
}
