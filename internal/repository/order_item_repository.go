package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	//編集・削除で明細を丸ごと入れ替え/破棄する
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
