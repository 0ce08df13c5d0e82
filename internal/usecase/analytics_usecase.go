package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AnalyticsUsecase は確定済み注文の読み取り専用の集計。
// 注文データは一切書き換えない。
type AnalyticsUsecase struct {
	tx repo.TransactionManager
}

func NewAnalyticsUsecase(tx repo.TransactionManager) *AnalyticsUsecase {
	return &AnalyticsUsecase{tx: tx}
}

// 日別売上。dateはYYYY-MM-DD。
type DailySalesOutput struct {
	Date       string `json:"date"`
	TotalPrice int64  `json:"total_price"`
	OrderCount int64  `json:"order_count"`
}

// 注文履歴テーブルの1行分。
type OrderRowOutput struct {
	OrderID    int64  `json:"order_id"`
	MenuItems  string `json:"menu_items"`
	TotalItems int64  `json:"total_items"`
	TotalPrice int64  `json:"total_price"`
	CreatedAt  string `json:"created_at"`
}

// 注文を作成日でまとめて日別売上にする。新しい日が先。
func (u *AnalyticsUsecase) DailySales(ctx context.Context) ([]DailySalesOutput, error) {
	var orders []model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		orders, err = r.Orders().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return []DailySalesOutput{}, err
	}

	byDate := make(map[string]*DailySalesOutput)
	for _, o := range orders {
		date := o.CreatedAt.Format("2006-01-02")
		row, ok := byDate[date]
		if !ok {
			row = &DailySalesOutput{Date: date}
			byDate[date] = row
		}
		row.TotalPrice += o.TotalPrice
		row.OrderCount++
	}

	outs := make([]DailySalesOutput, 0, len(byDate))
	for _, row := range byDate {
		outs = append(outs, *row)
	}
	sort.Slice(outs, func(i, j int) bool {
		return outs[i].Date > outs[j].Date
	})
	return outs, nil
}

// 注文ごとの表示用サマリ行。明細は「名前 x数量」のカンマ区切り。
func (u *AnalyticsUsecase) OrderHistory(ctx context.Context) ([]OrderRowOutput, error) {
	var outs []OrderRowOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderRowOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			parts := make([]string, 0, len(items))
			var count int64 = 0
			for _, it := range items {
				parts = append(parts, fmt.Sprintf("%s x%d", it.MenuNameSnapshot, it.Quantity))
				count += it.Quantity
			}

			outs = append(outs, OrderRowOutput{
				OrderID:    o.ID,
				MenuItems:  strings.Join(parts, ", "),
				TotalItems: count,
				TotalPrice: o.TotalPrice,
				CreatedAt:  o.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return nil
	})

	if err != nil {
		return []OrderRowOutput{}, err
	}
	return outs, nil
}
