package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// OrderUsecase は注文の確定・編集・削除・一覧を担当する。
// 注文は「その時点の事実」なので、明細には必ずメニュー名と価格のスナップショットを焼き込む。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemInput struct {
	MenuItemID int64
	Quantity   int64
}

type CreateOrderInput struct {
	Items []OrderItemInput

	//二重送信防止キー。同じキーなら同じ注文を返す。
	IdempotencyKey string
}

// 一覧表示用の「現在のメニュー」参照。スナップショットとは別物。
// メニューが消えていたら nil。
type MenuRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"menu_name"`
	Price int64  `json:"menu_price"`
}

type OrderItemOutput struct {
	MenuItemID int64  `json:"menu_id"`
	Name       string `json:"menu_name"`
	Price      int64  `json:"menu_price"`
	Quantity   int64  `json:"quantity"`

	//読み取り時に現在のメニューを引いて付ける飾り。
	//合計の再計算には絶対に使わない。
	Menu *MenuRef `json:"menu,omitempty"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	TotalPrice int64             `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Items      []OrderItemOutput `json:"items"`
}

// カート（menu_id+quantityの列）をスナップショット付きの注文に変える。
// 全メニューの存在確認が終わるまで一切書き込まない（途中まで作られた注文を残さない）。
func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "empty order")
	}
	for _, it := range in.Items {
		if it.MenuItemID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid menu_id")
		}
		if it.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}
	if in.IdempotencyKey == "" || len(in.IdempotencyKey) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out OrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		//まず全件の存在確認＋スナップショット作成（ここでは書き込まない）
		orderItems, total, err := u.snapshotItems(ctx, r, in.Items)
		if err != nil {
			return err
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			TotalPrice:     total,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			//競合（同時に同じキーが入った）ならもう一回検索して同じ結果を返す
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, in.IdempotencyKey)
				if err2 == nil && found2 {
					items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
					if err3 != nil {
						return NewHTTPError(http.StatusInternalServerError, "db error")
					}
					out = toOrderOutput(ex2, items2)
					return nil
				}
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:         orderID,
			TotalPrice: total,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 明細リストを丸ごと差し替える。部分編集はない。
// スナップショットは編集時点のメニューから取り直す。
func (u *OrderUsecase) Edit(ctx context.Context, orderID int64, items []OrderItemInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if len(items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "empty order")
	}
	for _, it := range items {
		if it.MenuItemID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid menu_id")
		}
		if it.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderItems, total, err := u.snapshotItems(ctx, r, items)
		if err != nil {
			return err
		}

		//古い明細を消して入れ替え
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().UpdateTotal(ctx, orderID, total); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//created_atは保持、totalとupdated_atだけ進む
		o.TotalPrice = total
		o.UpdatedAt = time.Now()
		out = toOrderOutput(o, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) Delete(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細は注文に埋め込み。他から参照されないので一緒に消すだけ。
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// 全注文を新しい順に返す。各明細には現在のメニュー参照を飾りとして付ける。
func (u *OrderUsecase) List(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			out := toOrderOutput(o, items)
			for i := range out.Items {
				m, err := r.Menus().FindByID(ctx, out.Items[i].MenuItemID)
				if err == repo.ErrNotFound {
					continue
				}
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out.Items[i].Menu = &MenuRef{ID: m.ID, Name: m.Name, Price: m.Price}
			}
			outs = append(outs, out)
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// 全メニューを引いてスナップショット明細と合計を作る。
// 1件でも見つからなければ、そのIDを名指しした404で全体を失敗させる。
func (u *OrderUsecase) snapshotItems(ctx context.Context, r repo.TxRepos, items []OrderItemInput) ([]model.OrderItem, int64, error) {
	now := time.Now()
	orderItems := make([]model.OrderItem, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		m, err := r.Menus().FindByID(ctx, it.MenuItemID)
		if err == repo.ErrNotFound {
			return nil, 0, NewHTTPError(http.StatusNotFound, fmt.Sprintf("menu item not found: %d", it.MenuItemID))
		}
		if err != nil {
			return nil, 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//is_activeは見ない。非表示でも今の名前と価格をそのまま写す。
		orderItems = append(orderItems, model.OrderItem{
			MenuItemID:        m.ID,
			MenuNameSnapshot:  m.Name,
			MenuPriceSnapshot: m.Price,
			Quantity:          it.Quantity,
			CreatedAt:         now,
		})

		total += m.Price * it.Quantity
	}

	return orderItems, total, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			MenuItemID: it.MenuItemID,
			Name:       it.MenuNameSnapshot,
			Price:      it.MenuPriceSnapshot,
			Quantity:   it.Quantity,
		})
	}

	return OrderOutput{
		ID:         o.ID,
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Items:      outItems,
	}
}
