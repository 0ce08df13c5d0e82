package e2e

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type categoryRequest struct {
	Name string `json:"menu_type_name"`
}

type menuCreateRequest struct {
	Name       string `json:"menu_name"`
	Price      int64  `json:"menu_price"`
	CategoryID int64  `json:"menu_type"`
}

type menuEditRequest struct {
	Name       string `json:"menu_name"`
	Price      int64  `json:"menu_price"`
	CategoryID int64  `json:"menu_type"`
	IsActive   bool   `json:"is_active"`
}

type orderItemRequest struct {
	MenuItemID int64 `json:"menu_id"`
	Quantity   int64 `json:"quantity"`
}

type orderRequest struct {
	Items []orderItemRequest `json:"items"`
}

// 分類を作ってIDを返す。
func createCategory(t *testing.T, c *TestClient, ctx context.Context, name string) int64 {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/category", mustMarshal(t, categoryRequest{Name: name}))
	requireStatus(t, resp, http.StatusCreated, body)

	var cat Category
	mustUnmarshal(t, body, &cat)
	return cat.ID
}

// メニューを作ってIDを返す。
func createMenuItem(t *testing.T, c *TestClient, ctx context.Context, name string, price int64, categoryID int64) int64 {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/menu", mustMarshal(t, menuCreateRequest{
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
	}))
	requireStatus(t, resp, http.StatusCreated, body)

	var m MenuItem
	mustUnmarshal(t, body, &m)
	return m.ID
}

func TestCreateOrder_SnapshotSurvivesPriceChange(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	suffix := time.Now().UnixNano()
	catID := createCategory(t, c, ctx, fmt.Sprintf("Mains-%d", suffix))
	burgerID := createMenuItem(t, c, ctx, fmt.Sprintf("Burger-%d", suffix), 15000, catID)
	friesID := createMenuItem(t, c, ctx, fmt.Sprintf("Fries-%d", suffix), 6000, catID)

	//注文確定
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/order", mustMarshal(t, orderRequest{
		Items: []orderItemRequest{
			{MenuItemID: burgerID, Quantity: 2},
			{MenuItemID: friesID, Quantity: 1},
		},
	}))
	requireStatus(t, resp, http.StatusCreated, body)

	var created Order
	mustUnmarshal(t, body, &created)
	if created.TotalPrice != 36000 {
		t.Fatalf("total=%d want=36000", created.TotalPrice)
	}
	if len(created.Items) != 2 {
		t.Fatalf("items=%d want=2", len(created.Items))
	}

	//メニューを値上げ
	resp, body = c.doJSON(ctx, t, http.MethodPut, fmt.Sprintf("/api/menu/%d", burgerID), mustMarshal(t, menuEditRequest{
		Name:       fmt.Sprintf("Burger-%d", suffix),
		Price:      20000,
		CategoryID: catID,
		IsActive:   true,
	}))
	requireStatus(t, resp, http.StatusOK, body)

	//一覧で読み直してもスナップショットと合計は据え置き
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/order", nil)
	requireStatus(t, resp, http.StatusOK, body)

	var orders []Order
	mustUnmarshal(t, body, &orders)

	var found *Order
	for i := range orders {
		if orders[i].ID == created.ID {
			found = &orders[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("created order %d not in list", created.ID)
	}
	if found.TotalPrice != 36000 {
		t.Fatalf("total changed after price edit: %d", found.TotalPrice)
	}

	for _, it := range found.Items {
		if it.MenuItemID == burgerID {
			if it.Price != 15000 {
				t.Fatalf("snapshot price changed: %d", it.Price)
			}
			//飾りの現在メニューは新価格
			if it.Menu == nil || it.Menu.Price != 20000 {
				t.Fatalf("current menu ref=%+v want price 20000", it.Menu)
			}
		}
	}
}

func TestCreateOrder_UnknownMenuIsAtomic(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	suffix := time.Now().UnixNano()
	catID := createCategory(t, c, ctx, fmt.Sprintf("Sides-%d", suffix))
	okID := createMenuItem(t, c, ctx, fmt.Sprintf("Salad-%d", suffix), 8000, catID)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/order", nil)
	requireStatus(t, resp, http.StatusOK, body)
	var before []Order
	mustUnmarshal(t, body, &before)

	//存在しないIDを混ぜる
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/api/order", mustMarshal(t, orderRequest{
		Items: []orderItemRequest{
			{MenuItemID: okID, Quantity: 1},
			{MenuItemID: 999999999, Quantity: 1},
		},
	}))
	requireStatus(t, resp, http.StatusNotFound, body)

	var errResp ErrorResponse
	mustUnmarshal(t, body, &errResp)
	if errResp.Error == "" {
		t.Fatalf("error message missing: %s", string(body))
	}

	//注文は1件も増えていない
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/order", nil)
	requireStatus(t, resp, http.StatusOK, body)
	var after []Order
	mustUnmarshal(t, body, &after)
	if len(after) != len(before) {
		t.Fatalf("orders grew from %d to %d", len(before), len(after))
	}
}

func TestEditAndDeleteOrder(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	suffix := time.Now().UnixNano()
	catID := createCategory(t, c, ctx, fmt.Sprintf("Drinks-%d", suffix))
	colaID := createMenuItem(t, c, ctx, fmt.Sprintf("Cola-%d", suffix), 4000, catID)
	beerID := createMenuItem(t, c, ctx, fmt.Sprintf("Beer-%d", suffix), 9000, catID)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/order", mustMarshal(t, orderRequest{
		Items: []orderItemRequest{{MenuItemID: colaID, Quantity: 1}},
	}))
	requireStatus(t, resp, http.StatusCreated, body)
	var created Order
	mustUnmarshal(t, body, &created)

	//編集は明細の丸ごと差し替え
	resp, body = c.doJSON(ctx, t, http.MethodPut, fmt.Sprintf("/api/order/%d", created.ID), mustMarshal(t, orderRequest{
		Items: []orderItemRequest{{MenuItemID: beerID, Quantity: 2}},
	}))
	requireStatus(t, resp, http.StatusOK, body)

	var edited Order
	mustUnmarshal(t, body, &edited)
	if edited.TotalPrice != 18000 {
		t.Fatalf("total=%d want=18000", edited.TotalPrice)
	}
	if len(edited.Items) != 1 || edited.Items[0].MenuItemID != beerID {
		t.Fatalf("items not replaced: %+v", edited.Items)
	}

	//削除
	resp, body = c.doJSON(ctx, t, http.MethodDelete, fmt.Sprintf("/api/order/%d", created.ID), nil)
	requireStatus(t, resp, http.StatusOK, body)

	//もう一度消すと404
	resp, body = c.doJSON(ctx, t, http.MethodDelete, fmt.Sprintf("/api/order/%d", created.ID), nil)
	requireStatus(t, resp, http.StatusNotFound, body)
}

func TestMenuSoftDelete(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	suffix := time.Now().UnixNano()
	catID := createCategory(t, c, ctx, fmt.Sprintf("Specials-%d", suffix))
	menuID := createMenuItem(t, c, ctx, fmt.Sprintf("Soup-%d", suffix), 7000, catID)

	resp, body := c.doJSON(ctx, t, http.MethodDelete, fmt.Sprintf("/api/menu/%d", menuID), nil)
	requireStatus(t, resp, http.StatusOK, body)

	//行は残り、is_activeだけfalseになる
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/menu", nil)
	requireStatus(t, resp, http.StatusOK, body)

	var menus []MenuItem
	mustUnmarshal(t, body, &menus)

	var found *MenuItem
	for i := range menus {
		if menus[i].ID == menuID {
			found = &menus[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("deactivated menu %d missing from list", menuID)
	}
	if found.IsActive {
		t.Fatalf("menu %d still active after delete", menuID)
	}

	//無効化済みでも注文には使える（スナップショットは取れる）
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/api/order", mustMarshal(t, orderRequest{
		Items: []orderItemRequest{{MenuItemID: menuID, Quantity: 1}},
	}))
	requireStatus(t, resp, http.StatusCreated, body)
}
