package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

// 同じX-Idempotency-Keyで2回POSTしても注文は1件のまま。
func TestCreateOrder_IdempotencyKey(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	suffix := time.Now().UnixNano()
	catID := createCategory(t, c, ctx, fmt.Sprintf("Retry-%d", suffix))
	menuID := createMenuItem(t, c, ctx, fmt.Sprintf("Pizza-%d", suffix), 25000, catID)

	key := uuid.NewString()
	payload := mustMarshal(t, orderRequest{
		Items: []orderItemRequest{{MenuItemID: menuID, Quantity: 1}},
	})

	first := postOrderWithKey(t, c, ctx, payload, key)
	second := postOrderWithKey(t, c, ctx, payload, key)

	if first.ID != second.ID {
		t.Fatalf("same key produced two orders: %d and %d", first.ID, second.ID)
	}
	if second.TotalPrice != 25000 {
		t.Fatalf("total=%d want=25000", second.TotalPrice)
	}
}

func postOrderWithKey(t *testing.T, c *TestClient, ctx context.Context, payload []byte, key string) Order {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/order", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", key)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	requireStatus(t, resp, http.StatusCreated, body)

	var o Order
	mustUnmarshal(t, body, &o)
	return o
}
