package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// /api/order のリクエスト形。カートのメニュー詳細とローカル合計は送らない。
// 保存される合計はサーバーがその時点のカタログ価格から計算し直す。
type CreateOrderItem struct {
	MenuItemID int64 `json:"menu_id"`
	Quantity   int64 `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

// サーバーが返す確定済み注文。
type CreatedOrderItem struct {
	MenuItemID int64  `json:"menu_id"`
	Name       string `json:"menu_name"`
	Price      int64  `json:"menu_price"`
	Quantity   int64  `json:"quantity"`
}

type CreatedOrder struct {
	ID         int64              `json:"id"`
	TotalPrice int64              `json:"total_price"`
	CreatedAt  time.Time          `json:"created_at"`
	Items      []CreatedOrderItem `json:"items"`
}

// APIError はサーバーが返した4xx/5xxをそのまま運ぶ。
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client は注文APIの薄いHTTPクライアント。
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		//応答が返らないままカートを握り続けないようにタイムアウトを切る
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) CreateOrder(ctx context.Context, in CreateOrderRequest, idempotencyKey string) (CreatedOrder, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return CreatedOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return CreatedOrder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return CreatedOrder{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error == "" {
			errBody.Error = "request failed"
		}
		return CreatedOrder{}, &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}

	var out CreatedOrder
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return CreatedOrder{}, err
	}
	return out, nil
}
