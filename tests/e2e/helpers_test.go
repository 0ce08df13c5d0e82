package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// BASE_URLが無ければこのパッケージは丸ごとスキップ（サーバーが必要）。
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		t.Skip("BASE_URL not set; e2e tests need a running server")
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"menu_type_name"`
}

type MenuItem struct {
	ID       int64    `json:"id"`
	Name     string   `json:"menu_name"`
	Price    int64    `json:"menu_price"`
	Category Category `json:"menu_type"`
	IsActive bool     `json:"is_active"`
}

type MenuRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"menu_name"`
	Price int64  `json:"menu_price"`
}

type OrderItem struct {
	MenuItemID int64    `json:"menu_id"`
	Name       string   `json:"menu_name"`
	Price      int64    `json:"menu_price"`
	Quantity   int64    `json:"quantity"`
	Menu       *MenuRef `json:"menu"`
}

type Order struct {
	ID         int64       `json:"id"`
	TotalPrice int64       `json:"total_price"`
	CreatedAt  string      `json:"created_at"`
	Items      []OrderItem `json:"items"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	return b
}

func mustUnmarshal(t *testing.T, body []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, string(body))
	}
}
