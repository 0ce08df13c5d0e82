package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	//送信中の再送信。解決するまで同じカートは送れない。
	ErrSubmitInFlight = errors.New("submit already in flight")
)

// Store はカート状態の入れ物。1セッションが1つ持つ。
// 状態の変え方はReduce経由だけ。
type Store struct {
	mu       sync.Mutex
	state    State
	client   *Client
	inFlight bool

	//二重送信防止キー。送信失敗でリトライしても同じ注文になるよう、
	//成功してカートが空になるまで使い回す。
	idemKey string
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
}

// State は現在の状態のコピーを返す。
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recompute(copyItems(s.state.Items))
}

// Submit はカートを注文APIに渡す。
// 成功したらカートを空にする。失敗したらカートはそのまま残す（再送信できる）。
func (s *Store) Submit(ctx context.Context) (CreatedOrder, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return CreatedOrder{}, ErrSubmitInFlight
	}
	if len(s.state.Items) == 0 {
		s.mu.Unlock()
		return CreatedOrder{}, ErrEmptyCart
	}

	if s.idemKey == "" {
		s.idemKey = uuid.NewString()
	}
	key := s.idemKey

	req := CreateOrderRequest{Items: make([]CreateOrderItem, 0, len(s.state.Items))}
	for _, it := range s.state.Items {
		req.Items = append(req.Items, CreateOrderItem{
			MenuItemID: it.Menu.ID,
			Quantity:   it.Quantity,
		})
	}

	s.inFlight = true
	s.mu.Unlock()

	created, err := s.client.CreateOrder(ctx, req, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		//カートは送信前のまま
		return CreatedOrder{}, err
	}

	s.state = State{}
	s.idemKey = ""
	return created, nil
}
