package cart

import "app/internal/domain/model"

// 送信前のカートの1行。メニューはIDだけでなく丸ごと持つ
// （画面表示用。送信時にはIDと数量だけに落とす）。
type Item struct {
	Menu     model.MenuItem
	Quantity int64
}

// カートの状態。TotalPriceは派生値で、毎回ゼロから計算し直す。
type State struct {
	Items      []Item
	TotalPrice int64
}

// カートへの操作。Reduceに渡す。
type Action interface {
	isAction()
}

type AddItem struct {
	Menu model.MenuItem
}

type IncreaseQty struct {
	MenuItemID int64
}

type DecreaseQty struct {
	MenuItemID int64
}

type RemoveItem struct {
	MenuItemID int64
}

type Clear struct{}

func (AddItem) isAction()     {}
func (IncreaseQty) isAction() {}
func (DecreaseQty) isAction() {}
func (RemoveItem) isAction()  {}
func (Clear) isAction()       {}

// Reduce は純粋関数。入力の状態は変更せず、次の状態を返す。
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case AddItem:
		return recompute(addItem(s.Items, act.Menu))
	case IncreaseQty:
		return recompute(changeQty(s.Items, act.MenuItemID, +1))
	case DecreaseQty:
		return recompute(changeQty(s.Items, act.MenuItemID, -1))
	case RemoveItem:
		return recompute(removeItem(s.Items, act.MenuItemID))
	case Clear:
		return State{}
	default:
		return recompute(copyItems(s.Items))
	}
}

// 同じメニューがあれば数量+1、なければ末尾に数量1で追加。
func addItem(items []Item, menu model.MenuItem) []Item {
	next := copyItems(items)
	for i := range next {
		if next[i].Menu.ID == menu.ID {
			next[i].Quantity++
			return next
		}
	}
	return append(next, Item{Menu: menu, Quantity: 1})
}

// 数量をdeltaだけ変える。0以下になったら行ごと消す。
// 対象がカートに無ければ何もしない（エラーではない）。
func changeQty(items []Item, menuItemID int64, delta int64) []Item {
	next := copyItems(items)
	for i := range next {
		if next[i].Menu.ID != menuItemID {
			continue
		}
		next[i].Quantity += delta
		if next[i].Quantity <= 0 {
			return append(next[:i], next[i+1:]...)
		}
		return next
	}
	return next
}

func removeItem(items []Item, menuItemID int64) []Item {
	next := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Menu.ID == menuItemID {
			continue
		}
		next = append(next, it)
	}
	return next
}

// 合計は差分更新しない。ズレ防止のため常にゼロから足し直す。
func recompute(items []Item) State {
	var total int64 = 0
	for _, it := range items {
		total += it.Menu.Price * it.Quantity
	}
	return State{Items: items, TotalPrice: total}
}

func copyItems(items []Item) []Item {
	next := make([]Item, len(items))
	copy(next, items)
	return next
}
