package model

import "time"

// 注文の明細。名前と価格は注文時点のスナップショット。
// 一度書いたスナップショットは、後でメニューが変更・無効化されても変えない。
type OrderItem struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64 `gorm:"not null;index" json:"order_id"`
	MenuItemID int64 `gorm:"not null;index;column:menu_item_id" json:"menu_id"`

	//注文時点のメニュー名
	MenuNameSnapshot string `gorm:"type:varchar(255);not null" json:"menu_name"`

	//注文時点の価格（最小通貨単位）
	MenuPriceSnapshot int64 `gorm:"not null" json:"menu_price"`

	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
