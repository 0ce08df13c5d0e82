package model

import "time"

// 確定済みの注文。total_priceは作成時に明細スナップショットから計算する。
type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//合計金額（最小通貨単位）
	TotalPrice int64 `gorm:"not null" json:"total_price"`

	//二重送信防止キー
	IdempotencyKey string `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
