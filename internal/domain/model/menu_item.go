package model

import "time"

// メニュー（商品）。価格は最小通貨単位のint64で持つ。
// 注文に参照されるので物理削除はしない（is_active=falseで非表示）。
type MenuItem struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name string `gorm:"type:varchar(255);not null" json:"menu_name"`

	//価格（最小通貨単位）
	Price int64 `gorm:"not null" json:"menu_price"`

	//分類ID（必須）
	CategoryID int64 `gorm:"not null;index" json:"menu_type"`

	//注文UIに出すか（ソフトデリートフラグ）
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
