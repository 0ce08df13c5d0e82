package model

import "time"

// メニューの分類（Drinks / Mains など）
type Category struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//分類名
	Name string `gorm:"type:varchar(255);not null" json:"menu_type_name"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
