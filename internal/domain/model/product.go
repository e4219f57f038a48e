package model

import "time"

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	CategoryID  int64  `gorm:"not null;index" json:"category_id"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"type:varchar(50);not null" json:"location"`

	//発注点（これを下回ると欠品レポート対象）
	MinQuantity int64 `gorm:"not null;default:0" json:"min_quantity"`

	//現在庫。operationsからの導出値で、更新はStockUsecaseのトランザクション内だけ。
	CurrentQuantity int64 `gorm:"not null;default:0" json:"current_quantity"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
