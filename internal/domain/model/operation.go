package model

import "time"

// incoming = 入庫 / outgoing = 出庫
type OperationType string

const (
	OperationIncoming OperationType = "incoming"
	OperationOutgoing OperationType = "outgoing"
)

// 在庫移動の台帳エントリ。作成後の更新・削除は存在しない（追記専用）。
// 誤登録の取り消しは逆向きのOperationを積むことで表現する。
type Operation struct {
	ID             int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID      int64         `gorm:"not null;index" json:"product_id"`
	Type           OperationType `gorm:"type:varchar(10);not null;index" json:"type"`
	Quantity       int64         `gorm:"not null" json:"quantity"`
	Date           time.Time     `gorm:"not null;index" json:"date"`
	DocumentNumber string        `gorm:"type:varchar(50);not null" json:"document_number"`
	SupplierName   string        `gorm:"type:varchar(100);not null" json:"supplier_name"`
	UserID         int64         `gorm:"not null;index" json:"user_id"`
	Comment        string        `gorm:"type:text" json:"comment"`
}
