package repository

import (
	"context"
	"time"

	"warehouse/internal/domain/model"
)

// 一覧検索
type OperationListFilter struct {
	Type      model.OperationType // 空なら両方
	ProductID int64               // 0なら全商品
	StartDate *time.Time
	EndDate   *time.Time
}

// 一覧表示用の行。商品名・担当者ログインをJOINで埋める。
type OperationRow struct {
	ID             int64               `json:"id"`
	ProductID      int64               `json:"product_id"`
	ProductName    string              `json:"product_name"`
	Type           model.OperationType `json:"type"`
	Quantity       int64               `json:"quantity"`
	Date           time.Time           `json:"date"`
	DocumentNumber string              `json:"document_number"`
	SupplierName   string              `json:"supplier_name"`
	UserID         int64               `json:"user_id"`
	UserLogin      string              `json:"user_login"`
	Comment        string              `json:"comment"`
}

// 台帳の永続化。追記と読み出しのみで、更新・削除のメソッドは持たない。
type OperationRepository interface {
	//1件追記してIDを返す
	Create(ctx context.Context, op model.Operation) (int64, error)

	//新しい順
	List(ctx context.Context, f OperationListFilter) ([]OperationRow, error)

	//商品削除前の参照チェック用
	CountByProductID(ctx context.Context, productID int64) (int64, error)
}
