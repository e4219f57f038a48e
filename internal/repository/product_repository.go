package repository

import (
	"context"
	"errors"

	"warehouse/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧表示用の行。カテゴリ名をJOINで埋める。
type ProductRow struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	CategoryID      int64  `json:"category_id"`
	CategoryName    string `json:"category_name"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	MinQuantity     int64  `json:"min_quantity"`
	CurrentQuantity int64  `json:"current_quantity"`
}

// 商品カタログの永続化（保存・取得）だけを約束。
// current_quantityはここでは触らない（StockRepositoryの担当）。
type ProductRepository interface {
	List(ctx context.Context) ([]ProductRow, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	//カタログ項目のみ更新する。current_quantityは対象外。
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	//カテゴリ削除前の参照チェック用
	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)

	//current_quantity < min_quantity の商品を、不足量の大きい順に返す
	ListLowStock(ctx context.Context) ([]ProductRow, error)
}
