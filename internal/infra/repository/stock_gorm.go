package repository

import (
	"context"

	repo "warehouse/internal/repository"

	"gorm.io/gorm"
)

type StockGormRepository struct {
	db *gorm.DB
}

func NewStockGormRepository(db *gorm.DB) *StockGormRepository {
	return &StockGormRepository{db: db}
}

// 在庫を加算して更新後の値を返す
func (r *StockGormRepository) Increase(ctx context.Context, productID int64, qty int64) (int64, error) {
	var newQty int64

	res := r.db.WithContext(ctx).Raw(
		"UPDATE products SET current_quantity = current_quantity + ?, updated_at = NOW() WHERE id = ? RETURNING current_quantity",
		qty, productID,
	).Scan(&newQty)

	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, repo.ErrNotFound
	}
	return newQty, nil
}

// 在庫が足りるときだけ減らす。
// WHERE句の current_quantity >= ? が残高チェックと減算を1文にまとめるので、
// 二つの並行出庫が同じ残高を見て両方通る、という競合は起きない。
func (r *StockGormRepository) DecreaseIfEnough(ctx context.Context, productID int64, qty int64) (int64, bool, error) {
	var newQty int64

	res := r.db.WithContext(ctx).Raw(
		"UPDATE products SET current_quantity = current_quantity - ?, updated_at = NOW() WHERE id = ? AND current_quantity >= ? RETURNING current_quantity",
		qty, productID, qty,
	).Scan(&newQty)

	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}
	return newQty, true, nil
}
