package repository

import (
	"context"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"

	"gorm.io/gorm"
)

type OperationGormRepository struct {
	db *gorm.DB
}

func NewOperationGormRepository(db *gorm.DB) *OperationGormRepository {
	return &OperationGormRepository{db: db}
}

// 台帳へ1件追記
func (r *OperationGormRepository) Create(ctx context.Context, op model.Operation) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&op).Error; err != nil {
		return 0, err
	}
	return op.ID, nil
}

// フィルタ付きで新しい順に返す。
func (r *OperationGormRepository) List(ctx context.Context, f repo.OperationListFilter) ([]repo.OperationRow, error) {
	var rows []repo.OperationRow

	tx := r.db.WithContext(ctx).
		Model(&model.Operation{}).
		Select("operations.id, operations.product_id, products.name AS product_name, operations.type, operations.quantity, operations.date, operations.document_number, operations.supplier_name, operations.user_id, users.login AS user_login, operations.comment").
		Joins("JOIN products ON products.id = operations.product_id").
		Joins("JOIN users ON users.id = operations.user_id")

	if f.Type != "" {
		tx = tx.Where("operations.type = ?", f.Type)
	}
	if f.ProductID > 0 {
		tx = tx.Where("operations.product_id = ?", f.ProductID)
	}
	if f.StartDate != nil {
		tx = tx.Where("operations.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		tx = tx.Where("operations.date <= ?", *f.EndDate)
	}

	if err := tx.Order("operations.date desc").Order("operations.id desc").Scan(&rows).Error; err != nil {
		return []repo.OperationRow{}, err
	}
	return rows, nil
}

// 商品を参照している台帳件数
func (r *OperationGormRepository) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Operation{}).
		Where("product_id = ?", productID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}
