package repository

import (
	"context"
	"errors"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// カテゴリ名付きで全商品を返す。
func (r *ProductGormRepository) List(ctx context.Context) ([]repo.ProductRow, error) {
	var rows []repo.ProductRow

	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("products.id, products.name, products.category_id, categories.name AS category_name, products.description, products.location, products.min_quantity, products.current_quantity").
		Joins("JOIN categories ON categories.id = products.category_id").
		Order("products.name asc").
		Scan(&rows).Error

	if err != nil {
		return []repo.ProductRow{}, err
	}
	return rows, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// カタログ項目のみ更新。current_quantityは更新対象に入れない。
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":         p.Name,
		"category_id":  p.CategoryID,
		"description":  p.Description,
		"location":     p.Location,
		"min_quantity": p.MinQuantity,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カテゴリを参照している商品数
func (r *ProductGormRepository) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

// 発注点を下回った商品を不足量の大きい順で返す。
func (r *ProductGormRepository) ListLowStock(ctx context.Context) ([]repo.ProductRow, error) {
	var rows []repo.ProductRow

	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("products.id, products.name, products.category_id, categories.name AS category_name, products.description, products.location, products.min_quantity, products.current_quantity").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.current_quantity < products.min_quantity").
		Order("(products.min_quantity - products.current_quantity) desc").
		Scan(&rows).Error

	if err != nil {
		return []repo.ProductRow{}, err
	}
	return rows, nil
}
