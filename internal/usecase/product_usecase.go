package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	operationRepo repo.OperationRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	operationRepo repo.OperationRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		operationRepo: operationRepo,
	}
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]repo.ProductRow, error) {
	rows, err := u.productRepo.List(ctx)
	if err != nil {
		return []repo.ProductRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type SaveProductInput struct {
	Name        string
	CategoryID  int64
	Description string
	Location    string
	MinQuantity int64
}

// 入力を共通チェック。カテゴリの存在もここで確認する。
func (u *ProductUsecase) validateSave(ctx context.Context, in SaveProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if len(in.Name) > 100 {
		return NewHTTPError(http.StatusBadRequest, "name too long")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "category_id required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return NewHTTPError(http.StatusBadRequest, "location required")
	}
	if in.MinQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "min_quantity must be >= 0")
	}

	_, err := u.categoryRepo.FindByID(ctx, in.CategoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, "unknown category")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 新商品はcurrent_quantity=0で始まる。初期在庫は入庫Operationとして登録する。
func (u *ProductUsecase) CreateProduct(ctx context.Context, actorID int64, in SaveProductInput) (int64, error) {
	if actorID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validateSave(ctx, in); err != nil {
		return 0, err
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:            strings.TrimSpace(in.Name),
		CategoryID:      in.CategoryID,
		Description:     in.Description,
		Location:        strings.TrimSpace(in.Location),
		MinQuantity:     in.MinQuantity,
		CurrentQuantity: 0,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p.ID, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, actorID int64, productID int64, in SaveProductInput) error {
	if actorID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := u.validateSave(ctx, in); err != nil {
		return err
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Location:    strings.TrimSpace(in.Location),
		MinQuantity: in.MinQuantity,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 台帳から参照されている商品は消せない（台帳は追記専用で、参照先が消えると履歴が壊れる）
func (u *ProductUsecase) DeleteProduct(ctx context.Context, actorID int64, productID int64) error {
	if actorID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	n, err := u.operationRepo.CountByProductID(ctx, productID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n > 0 {
		return NewHTTPError(http.StatusConflict, "product has operations")
	}

	err = u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
