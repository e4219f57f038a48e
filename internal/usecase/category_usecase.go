package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository, productRepo repo.ProductRepository) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cats, nil
}

func (u *CategoryUsecase) CreateCategory(ctx context.Context, actorID int64, name string) (int64, error) {
	if actorID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if len(name) > 50 {
		return 0, NewHTTPError(http.StatusBadRequest, "name too long")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{Name: name})
	if errors.Is(err, repo.ErrDuplicateName) {
		return 0, NewHTTPError(http.StatusConflict, "category already exists")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c.ID, nil
}

// 参照している商品が1つでもあれば消せない。
func (u *CategoryUsecase) DeleteCategory(ctx context.Context, actorID int64, categoryID int64) error {
	if actorID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	n, err := u.productRepo.CountByCategoryID(ctx, categoryID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n > 0 {
		return NewHTTPError(http.StatusConflict, "category has products")
	}

	err = u.categoryRepo.Delete(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
