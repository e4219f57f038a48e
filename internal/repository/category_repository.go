package repository

import (
	"context"
	"errors"

	"warehouse/internal/domain/model"
)

// name重複を統一
var ErrDuplicateName = errors.New("duplicate name")

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Delete(ctx context.Context, id int64) error
}
