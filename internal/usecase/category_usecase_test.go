package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"
	"warehouse/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCategoryFixture() (*usecase.CategoryUsecase, *CategoryRepoMock, *ProductRepoMock) {
	cRepo := new(CategoryRepoMock)
	pRepo := new(ProductRepoMock)
	return usecase.NewCategoryUsecase(cRepo, pRepo), cRepo, pRepo
}

func TestCategoryUsecase_CreateCategory(t *testing.T) {
	uc, cRepo, _ := newCategoryFixture()

	cRepo.On("Create", mock.Anything, model.Category{Name: "Tools"}).Return(model.Category{ID: 3, Name: "Tools"}, nil)

	id, err := uc.CreateCategory(context.Background(), 1, "  Tools  ")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestCategoryUsecase_CreateCategory_Duplicate(t *testing.T) {
	uc, cRepo, _ := newCategoryFixture()

	cRepo.On("Create", mock.Anything, mock.Anything).Return(model.Category{}, repo.ErrDuplicateName)

	_, err := uc.CreateCategory(context.Background(), 1, "Tools")
	assertHTTPStatus(t, err, http.StatusConflict)
}

func TestCategoryUsecase_CreateCategory_Validation(t *testing.T) {
	uc, cRepo, _ := newCategoryFixture()

	_, err := uc.CreateCategory(context.Background(), 1, "   ")
	assertHTTPStatus(t, err, http.StatusBadRequest)

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}
	_, err = uc.CreateCategory(context.Background(), 1, string(long))
	assertHTTPStatus(t, err, http.StatusBadRequest)

	cRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryUsecase_DeleteCategory_BlockedByProducts(t *testing.T) {
	uc, cRepo, pRepo := newCategoryFixture()

	pRepo.On("CountByCategoryID", mock.Anything, int64(2)).Return(int64(4), nil)

	err := uc.DeleteCategory(context.Background(), 1, 2)
	assertHTTPStatus(t, err, http.StatusConflict)
	cRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryUsecase_DeleteCategory_Success(t *testing.T) {
	uc, cRepo, pRepo := newCategoryFixture()

	pRepo.On("CountByCategoryID", mock.Anything, int64(2)).Return(int64(0), nil)
	cRepo.On("Delete", mock.Anything, int64(2)).Return(nil)

	err := uc.DeleteCategory(context.Background(), 1, 2)
	assert.NoError(t, err)
	cRepo.AssertExpectations(t)
}

func TestCategoryUsecase_DeleteCategory_NotFound(t *testing.T) {
	uc, cRepo, pRepo := newCategoryFixture()

	pRepo.On("CountByCategoryID", mock.Anything, int64(9)).Return(int64(0), nil)
	cRepo.On("Delete", mock.Anything, int64(9)).Return(repo.ErrNotFound)

	err := uc.DeleteCategory(context.Background(), 1, 9)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
