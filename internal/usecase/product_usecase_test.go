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

// =====================
// mocks（product/categoryテスト共用）
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]repo.ProductRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.ProductRow)
	return rows, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) ListLowStock(ctx context.Context) ([]repo.ProductRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.ProductRow)
	return rows, args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]model.Category)
	return cats, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type OperationRepoMock struct{ mock.Mock }

func (m *OperationRepoMock) Create(ctx context.Context, op model.Operation) (int64, error) {
	args := m.Called(ctx, op)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OperationRepoMock) List(ctx context.Context, f repo.OperationListFilter) ([]repo.OperationRow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]repo.OperationRow)
	return rows, args.Error(1)
}

func (m *OperationRepoMock) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func newProductFixture() (*usecase.ProductUsecase, *ProductRepoMock, *CategoryRepoMock, *OperationRepoMock) {
	pRepo := new(ProductRepoMock)
	cRepo := new(CategoryRepoMock)
	oRepo := new(OperationRepoMock)
	return usecase.NewProductUsecase(pRepo, cRepo, oRepo), pRepo, cRepo, oRepo
}

// =====================
// List / Get
// =====================

func TestProductUsecase_ListProducts(t *testing.T) {
	uc, pRepo, _, _ := newProductFixture()

	pRepo.On("List", mock.Anything).Return([]repo.ProductRow{
		{ID: 1, Name: "Cement 50kg", CategoryName: "Building materials", CurrentQuantity: 70},
	}, nil)

	rows, err := uc.ListProducts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Building materials", rows[0].CategoryName)
}

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	uc, pRepo, _, _ := newProductFixture()

	pRepo.On("FindByID", mock.Anything, int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), 404)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// =====================
// Create
// =====================

func TestProductUsecase_CreateProduct_StartsAtZero(t *testing.T) {
	uc, pRepo, cRepo, _ := newProductFixture()

	cRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Category{ID: 2, Name: "Tools"}, nil)
	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.CurrentQuantity == 0 && p.Name == "Hammer" && p.CategoryID == 2
	})).Return(model.Product{ID: 10}, nil)

	id, err := uc.CreateProduct(context.Background(), 1, usecase.SaveProductInput{
		Name: "Hammer", CategoryID: 2, Location: "A-1", MinQuantity: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), id)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_CreateProduct_UnknownCategory(t *testing.T) {
	uc, pRepo, cRepo, _ := newProductFixture()

	cRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Category{}, repo.ErrNotFound)

	_, err := uc.CreateProduct(context.Background(), 1, usecase.SaveProductInput{
		Name: "Hammer", CategoryID: 99, Location: "A-1",
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	pRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_CreateProduct_Validation(t *testing.T) {
	uc, _, _, _ := newProductFixture()

	cases := []usecase.SaveProductInput{
		{Name: "", CategoryID: 1, Location: "A-1"},
		{Name: "Hammer", CategoryID: 0, Location: "A-1"},
		{Name: "Hammer", CategoryID: 1, Location: "  "},
		{Name: "Hammer", CategoryID: 1, Location: "A-1", MinQuantity: -1},
	}
	for _, in := range cases {
		_, err := uc.CreateProduct(context.Background(), 1, in)
		assertHTTPStatus(t, err, http.StatusBadRequest)
	}
}

// =====================
// Update / Delete
// =====================

func TestProductUsecase_UpdateProduct_LeavesQuantityAlone(t *testing.T) {
	uc, pRepo, cRepo, _ := newProductFixture()

	cRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Category{ID: 2}, nil)
	pRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		//在庫数はカタログ更新では触らない
		return p.ID == 5 && p.CurrentQuantity == 0
	})).Return(nil)

	err := uc.UpdateProduct(context.Background(), 1, 5, usecase.SaveProductInput{
		Name: "Hammer v2", CategoryID: 2, Location: "A-2", MinQuantity: 5,
	})
	assert.NoError(t, err)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_DeleteProduct_BlockedByOperations(t *testing.T) {
	uc, pRepo, _, oRepo := newProductFixture()

	oRepo.On("CountByProductID", mock.Anything, int64(5)).Return(int64(3), nil)

	err := uc.DeleteProduct(context.Background(), 1, 5)
	assertHTTPStatus(t, err, http.StatusConflict)
	pRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductUsecase_DeleteProduct_Success(t *testing.T) {
	uc, pRepo, _, oRepo := newProductFixture()

	oRepo.On("CountByProductID", mock.Anything, int64(5)).Return(int64(0), nil)
	pRepo.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := uc.DeleteProduct(context.Background(), 1, 5)
	assert.NoError(t, err)
	pRepo.AssertExpectations(t)
}
