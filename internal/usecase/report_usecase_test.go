package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"
	"warehouse/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReportFixture() (*usecase.ReportUsecase, *ProductRepoMock, *OperationRepoMock) {
	pRepo := new(ProductRepoMock)
	oRepo := new(OperationRepoMock)
	return usecase.NewReportUsecase(pRepo, oRepo), pRepo, oRepo
}

func TestReportUsecase_ListOperations_PassesFilter(t *testing.T) {
	uc, _, oRepo := newReportFixture()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	oRepo.On("List", mock.Anything, mock.MatchedBy(func(f repo.OperationListFilter) bool {
		return f.Type == model.OperationOutgoing &&
			f.ProductID == 7 &&
			f.StartDate.Equal(start) &&
			f.EndDate.Equal(end)
	})).Return([]repo.OperationRow{{ID: 1, ProductID: 7}}, nil)

	rows, err := uc.ListOperations(context.Background(), usecase.OperationsFilterInput{
		Type: "outgoing", ProductID: 7, StartDate: &start, EndDate: &end,
	})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	oRepo.AssertExpectations(t)
}

func TestReportUsecase_ListOperations_InvalidType(t *testing.T) {
	uc, _, oRepo := newReportFixture()

	_, err := uc.ListOperations(context.Background(), usecase.OperationsFilterInput{Type: "transfer"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	oRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestReportUsecase_ListOperations_EndBeforeStart(t *testing.T) {
	uc, _, _ := newReportFixture()

	start := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.ListOperations(context.Background(), usecase.OperationsFilterInput{StartDate: &start, EndDate: &end})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestReportUsecase_LowStock(t *testing.T) {
	uc, pRepo, _ := newReportFixture()

	pRepo.On("ListLowStock", mock.Anything).Return([]repo.ProductRow{
		{ID: 1, Name: "Cement 50kg", MinQuantity: 20, CurrentQuantity: 3},
	}, nil)

	rows, err := uc.LowStock(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestReportUsecase_OperationsInPeriod_RequiresDates(t *testing.T) {
	uc, _, _ := newReportFixture()

	start := time.Now()
	_, err := uc.OperationsInPeriod(context.Background(), &start, nil)
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.OperationsInPeriod(context.Background(), nil, &start)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestReportUsecase_ProductMovement_RequiresProduct(t *testing.T) {
	uc, _, _ := newReportFixture()

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now()

	_, err := uc.ProductMovement(context.Background(), 0, &start, &end)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestReportUsecase_ProductMovement(t *testing.T) {
	uc, _, oRepo := newReportFixture()

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now()

	oRepo.On("List", mock.Anything, mock.MatchedBy(func(f repo.OperationListFilter) bool {
		return f.ProductID == 3 && f.Type == ""
	})).Return([]repo.OperationRow{}, nil)

	rows, err := uc.ProductMovement(context.Background(), 3, &start, &end)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
