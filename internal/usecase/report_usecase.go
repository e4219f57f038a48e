package usecase

import (
	"context"
	"net/http"
	"time"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"
)

// 読み取り専用の照会面。台帳と現在庫を参照するだけで、一切書き込まない。
type ReportUsecase struct {
	productRepo   repo.ProductRepository
	operationRepo repo.OperationRepository
}

// DI
func NewReportUsecase(productRepo repo.ProductRepository, operationRepo repo.OperationRepository) *ReportUsecase {
	return &ReportUsecase{
		productRepo:   productRepo,
		operationRepo: operationRepo,
	}
}

type OperationsFilterInput struct {
	Type      string
	ProductID int64
	StartDate *time.Time
	EndDate   *time.Time
}

// GET /api/operations 用の一覧。
func (u *ReportUsecase) ListOperations(ctx context.Context, in OperationsFilterInput) ([]repo.OperationRow, error) {
	var opType model.OperationType
	switch in.Type {
	case "":
	case string(model.OperationIncoming):
		opType = model.OperationIncoming
	case string(model.OperationOutgoing):
		opType = model.OperationOutgoing
	default:
		return []repo.OperationRow{}, NewHTTPError(http.StatusBadRequest, "invalid type")
	}
	if in.ProductID < 0 {
		return []repo.OperationRow{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return []repo.OperationRow{}, NewHTTPError(http.StatusBadRequest, "endDate before startDate")
	}

	rows, err := u.operationRepo.List(ctx, repo.OperationListFilter{
		Type:      opType,
		ProductID: in.ProductID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	})
	if err != nil {
		return []repo.OperationRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// 全商品の現在庫。
func (u *ReportUsecase) CurrentStock(ctx context.Context) ([]repo.ProductRow, error) {
	rows, err := u.productRepo.List(ctx)
	if err != nil {
		return []repo.ProductRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// 発注点を下回った商品。不足量の大きい順。
func (u *ReportUsecase) LowStock(ctx context.Context) ([]repo.ProductRow, error) {
	rows, err := u.productRepo.ListLowStock(ctx)
	if err != nil {
		return []repo.ProductRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// 期間内の全Operation。期間は必須。
func (u *ReportUsecase) OperationsInPeriod(ctx context.Context, start, end *time.Time) ([]repo.OperationRow, error) {
	if start == nil || end == nil {
		return []repo.OperationRow{}, NewHTTPError(http.StatusBadRequest, "startDate and endDate required")
	}
	return u.ListOperations(ctx, OperationsFilterInput{StartDate: start, EndDate: end})
}

// 1商品の移動履歴。商品と期間は必須。
func (u *ReportUsecase) ProductMovement(ctx context.Context, productID int64, start, end *time.Time) ([]repo.OperationRow, error) {
	if productID <= 0 {
		return []repo.OperationRow{}, NewHTTPError(http.StatusBadRequest, "productId required")
	}
	if start == nil || end == nil {
		return []repo.OperationRow{}, NewHTTPError(http.StatusBadRequest, "startDate and endDate required")
	}
	return u.ListOperations(ctx, OperationsFilterInput{ProductID: productID, StartDate: start, EndDate: end})
}
