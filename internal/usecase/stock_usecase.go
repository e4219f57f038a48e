package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// 直列化競合で全体をやり直す回数の上限。超えたらErrTxConflictで呼び出し元へ。
const maxConflictRetries = 3

// 在庫移動エンジン。
// 台帳への追記と現在庫の増減を1トランザクションで行い、どちらか片方だけが
// 残る状態を作らない。現在庫を直接書き換える経路はここ以外に存在しない。
type StockUsecase struct {
	tx repo.TransactionManager
}

func NewStockUsecase(tx repo.TransactionManager) *StockUsecase {
	return &StockUsecase{tx: tx}
}

type RecordMovementInput struct {
	ProductID      int64
	Quantity       int64
	DocumentNumber string
	SupplierName   string
	Comment        string
	Date           *time.Time // 未指定なら受理時刻
}

type OperationOutput struct {
	ID             int64               `json:"id"`
	ProductID      int64               `json:"product_id"`
	Type           model.OperationType `json:"type"`
	Quantity       int64               `json:"quantity"`
	Date           time.Time           `json:"date"`
	DocumentNumber string              `json:"document_number"`
	SupplierName   string              `json:"supplier_name"`
	UserID         int64               `json:"user_id"`
	Comment        string              `json:"comment"`
	NewQuantity    int64               `json:"new_quantity"`
}

// RecordMovement は1件の在庫移動を受理する。
// 出庫の残高チェックと減算は同一トランザクション内の条件付きUPDATE1文なので、
// 並行する出庫同士が同じ残高を見て二重に通ることはない。
func (u *StockUsecase) RecordMovement(ctx context.Context, actorID int64, opType model.OperationType, in RecordMovementInput) (OperationOutput, error) {
	if actorID <= 0 {
		return OperationOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if opType != model.OperationIncoming && opType != model.OperationOutgoing {
		return OperationOutput{}, NewHTTPError(http.StatusBadRequest, "invalid operation type")
	}
	if in.ProductID <= 0 {
		return OperationOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity <= 0 {
		return OperationOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}

	docNumber := strings.TrimSpace(in.DocumentNumber)
	if docNumber == "" || len(docNumber) > 50 {
		return OperationOutput{}, NewHTTPError(http.StatusBadRequest, "invalid document_number")
	}
	supplier := strings.TrimSpace(in.SupplierName)
	if supplier == "" || len(supplier) > 100 {
		return OperationOutput{}, NewHTTPError(http.StatusBadRequest, "invalid supplier_name")
	}

	var out OperationOutput
	var err error

	//直列化競合は検証からやり直す（部分的な再実行はしない）
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		out, err = u.applyMovement(ctx, actorID, opType, in.ProductID, in.Quantity, docNumber, supplier, strings.TrimSpace(in.Comment), in.Date)
		if !isRetryableTxError(err) {
			return out, err
		}
	}

	return OperationOutput{}, ErrTxConflict
}

// 1回分の原子的な適用。読み・チェック・追記・増減を1トランザクションに閉じる。
func (u *StockUsecase) applyMovement(
	ctx context.Context,
	actorID int64,
	opType model.OperationType,
	productID int64,
	quantity int64,
	docNumber string,
	supplier string,
	comment string,
	dateOverride *time.Time,
) (OperationOutput, error) {
	var out OperationOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return err
		}

		var newQty int64
		switch opType {
		case model.OperationOutgoing:
			//在庫減算（足りないなら ok=false）
			n, ok, err := r.Stock().DecreaseIfEnough(ctx, productID, quantity)
			if err != nil {
				return err
			}
			if !ok {
				//エラーを返すのでトランザクションごとロールバックされる
				return &InsufficientStockError{
					ProductID: productID,
					Have:      p.CurrentQuantity,
					Requested: quantity,
				}
			}
			newQty = n
		case model.OperationIncoming:
			n, err := r.Stock().Increase(ctx, productID, quantity)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return err
			}
			newQty = n
		}

		date := time.Now()
		if dateOverride != nil && !dateOverride.IsZero() {
			date = *dateOverride
		}

		//台帳へ追記。失敗すれば上の在庫増減も巻き戻る。
		opID, err := r.Operations().Create(ctx, model.Operation{
			ProductID:      productID,
			Type:           opType,
			Quantity:       quantity,
			Date:           date,
			DocumentNumber: docNumber,
			SupplierName:   supplier,
			UserID:         actorID,
			Comment:        comment,
		})
		if err != nil {
			return err
		}

		out = OperationOutput{
			ID:             opID,
			ProductID:      productID,
			Type:           opType,
			Quantity:       quantity,
			Date:           date,
			DocumentNumber: docNumber,
			SupplierName:   supplier,
			UserID:         actorID,
			Comment:        comment,
			NewQuantity:    newQty,
		}
		return nil
	})

	if err != nil {
		return OperationOutput{}, err
	}
	return out, nil
}

// Postgresの直列化失敗（40001）とデッドロック検出（40P01）だけをやり直す。
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
