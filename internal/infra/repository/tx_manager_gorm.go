package repository

import (
	"context"
	"time"

	repo "warehouse/internal/repository"

	"gorm.io/gorm"
)

// 1トランザクションの上限。超えたらabortして呼び出し元にエラーを返す。
const txTimeout = 5 * time.Second

type txReposGorm struct {
	products   repo.ProductRepository
	stock      repo.StockRepository
	operations repo.OperationRepository
}

func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) Stock() repo.StockRepository          { return r.stock }
func (r *txReposGorm) Operations() repo.OperationRepository { return r.operations }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:   NewProductGormRepository(tx),
			stock:      NewStockGormRepository(tx),
			operations: NewOperationGormRepository(tx),
		}
		return fn(r)
	})
}
