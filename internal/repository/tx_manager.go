package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Products() ProductRepository
	Stock() StockRepository
	Operations() OperationRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがエラーを返せば全ロールバック、nilなら全コミット。途中のpanicやctxキャンセルでもロールバックされる。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
