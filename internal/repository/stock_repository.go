package repository

import "context"

// 現在庫（導出集計）の増減だけを約束。
// 必ずTransactionManagerのトランザクション内から呼ぶこと。
type StockRepository interface {
	//在庫を加算して更新後の値を返す。商品がなければErrNotFound。
	Increase(ctx context.Context, productID int64, qty int64) (int64, error)

	//在庫が足りるときだけ減算して更新後の値を返す。足りなければ ok=false（エラーではない）。
	//条件付きUPDATE1文で行うため、同一商品への並行出庫はDBの行ロックで直列化される。
	DecreaseIfEnough(ctx context.Context, productID int64, qty int64) (newQty int64, ok bool, err error)
}
