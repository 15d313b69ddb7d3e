package repository

import "context"

// TxRepos는 트랜잭션 안에서 쓰는 repository 묶음.
// 리뷰 생성/삭제와 주문 미러 갱신을 한 트랜잭션으로 묶는 데 쓴다.
type TxRepos interface {
	Orders() OrderRepository
	Reviews() ReviewRepository
}

// TransactionManager는 fn 전체를 하나의 트랜잭션으로 실행한다.
// fn 안의 repository 호출은 반드시 넘겨받은 ctx로 해야 한다 (세션 바인딩).
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r TxRepos) error) error
}
