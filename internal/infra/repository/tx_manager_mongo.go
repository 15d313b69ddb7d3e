package repository

import (
	"context"

	repo "app/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTransactionManager는 mongo 세션 트랜잭션으로 WithinTx를 구현한다.
// 세션은 context로 전파되므로 repo 인스턴스는 그대로 재사용한다.
type MongoTransactionManager struct {
	client  *mongo.Client
	orders  repo.OrderRepository
	reviews repo.ReviewRepository
}

func NewMongoTransactionManager(client *mongo.Client, orders repo.OrderRepository, reviews repo.ReviewRepository) *MongoTransactionManager {
	return &MongoTransactionManager{client: client, orders: orders, reviews: reviews}
}

type txRepos struct {
	orders  repo.OrderRepository
	reviews repo.ReviewRepository
}

func (r *txRepos) Orders() repo.OrderRepository   { return r.orders }
func (r *txRepos) Reviews() repo.ReviewRepository { return r.reviews }

func (m *MongoTransactionManager) WithinTx(ctx context.Context, fn func(ctx context.Context, r repo.TxRepos) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	repos := &txRepos{orders: m.orders, reviews: m.reviews}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, repos)
	})
	return err
}
