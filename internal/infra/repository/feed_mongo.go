package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/feed"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeStreamSource는 change stream을 feed.Source/feed.DocSource로 변환한다.
// 변경 이벤트마다 쿼리를 다시 실행해 전체 결과 집합을 밀어준다 (스냅샷 의미론).
type ChangeStreamSource[T any] struct {
	db *mongo.Database
}

func NewChangeStreamSource[T any](db *mongo.Database) *ChangeStreamSource[T] {
	return &ChangeStreamSource[T]{db: db}
}

func (s *ChangeStreamSource[T]) Subscribe(ctx context.Context, q feed.Query) (<-chan []T, <-chan error, error) {
	coll := s.db.Collection(q.Collection)

	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, nil, err
	}

	dataCh := make(chan []T, 1)
	errCh := make(chan error, 1)

	go func() {
		defer stream.Close(context.Background())
		defer close(dataCh)
		defer close(errCh)

		// 최초 스냅샷
		if !s.emit(ctx, coll, q, dataCh, errCh) {
			return
		}

		for stream.Next(ctx) {
			if !s.emit(ctx, coll, q, dataCh, errCh) {
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			errCh <- err
		}
	}()

	return dataCh, errCh, nil
}

func (s *ChangeStreamSource[T]) emit(ctx context.Context, coll *mongo.Collection, q feed.Query, dataCh chan<- []T, errCh chan<- error) bool {
	filter, err := filtersToBson(q.Filters)
	if err != nil {
		errCh <- err
		return false
	}

	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		if ctx.Err() == nil {
			errCh <- err
		}
		return false
	}

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		if ctx.Err() == nil {
			errCh <- err
		}
		return false
	}

	select {
	case dataCh <- items:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *ChangeStreamSource[T]) SubscribeDoc(ctx context.Context, collection, id string) (<-chan *T, <-chan error, error) {
	coll := s.db.Collection(collection)

	// 해당 문서의 변경만 따라간다
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: id}}}},
	}
	stream, err := coll.Watch(ctx, pipeline)
	if err != nil {
		return nil, nil, err
	}

	dataCh := make(chan *T, 1)
	errCh := make(chan error, 1)

	emit := func() bool {
		var doc T
		err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
		var out *T
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			out = nil // 문서 없음 → nil
		case err != nil:
			if ctx.Err() == nil {
				errCh <- err
			}
			return false
		default:
			out = &doc
		}
		select {
		case dataCh <- out:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer stream.Close(context.Background())
		defer close(dataCh)
		defer close(errCh)

		if !emit() {
			return
		}
		for stream.Next(ctx) {
			if !emit() {
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			errCh <- err
		}
	}()

	return dataCh, errCh, nil
}

func filtersToBson(filters []feed.Filter) (bson.M, error) {
	out := bson.M{}
	for _, f := range filters {
		switch f.Op {
		case feed.OpEqual:
			out[f.Field] = f.Value
		case feed.OpGTE:
			out[f.Field] = bson.M{"$gte": f.Value}
		default:
			return nil, fmt.Errorf("unsupported filter op: %s", f.Op)
		}
	}
	return out, nil
}
