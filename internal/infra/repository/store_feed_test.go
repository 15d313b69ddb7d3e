package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
)

type storeDocSourceFake struct {
	mu     sync.Mutex
	dataCh chan *model.Store
	target string
}

func newStoreDocSourceFake() *storeDocSourceFake {
	return &storeDocSourceFake{dataCh: make(chan *model.Store, 1)}
}

func (s *storeDocSourceFake) SubscribeDoc(ctx context.Context, collection, id string) (<-chan *model.Store, <-chan error, error) {
	s.mu.Lock()
	s.target = collection + "/" + id
	s.mu.Unlock()
	return s.dataCh, make(chan error), nil
}

func (s *storeDocSourceFake) subscribedTo() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

type storeRepoFake struct {
	mu    sync.Mutex
	store model.Store
	calls int
}

func (f *storeRepoFake) FindByID(ctx context.Context, storeID string) (model.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if storeID != f.store.ID {
		return model.Store{}, repo.ErrNotFound
	}
	return f.store, nil
}

func (f *storeRepoFake) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestStoreFeedRepository_ServesLiveSnapshot(t *testing.T) {
	src := newStoreDocSourceFake()
	fallback := &storeRepoFake{store: model.Store{ID: "s1", Name: "치킨집"}}

	r := infraRepo.NewStoreFeedRepository(src, fallback, "s1")
	defer r.Close()

	assert.Equal(t, "stores/s1", src.subscribedTo())

	src.dataCh <- &model.Store{
		ID:       "s1",
		Name:     "치킨집",
		Settings: model.StoreSettings{DeliverySettings: model.DeliverySettings{ShopID: "shop-1"}},
	}

	assert.Eventually(t, func() bool {
		s, err := r.FindByID(context.Background(), "s1")
		return err == nil && s.Settings.DeliverySettings.ShopID == "shop-1"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, fallback.callCount())

	// 설정 변경이 다음 조회에 바로 보인다
	src.dataCh <- &model.Store{
		ID:       "s1",
		Name:     "치킨집",
		Settings: model.StoreSettings{DeliverySettings: model.DeliverySettings{ShopID: "shop-2"}},
	}
	assert.Eventually(t, func() bool {
		s, err := r.FindByID(context.Background(), "s1")
		return err == nil && s.Settings.DeliverySettings.ShopID == "shop-2"
	}, time.Second, 5*time.Millisecond)
}

func TestStoreFeedRepository_FallsBackWhileLoading(t *testing.T) {
	src := newStoreDocSourceFake()
	fallback := &storeRepoFake{store: model.Store{ID: "s1", Name: "치킨집"}}

	r := infraRepo.NewStoreFeedRepository(src, fallback, "s1")
	defer r.Close()

	// 첫 스냅샷 전에는 DB 조회로 답한다
	s, err := r.FindByID(context.Background(), "s1")
	assert.NoError(t, err)
	assert.Equal(t, "치킨집", s.Name)
	assert.Equal(t, 1, fallback.callCount())
}

func TestStoreFeedRepository_FallsBackForOtherStore(t *testing.T) {
	src := newStoreDocSourceFake()
	fallback := &storeRepoFake{store: model.Store{ID: "s2", Name: "다른집"}}

	r := infraRepo.NewStoreFeedRepository(src, fallback, "s1")
	defer r.Close()

	src.dataCh <- &model.Store{ID: "s1", Name: "치킨집"}
	assert.Eventually(t, func() bool {
		s, err := r.FindByID(context.Background(), "s1")
		return err == nil && s.Name == "치킨집"
	}, time.Second, 5*time.Millisecond)

	// 추적 대상이 아닌 상점은 feed를 타지 않는다
	s, err := r.FindByID(context.Background(), "s2")
	assert.NoError(t, err)
	assert.Equal(t, "다른집", s.Name)
	assert.Equal(t, 1, fallback.callCount())
}

func TestStoreFeedRepository_MissingDocFallsBack(t *testing.T) {
	src := newStoreDocSourceFake()
	fallback := &storeRepoFake{store: model.Store{ID: "s1", Name: "치킨집"}}

	r := infraRepo.NewStoreFeedRepository(src, fallback, "s1")
	defer r.Close()

	// 문서 없음 (nil 스냅샷) → DB 조회로 넘어간다
	src.dataCh <- nil
	assert.Eventually(t, func() bool {
		s, err := r.FindByID(context.Background(), "s1")
		return err == nil && s.Name == "치킨집" && fallback.callCount() > 0
	}, time.Second, 5*time.Millisecond)
}
