package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeSub은 구독 하나의 채널 쌍. 소비자가 떠난 뒤에도 보낼 수 있게 버퍼 1.
type fakeSub struct {
	dataCh chan []string
	errCh  chan error
}

// fakeSource는 구독마다 새 채널 쌍을 내주고 전부 기억한다.
type fakeSource struct {
	mu       sync.Mutex
	subs     []*fakeSub
	failOpen error
}

func newFakeSource() *fakeSource {
	return &fakeSource{}
}

func (s *fakeSource) Subscribe(ctx context.Context, q Query) (<-chan []string, <-chan error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOpen != nil {
		return nil, nil, s.failOpen
	}
	sub := &fakeSub{
		dataCh: make(chan []string, 1),
		errCh:  make(chan error, 1),
	}
	s.subs = append(s.subs, sub)
	return sub.dataCh, sub.errCh, nil
}

func (s *fakeSource) sub(i int) *fakeSub {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs[i]
}

func (s *fakeSource) subscribeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func ordersQuery(storeID string) Query {
	return Query{
		Collection: "orders",
		Filters:    []Filter{{Field: "storeId", Op: OpEqual, Value: storeID}},
		OrderBy:    "createdAt",
		Descending: true,
	}
}

func TestCollection_NilQuery(t *testing.T) {
	src := newFakeSource()
	c := NewCollection[string](src)
	defer c.Close()

	c.SetQuery(nil)

	snap := c.Snapshot()
	assert.NotNil(t, snap.Data)
	assert.Empty(t, snap.Data)
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
	assert.Equal(t, 0, src.subscribeCount())
}

func TestCollection_LoadingUntilFirstSnapshot(t *testing.T) {
	src := newFakeSource()
	c := NewCollection[string](src)
	defer c.Close()

	q := ordersQuery("s1")
	c.SetQuery(&q)

	assert.True(t, c.Snapshot().Loading)

	src.sub(0).dataCh <- []string{"a", "b"}

	assert.Eventually(t, func() bool {
		snap := c.Snapshot()
		return !snap.Loading && len(snap.Data) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestCollection_SameQueryDoesNotResubscribe(t *testing.T) {
	src := newFakeSource()
	c := NewCollection[string](src)
	defer c.Close()

	q1 := ordersQuery("s1")
	c.SetQuery(&q1)

	// 값이 같은 별도 인스턴스
	q2 := ordersQuery("s1")
	c.SetQuery(&q2)
	c.SetQuery(&q2)

	assert.Equal(t, 1, src.subscribeCount())

	// 다른 쿼리면 재구독
	q3 := ordersQuery("s2")
	c.SetQuery(&q3)
	assert.Equal(t, 2, src.subscribeCount())
}

func TestCollection_SnapshotReplaced(t *testing.T) {
	src := newFakeSource()
	c := NewCollection[string](src)
	defer c.Close()

	q := ordersQuery("s1")
	c.SetQuery(&q)

	src.sub(0).dataCh <- []string{"a", "b", "c"}
	assert.Eventually(t, func() bool {
		return len(c.Snapshot().Data) == 3
	}, time.Second, 5*time.Millisecond)

	// 다음 스냅샷은 병합이 아니라 교체
	src.sub(0).dataCh <- []string{"d"}
	assert.Eventually(t, func() bool {
		snap := c.Snapshot()
		return len(snap.Data) == 1 && snap.Data[0] == "d"
	}, time.Second, 5*time.Millisecond)
}

func TestCollection_ErrorStopsLoading(t *testing.T) {
	src := newFakeSource()
	c := NewCollection[string](src)
	defer c.Close()

	q := ordersQuery("s1")
	c.SetQuery(&q)

	wantErr := errors.New("stream broken")
	src.sub(0).errCh <- wantErr

	assert.Eventually(t, func() bool {
		snap := c.Snapshot()
		return snap.Err != nil && !snap.Loading
	}, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, c.Snapshot().Err, wantErr)
}

func TestCollection_SubscribeFailureSurfaced(t *testing.T) {
	src := newFakeSource()
	src.failOpen = errors.New("cannot open stream")

	c := NewCollection[string](src)
	defer c.Close()

	q := ordersQuery("s1")
	c.SetQuery(&q)

	snap := c.Snapshot()
	assert.Error(t, snap.Err)
	assert.False(t, snap.Loading)
}

func TestCollection_CloseIgnoresFurtherQueries(t *testing.T) {
	src := newFakeSource()
	c := NewCollection[string](src)

	c.Close()

	q := ordersQuery("s1")
	c.SetQuery(&q)
	assert.Equal(t, 0, src.subscribeCount())
}

func TestCollection_UpdatesKeepsLatest(t *testing.T) {
	src := newFakeSource()
	c := NewCollection[string](src)
	defer c.Close()

	q := ordersQuery("s1")
	c.SetQuery(&q)

	src.sub(0).dataCh <- []string{"a"}
	assert.Eventually(t, func() bool {
		return len(c.Snapshot().Data) == 1
	}, time.Second, 5*time.Millisecond)
	src.sub(0).dataCh <- []string{"a", "b"}

	// 소비가 느려도 버퍼에는 항상 최신 스냅샷이 남는다
	assert.Eventually(t, func() bool {
		select {
		case snap := <-c.Updates():
			return len(snap.Data) == 2
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

// 교체된 구독이 뒤늦게 결과를 밀어도 현재 쿼리의 스냅샷을 덮어쓰면 안 된다.
func TestCollection_SupersededSubscriptionCannotOverwrite(t *testing.T) {
	src := newFakeSource()
	c := NewCollection[string](src)
	defer c.Close()

	qa := ordersQuery("store-a")
	c.SetQuery(&qa)
	src.sub(0).dataCh <- []string{"a1"}
	assert.Eventually(t, func() bool {
		snap := c.Snapshot()
		return len(snap.Data) == 1 && snap.Data[0] == "a1"
	}, time.Second, 5*time.Millisecond)

	qb := ordersQuery("store-b")
	c.SetQuery(&qb)
	src.sub(1).dataCh <- []string{"b1"}
	assert.Eventually(t, func() bool {
		snap := c.Snapshot()
		return len(snap.Data) == 1 && snap.Data[0] == "b1"
	}, time.Second, 5*time.Millisecond)

	// 낡은 구독의 늦은 수신 (버퍼에 남아 있다가 consume이 집어갈 수 있는 경로)
	src.sub(0).dataCh <- []string{"stale-from-a"}
	src.sub(0).errCh <- errors.New("stale error")

	time.Sleep(50 * time.Millisecond)
	snap := c.Snapshot()
	assert.Equal(t, []string{"b1"}, snap.Data)
	assert.NoError(t, snap.Err)
	assert.False(t, snap.Loading)
}

// Close 후에는 어떤 구독도 더 이상 발행하지 못한다.
func TestCollection_NoPublishAfterClose(t *testing.T) {
	src := newFakeSource()
	c := NewCollection[string](src)

	q := ordersQuery("s1")
	c.SetQuery(&q)
	src.sub(0).dataCh <- []string{"a"}
	assert.Eventually(t, func() bool {
		return len(c.Snapshot().Data) == 1
	}, time.Second, 5*time.Millisecond)

	c.Close()

	src.sub(0).dataCh <- []string{"late"}
	src.sub(0).errCh <- errors.New("late error")

	time.Sleep(50 * time.Millisecond)
	snap := c.Snapshot()
	assert.Equal(t, []string{"a"}, snap.Data)
	assert.NoError(t, snap.Err)
}
