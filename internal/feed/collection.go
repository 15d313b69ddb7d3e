package feed

import (
	"context"
	"sync"
)

// Source는 쿼리 하나에 대한 스냅샷 스트림을 연다.
// 변경이 있을 때마다 전체 결과 집합을 다시 밀어준다 (증분 패치 아님).
type Source[T any] interface {
	Subscribe(ctx context.Context, q Query) (<-chan []T, <-chan error, error)
}

type Snapshot[T any] struct {
	Data    []T
	Loading bool
	Err     error
}

// Collection은 백엔드 라이브 쿼리를 풀링/취소 가능한 피드로 바꾼다.
//   - nil 쿼리 → {data: [], loading: false}, 구독 없음
//   - 동일 쿼리 재설정 → no-op (재구독 폭주 방지)
//   - 새 쿼리 → 기존 구독 해제 후 새로 구독
//   - 에러 → 노출하고 loading 종료, 재시도 없음
type Collection[T any] struct {
	src Source[T]

	mu      sync.Mutex
	active  *Query
	snap    Snapshot[T]
	cancel  context.CancelFunc
	updates chan Snapshot[T]
	closed  bool

	// 구독 세대 번호. 교체/종료된 구독의 consume이 락을 잡은 뒤
	// 낡은 결과로 snap을 덮어쓰는 것을 막는다.
	gen uint64
}

func NewCollection[T any](src Source[T]) *Collection[T] {
	return &Collection[T]{
		src:     src,
		snap:    Snapshot[T]{Data: []T{}},
		updates: make(chan Snapshot[T], 1),
	}
}

// SetQuery는 피드가 따라갈 쿼리를 바꾼다. nil이면 구독을 내리고 빈 상태가 된다.
func (c *Collection[T]) SetQuery(q *Query) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if q == nil {
		c.stopLocked()
		c.active = nil
		c.snap = Snapshot[T]{Data: []T{}}
		c.publishLocked(c.snap)
		return
	}

	// 이전 쿼리와 동일하면 재구독하지 않음
	if c.active != nil && c.active.Equal(*q) {
		return
	}

	c.stopLocked()
	copied := *q
	c.active = &copied
	c.snap = Snapshot[T]{Data: []T{}, Loading: true}
	c.publishLocked(c.snap)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	dataCh, errCh, err := c.src.Subscribe(ctx, copied)
	if err != nil {
		cancel()
		c.cancel = nil
		c.snap = Snapshot[T]{Data: []T{}, Err: err}
		c.publishLocked(c.snap)
		return
	}

	go c.consume(ctx, c.gen, dataCh, errCh)
}

func (c *Collection[T]) consume(ctx context.Context, gen uint64, dataCh <-chan []T, errCh <-chan error) {
	for {
		select {
		case items, ok := <-dataCh:
			if !ok {
				return
			}
			c.mu.Lock()
			// 채널 수신과 취소 사이의 경합: 세대가 바뀌었으면 버린다
			if c.closed || c.gen != gen {
				c.mu.Unlock()
				return
			}
			if items == nil {
				items = []T{}
			}
			c.snap = Snapshot[T]{Data: items}
			c.publishLocked(c.snap)
			c.mu.Unlock()
		case err, ok := <-errCh:
			if !ok || err == nil {
				continue
			}
			c.mu.Lock()
			if c.closed || c.gen != gen {
				c.mu.Unlock()
				return
			}
			c.snap = Snapshot[T]{Data: c.snap.Data, Err: err}
			c.publishLocked(c.snap)
			c.mu.Unlock()
			return
		case <-ctx.Done():
			return
		}
	}
}

// Snapshot은 현재 상태를 반환한다 (폴링용).
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Updates는 최신 스냅샷만 남기는 푸시 채널. 느린 소비자는 중간 스냅샷을 건너뛴다.
func (c *Collection[T]) Updates() <-chan Snapshot[T] {
	return c.updates
}

// Close는 구독을 내리고 피드를 종료한다. 이후 SetQuery는 무시된다.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopLocked()
}

func (c *Collection[T]) stopLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// publishLocked는 버퍼에 남은 낡은 스냅샷을 버리고 최신 것으로 바꾼다.
func (c *Collection[T]) publishLocked(s Snapshot[T]) {
	select {
	case c.updates <- s:
	default:
		select {
		case <-c.updates:
		default:
		}
		select {
		case c.updates <- s:
		default:
		}
	}
}
