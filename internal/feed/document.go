package feed

import (
	"context"
	"sync"
)

// DocSource는 단일 문서에 대한 라이브 스트림을 연다.
// 문서가 없으면 nil을 밀어준다.
type DocSource[T any] interface {
	SubscribeDoc(ctx context.Context, collection, id string) (<-chan *T, <-chan error, error)
}

type DocSnapshot[T any] struct {
	Data    *T
	Loading bool
	Err     error
}

// Document는 Collection의 단일 문서 변형.
type Document[T any] struct {
	src DocSource[T]

	mu         sync.Mutex
	collection string
	id         string
	snap       DocSnapshot[T]
	cancel     context.CancelFunc
	updates    chan DocSnapshot[T]
	closed     bool

	// 구독 세대 번호 (Collection과 동일한 역할)
	gen uint64
}

func NewDocument[T any](src DocSource[T]) *Document[T] {
	return &Document[T]{
		src:     src,
		updates: make(chan DocSnapshot[T], 1),
	}
}

// Follow는 구독 대상 문서를 지정한다. id가 빈 문자열이면 구독하지 않는다
// (의존 값이 아직 준비되지 않은 경우를 표현).
func (d *Document[T]) Follow(collection, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if id == "" {
		d.stopLocked()
		d.collection, d.id = "", ""
		d.snap = DocSnapshot[T]{}
		d.publishLocked(d.snap)
		return
	}

	if d.collection == collection && d.id == id {
		return
	}

	d.stopLocked()
	d.collection, d.id = collection, id
	d.snap = DocSnapshot[T]{Loading: true}
	d.publishLocked(d.snap)

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	dataCh, errCh, err := d.src.SubscribeDoc(ctx, collection, id)
	if err != nil {
		cancel()
		d.cancel = nil
		d.snap = DocSnapshot[T]{Err: err}
		d.publishLocked(d.snap)
		return
	}

	go d.consume(ctx, d.gen, dataCh, errCh)
}

func (d *Document[T]) consume(ctx context.Context, gen uint64, dataCh <-chan *T, errCh <-chan error) {
	for {
		select {
		case doc, ok := <-dataCh:
			if !ok {
				return
			}
			d.mu.Lock()
			// 채널 수신과 취소 사이의 경합: 세대가 바뀌었으면 버린다
			if d.closed || d.gen != gen {
				d.mu.Unlock()
				return
			}
			d.snap = DocSnapshot[T]{Data: doc}
			d.publishLocked(d.snap)
			d.mu.Unlock()
		case err, ok := <-errCh:
			if !ok || err == nil {
				continue
			}
			d.mu.Lock()
			if d.closed || d.gen != gen {
				d.mu.Unlock()
				return
			}
			d.snap = DocSnapshot[T]{Data: d.snap.Data, Err: err}
			d.publishLocked(d.snap)
			d.mu.Unlock()
			return
		case <-ctx.Done():
			return
		}
	}
}

func (d *Document[T]) Snapshot() DocSnapshot[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

func (d *Document[T]) Updates() <-chan DocSnapshot[T] {
	return d.updates
}

func (d *Document[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.stopLocked()
}

func (d *Document[T]) stopLocked() {
	d.gen++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Document[T]) publishLocked(s DocSnapshot[T]) {
	select {
	case d.updates <- s:
	default:
		select {
		case <-d.updates:
		default:
		}
		select {
		case d.updates <- s:
		default:
		}
	}
}
