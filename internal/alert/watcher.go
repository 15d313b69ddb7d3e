package alert

import (
	"log"
	"sync"

	"app/internal/domain/model"
)

// Notifier는 새 주문 도착 알림 사이드이펙트.
type Notifier interface {
	NewOrder(order model.Order)
}

// SoundPlayer는 알림음 재생. 실패는 로그만 남기고 무시한다.
type SoundPlayer interface {
	Play() error
}

// Watcher는 전체 주문 피드의 스냅샷을 연속 관찰해 새 주문을 감지한다.
// 스냅샷은 최신순 정렬이 전제라 스냅샷[0]이 가장 새 주문이다.
type Watcher struct {
	mu        sync.Mutex
	lastCount int
	notifier  Notifier
}

func NewWatcher(notifier Notifier) *Watcher {
	return &Watcher{notifier: notifier}
}

// Observe는 피드 갱신마다 호출된다.
//   - 첫 비어있지 않은 관찰: 백로그 알림 방지를 위해 개수만 기록
//   - 개수 증가: 최신 주문 하나만 알림 (N건 동시 도착이어도 1회)
//   - 개수는 알림 여부와 무관하게 항상 갱신
func (w *Watcher) Observe(orders []model.Order) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.lastCount == 0 && len(orders) > 0 {
		w.lastCount = len(orders)
		return
	}

	if len(orders) > w.lastCount {
		w.notifier.NewOrder(orders[0])
	}
	w.lastCount = len(orders)
}

// LogNotifier는 기본 구현: 로그 + 알림음 (best-effort).
type LogNotifier struct {
	Sound SoundPlayer
}

func (n *LogNotifier) NewOrder(order model.Order) {
	first := "주문"
	rest := 0
	if len(order.Items) > 0 {
		first = order.Items[0].Name
		rest = len(order.Items) - 1
	}
	log.Printf("새로운 주문이 도착했습니다: %s 외 %d건 (%d원) order=%s",
		first, rest, order.TotalPrice, order.ID)

	if n.Sound != nil {
		if err := n.Sound.Play(); err != nil {
			log.Printf("알림음 재생 실패: %v", err)
		}
	}
}
