package feed

import "reflect"

type Op string

const (
	OpEqual Op = "=="
	OpGTE   Op = ">="
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query는 라이브 구독 대상 컬렉션 쿼리의 값 표현.
// 같은 쿼리를 다시 넘겨도 재구독하지 않도록 Equal로 비교한다.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Descending bool
}

func (q Query) Equal(other Query) bool {
	if q.Collection != other.Collection ||
		q.OrderBy != other.OrderBy ||
		q.Descending != other.Descending ||
		len(q.Filters) != len(other.Filters) {
		return false
	}
	for i, f := range q.Filters {
		o := other.Filters[i]
		if f.Field != o.Field || f.Op != o.Op {
			return false
		}
		// Value는 any라 슬라이스 등 비교 불가 타입이 올 수 있다
		if !reflect.DeepEqual(f.Value, o.Value) {
			return false
		}
	}
	return true
}
