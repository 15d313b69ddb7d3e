package usecase

import (
	"errors"
	"fmt"

	"app/internal/domain/model"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// InvalidTransitionError는 허용되지 않는 주문 상태 전이.
// 호출자가 누구든 (UI가 아니라) 서비스 레이어에서 걸러낸다.
type InvalidTransitionError struct {
	From model.OrderStatus
	To   model.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func AsInvalidTransition(err error) (*InvalidTransitionError, bool) {
	var ie *InvalidTransitionError
	ok := errors.As(err, &ie)
	return ie, ok
}
