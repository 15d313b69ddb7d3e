package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type EventUsecase struct {
	events repo.EventRepository
	clock  Clock
}

func NewEventUsecase(events repo.EventRepository, clock Clock) *EventUsecase {
	return &EventUsecase{events: events, clock: clock}
}

type CreateEventInput struct {
	Title     string
	ImageURL  string
	Link      string
	Active    bool
	StartDate time.Time
	EndDate   time.Time
}

func (u *EventUsecase) Create(ctx context.Context, storeID string, in CreateEventInput) (string, error) {
	if in.Title == "" {
		return "", NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.EndDate.Before(in.StartDate) {
		return "", NewHTTPError(http.StatusBadRequest, "invalid period")
	}

	id, err := u.events.Create(ctx, model.Event{
		StoreID:   storeID,
		Title:     in.Title,
		ImageURL:  in.ImageURL,
		Link:      in.Link,
		Active:    in.Active,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	})
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *EventUsecase) Update(ctx context.Context, storeID, eventID string, upd repo.EventUpdate) error {
	err := u.events.Update(ctx, storeID, eventID, upd)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *EventUsecase) Delete(ctx context.Context, storeID, eventID string) error {
	err := u.events.Delete(ctx, storeID, eventID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *EventUsecase) ListAll(ctx context.Context, storeID string) ([]model.Event, error) {
	out, err := u.events.ListAll(ctx, storeID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}

// ListVisible은 활성 플래그가 켜져 있고 노출 기간 안인 이벤트만 반환한다.
func (u *EventUsecase) ListVisible(ctx context.Context, storeID string) ([]model.Event, error) {
	events, err := u.events.ListActive(ctx, storeID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.InPeriod(now) {
			out = append(out, e)
		}
	}
	return out, nil
}
