package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ReviewUsecase struct {
	tx      repo.TransactionManager
	reviews repo.ReviewRepository
	clock   Clock
}

func NewReviewUsecase(tx repo.TransactionManager, reviews repo.ReviewRepository, clock Clock) *ReviewUsecase {
	return &ReviewUsecase{tx: tx, reviews: reviews, clock: clock}
}

type CreateReviewInput struct {
	OrderID  string
	UserID   string
	UserName string
	Rating   int
	Comment  string
}

// Create는 리뷰 문서 생성과 주문 미러 필드 갱신을 한 트랜잭션으로 묶는다.
func (u *ReviewUsecase) Create(ctx context.Context, storeID string, in CreateReviewInput) (string, error) {
	if in.OrderID == "" {
		return "", NewHTTPError(http.StatusBadRequest, "order_id required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid rating")
	}

	var reviewID string
	now := u.clock.Now()

	err := u.tx.WithinTx(ctx, func(txCtx context.Context, r repo.TxRepos) error {
		// 주문 존재 + 중복 리뷰 확인
		o, err := r.Orders().FindByID(txCtx, storeID, in.OrderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.Reviewed {
			return NewHTTPError(http.StatusBadRequest, "order already reviewed")
		}

		id, err := r.Reviews().Create(txCtx, model.Review{
			StoreID:  storeID,
			OrderID:  in.OrderID,
			UserID:   in.UserID,
			UserName: in.UserName,
			Rating:   in.Rating,
			Comment:  in.Comment,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		reviewID = id

		if err := r.Orders().SetReviewMirror(txCtx, storeID, in.OrderID, in.Comment, in.Rating, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return reviewID, nil
}

// Delete는 리뷰 삭제와 주문 미러 초기화를 한 트랜잭션으로 묶는다.
// userID가 비어 있지 않으면 본인 리뷰만 지울 수 있다 (어드민은 빈 값으로 호출).
func (u *ReviewUsecase) Delete(ctx context.Context, storeID, reviewID, userID string) error {
	return u.tx.WithinTx(ctx, func(txCtx context.Context, r repo.TxRepos) error {
		rv, err := r.Reviews().FindByID(txCtx, storeID, reviewID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		// 남의 리뷰는 없는 것으로 취급
		if userID != "" && rv.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if err := r.Reviews().Delete(txCtx, storeID, reviewID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().ClearReviewMirror(txCtx, storeID, rv.OrderID); err != nil {
			// 주문이 이미 삭제된 경우는 미러가 없는 것이 정상
			if !errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
}

func (u *ReviewUsecase) GetByOrder(ctx context.Context, storeID, orderID, userID string) (model.Review, error) {
	rv, err := u.reviews.FindByOrder(ctx, storeID, orderID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rv, nil
}

func (u *ReviewUsecase) List(ctx context.Context, storeID string, minRating int) ([]model.Review, error) {
	var (
		out []model.Review
		err error
	)
	if minRating > 0 {
		out, err = u.reviews.ListByMinRating(ctx, storeID, minRating)
	} else {
		out, err = u.reviews.ListAll(ctx, storeID)
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}
