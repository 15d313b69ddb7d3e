package repository

import (
	"context"

	"app/internal/domain/model"
	"app/internal/feed"
	repo "app/internal/repository"
)

// StoreFeedRepository는 상점 문서를 라이브로 따라가며 FindByID를 스냅샷에서 답한다.
// 배달 웹훅의 shopId 대조가 매 요청 DB 조회 없이 최신 설정을 보게 된다.
// 아직 로딩 중이거나 추적 대상이 아닌 상점이면 뒤의 repository로 넘긴다.
type StoreFeedRepository struct {
	doc      *feed.Document[model.Store]
	fallback repo.StoreRepository
	storeID  string
}

func NewStoreFeedRepository(src feed.DocSource[model.Store], fallback repo.StoreRepository, storeID string) *StoreFeedRepository {
	d := feed.NewDocument[model.Store](src)
	d.Follow("stores", storeID)
	return &StoreFeedRepository{doc: d, fallback: fallback, storeID: storeID}
}

func (r *StoreFeedRepository) FindByID(ctx context.Context, storeID string) (model.Store, error) {
	if storeID == r.storeID {
		snap := r.doc.Snapshot()
		if snap.Err == nil && !snap.Loading && snap.Data != nil {
			return *snap.Data, nil
		}
	}
	return r.fallback.FindByID(ctx, storeID)
}

func (r *StoreFeedRepository) Close() {
	r.doc.Close()
}
