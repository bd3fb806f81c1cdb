// Package usecase はディスプレイページの表示ロジック（並べ替え・時刻整形・ライブ描画）を提供します。
package usecase

import (
	"context"
	"fmt"

	"matka_backend/internal/feature/companies/domain/entity"
)

// CompanyFeed は会社一覧の取得とライブ購読を提供します。
// 一覧は作成日時の降順で渡されます。
type CompanyFeed interface {
	FetchAll(ctx context.Context) ([]entity.Company, error)
	Subscribe(ctx context.Context, onChange func([]entity.Company)) (func(), error)
}

// DisplayUsecase はディスプレイページのユースケースです。
type DisplayUsecase struct {
	feed CompanyFeed
}

// NewDisplayUsecase は新しい DisplayUsecase を作成します。
func NewDisplayUsecase(feed CompanyFeed) *DisplayUsecase {
	return &DisplayUsecase{feed: feed}
}

// Snapshot は現時点の一覧から表示内容を作成します。
func (u *DisplayUsecase) Snapshot(ctx context.Context) (View, error) {
	list, err := u.feed.FetchAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return BuildView(StatePopulated, list), nil
}

// NewRenderer は接続ごとの Renderer を作成します。
// onRender は通知ごとに購読のゴルーチン上で呼ばれます（nil可）。
func (u *DisplayUsecase) NewRenderer(onRender func(View)) *Renderer {
	return &Renderer{feed: u.feed, onRender: onRender, state: StateLoading}
}
