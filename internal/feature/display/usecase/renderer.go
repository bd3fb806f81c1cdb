package usecase

import (
	"context"
	"fmt"
	"sync"

	"matka_backend/internal/feature/companies/domain/entity"
)

// Renderer はライブ購読の通知ごとに一覧を丸ごと置き換え、表示内容を再計算します。
// 最初の通知で Loading から Populated に遷移し、以後は Populated のままです。
// 購読エラーは状態として区別しません（直前の一覧を保持します）。
type Renderer struct {
	feed     CompanyFeed
	onRender func(View)

	mu        sync.Mutex
	state     State
	companies []entity.Company
}

// Subscribe はライブ購読を開始し、解除関数を返します。
// 解除は冪等で、ctx の終了でも解除されます。onRender のなかで解除関数を呼ばないでください。
func (r *Renderer) Subscribe(ctx context.Context) (func(), error) {
	detach, err := r.feed.Subscribe(ctx, r.apply)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	return detach, nil
}

// apply は通知された一覧で状態を置き換えます。
func (r *Renderer) apply(list []entity.Company) {
	r.mu.Lock()
	r.companies = list
	r.state = StatePopulated
	v := BuildView(r.state, r.companies)
	r.mu.Unlock()

	if r.onRender != nil {
		r.onRender(v)
	}
}

// State は現在の描画状態を返します。
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// View は現在の表示内容を返します。
func (r *Renderer) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return BuildView(r.state, r.companies)
}
