package adapters

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/usecase"
	"matka_backend/internal/platform/changefeed"
)

// mockPublisher はPublish呼び出し回数を数えるテスト用Publisherです。
type mockPublisher struct {
	calls atomic.Int32
	err   error
	ctxOK atomic.Bool
}

func (m *mockPublisher) Publish(ctx context.Context) error {
	m.calls.Add(1)
	m.ctxOK.Store(ctx.Err() == nil)
	return m.err
}

// committedRepository はコンテキストを見ずに書き込みを成功させるリポジトリです。
type committedRepository struct {
	usecase.CompanyRepository
}

func (committedRepository) Create(ctx context.Context, fields entity.CompanyFields) (string, error) {
	return "c1", nil
}

// receive は購読コールバックからの次の一覧を待ちます。
func receive(t *testing.T, ch <-chan []entity.Company) []entity.Company {
	t.Helper()
	select {
	case list := <-ch:
		return list
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscription callback")
		return nil
	}
}

func names(list []entity.Company) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Name)
	}
	return out
}

// TestLiveCompanyRepository_Subscribe は購読開始時のスナップショットと書き込み後の再通知を検証します。
func TestLiveCompanyRepository_Subscribe(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedCompany(t, db, "Kalyan", time.Now().Add(-time.Hour))
	pub := &mockPublisher{}
	repo := NewLiveCompanyRepository(NewCompanyRepository(db), changefeed.NewBroker(), pub)
	ctx := context.Background()

	updates := make(chan []entity.Company, 8)
	detach, err := repo.Subscribe(ctx, func(list []entity.Company) { updates <- list })
	require.NoError(t, err)
	defer detach()

	// 初回スナップショット
	assert.Equal(t, []string{"Kalyan"}, names(receive(t, updates)))

	_, err = repo.Create(ctx, entity.CompanyFields{Name: "Lucky Day", TicketNumber: "1", OpeningTime: "09:00", ClosingTime: "10:00"})
	require.NoError(t, err)

	// 作成日時の降順で一覧全体が置き換わる
	assert.Equal(t, []string{"Lucky Day", "Kalyan"}, names(receive(t, updates)))
	assert.Equal(t, int32(1), pub.calls.Load())
}

// TestLiveCompanyRepository_Detach は解除後にコールバックが呼ばれず、ブローカーから登録が外れることを検証します。
func TestLiveCompanyRepository_Detach(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	broker := changefeed.NewBroker()
	repo := NewLiveCompanyRepository(NewCompanyRepository(db), broker, nil)
	ctx := context.Background()

	var calls atomic.Int32
	first := make(chan struct{}, 1)
	detach, err := repo.Subscribe(ctx, func(list []entity.Company) {
		calls.Add(1)
		select {
		case first <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	<-first

	detach()
	detach() // 冪等

	assert.Zero(t, broker.Len(), "listener must be released")
	_, err = repo.Create(ctx, entity.CompanyFields{Name: "Kalyan", TicketNumber: "1", OpeningTime: "09:00", ClosingTime: "10:00"})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

// TestLiveCompanyRepository_ContextCancelReleases はコンテキスト終了で購読が解放されることを検証します。
func TestLiveCompanyRepository_ContextCancelReleases(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	broker := changefeed.NewBroker()
	repo := NewLiveCompanyRepository(NewCompanyRepository(db), broker, nil)

	ctx, cancel := context.WithCancel(context.Background())
	detach, err := repo.Subscribe(ctx, func(list []entity.Company) {})
	require.NoError(t, err)

	cancel()
	detach()

	assert.Zero(t, broker.Len())
}

// TestLiveCompanyRepository_RemoteChange はリレー経由の通知（ブローカー通知）でも再取得されることを検証します。
func TestLiveCompanyRepository_RemoteChange(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	broker := changefeed.NewBroker()
	repo := NewLiveCompanyRepository(NewCompanyRepository(db), broker, nil)

	updates := make(chan []entity.Company, 8)
	detach, err := repo.Subscribe(context.Background(), func(list []entity.Company) { updates <- list })
	require.NoError(t, err)
	defer detach()
	assert.Empty(t, receive(t, updates))

	// 別プロセスが直接書き込んだ場合を想定
	seedCompany(t, db, "Main Bazar", time.Now())
	broker.Notify()

	assert.Equal(t, []string{"Main Bazar"}, names(receive(t, updates)))
}

// TestLiveCompanyRepository_FailedWriteDoesNotNotify は書き込み失敗時に通知しないことを検証します。
func TestLiveCompanyRepository_FailedWriteDoesNotNotify(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	pub := &mockPublisher{err: errors.New("unused")}
	repo := NewLiveCompanyRepository(NewCompanyRepository(db), changefeed.NewBroker(), pub)

	err := repo.Update(context.Background(), "missing", entity.CompanyFields{Name: "Kalyan"})

	assert.Error(t, err)
	assert.Zero(t, pub.calls.Load())
}

// TestLiveCompanyRepository_PublishOutlivesRequest は書き込み後にリクエストが切断されても他プロセスへ通知することを検証します。
func TestLiveCompanyRepository_PublishOutlivesRequest(t *testing.T) {
	t.Parallel()

	pub := &mockPublisher{}
	repo := NewLiveCompanyRepository(committedRepository{}, changefeed.NewBroker(), pub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, entity.CompanyFields{Name: "Kalyan"})

	require.NoError(t, err)
	assert.Equal(t, int32(1), pub.calls.Load())
	assert.True(t, pub.ctxOK.Load(), "publish must not see the cancelled request context")
}
