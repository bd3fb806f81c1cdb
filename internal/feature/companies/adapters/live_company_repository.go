package adapters

import (
	"context"
	"log/slog"
	"sync"

	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/usecase"
	"matka_backend/internal/platform/changefeed"
)

// LiveCompanyRepository decorates a CompanyRepository with change
// subscriptions. Every successful write signals the local broker and, when a
// publisher is configured, other processes.
type LiveCompanyRepository struct {
	inner     usecase.CompanyRepository
	broker    *changefeed.Broker
	publisher changefeed.Publisher
}

var _ usecase.CompanyRepository = (*LiveCompanyRepository)(nil)

// NewLiveCompanyRepository wraps inner. publisher may be nil for a single-process deployment.
func NewLiveCompanyRepository(inner usecase.CompanyRepository, broker *changefeed.Broker, publisher changefeed.Publisher) *LiveCompanyRepository {
	return &LiveCompanyRepository{inner: inner, broker: broker, publisher: publisher}
}

// Create inserts a company and announces the change.
func (r *LiveCompanyRepository) Create(ctx context.Context, fields entity.CompanyFields) (string, error) {
	id, err := r.inner.Create(ctx, fields)
	if err != nil {
		return "", err
	}
	r.changed(ctx)
	return id, nil
}

// Update updates a company and announces the change.
func (r *LiveCompanyRepository) Update(ctx context.Context, id string, fields entity.CompanyFields) error {
	if err := r.inner.Update(ctx, id, fields); err != nil {
		return err
	}
	r.changed(ctx)
	return nil
}

// Delete removes a company and announces the change.
func (r *LiveCompanyRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.changed(ctx)
	return nil
}

// FindByID delegates to the wrapped repository.
func (r *LiveCompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.inner.FindByID(ctx, id)
}

// FetchAll delegates to the wrapped repository.
func (r *LiveCompanyRepository) FetchAll(ctx context.Context) ([]entity.Company, error) {
	return r.inner.FetchAll(ctx)
}

// Subscribe calls onChange with the full list (CreatedAt descending) once
// right away and again after every change, until ctx ends or the returned
// detach function is called.
//
// onChange runs on a goroutine owned by the subscription; calls are never
// concurrent, and a burst of changes is coalesced into one refetch. Detach
// waits for an in-progress onChange to return, so it must not be called from
// inside onChange. A failed refetch is logged and skipped; the subscriber
// keeps its previous list.
func (r *LiveCompanyRepository) Subscribe(ctx context.Context, onChange func([]entity.Company)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	wake := make(chan struct{}, 1)
	wake <- struct{}{} // initial snapshot
	unregister := r.broker.Register(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer unregister()
		for {
			select {
			case <-ctx.Done():
				return
			case <-wake:
			}

			list, err := r.inner.FetchAll(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("subscription refetch failed", "error", err)
				continue
			}
			onChange(list)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

// changed signals local subscribers and, best effort, other processes.
// Publish ignores cancellation of ctx; the write is already committed.
func (r *LiveCompanyRepository) changed(ctx context.Context) {
	r.broker.Notify()
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(context.WithoutCancel(ctx)); err != nil {
		slog.Warn("failed to publish company change", "error", err)
	}
}
