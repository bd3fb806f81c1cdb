package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	companyadapters "matka_backend/internal/feature/companies/adapters"
	"matka_backend/internal/platform/cache"
	"matka_backend/internal/platform/changefeed"
)

// NewCompanyRepository builds the company store: database, wrapped with the
// Redis list cache (bypassed when rdb is nil), wrapped with change
// notifications. publisher may be nil.
func NewCompanyRepository(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration, broker *changefeed.Broker, publisher changefeed.Publisher) *companyadapters.LiveCompanyRepository {
	base := companyadapters.NewCompanyRepository(db)
	cached := cache.NewCachingCompanyRepository(rdb, cacheTTL, base, "companies")
	return companyadapters.NewLiveCompanyRepository(cached, broker, publisher)
}
