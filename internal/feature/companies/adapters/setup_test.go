package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: は接続ごとに別DBになるため接続を1本に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&CompanyModel{}, &FormSessionModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedCompany は作成日時を指定して会社データを作成します。
func seedCompany(t *testing.T, db *gorm.DB, name string, createdAt time.Time) *CompanyModel {
	t.Helper()

	m := &CompanyModel{
		Name:         name,
		TicketNumber: "100",
		OpeningTime:  "10:00",
		ClosingTime:  "22:00",
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(m).Error, "failed to seed company")
	return m
}
