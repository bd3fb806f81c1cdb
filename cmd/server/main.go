package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"matka_backend/internal/app/config"
	"matka_backend/internal/app/di"
	"matka_backend/internal/app/router"
	companyhandler "matka_backend/internal/feature/companies/transport/handler"
	companyusecase "matka_backend/internal/feature/companies/usecase"
	displayhandler "matka_backend/internal/feature/display/transport/handler"
	displayusecase "matka_backend/internal/feature/display/usecase"
	"matka_backend/internal/platform/changefeed"
	infradb "matka_backend/internal/platform/db"
	"matka_backend/internal/platform/http/handler"
	infraredis "matka_backend/internal/platform/redis"
	"matka_backend/internal/shared/ratelimiter"
	"matka_backend/internal/web"
)

// sessionPurgeInterval は期限切れフォームセッションを削除する間隔です。
const sessionPurgeInterval = time.Hour

func main() {
	// .env は任意（本番では環境変数を直接設定する）
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env")
	}
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db := infradb.OpenDB()
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	// 変更通知（プロセス内ブローカー + プロセス間リレー）
	broker := changefeed.NewBroker()
	relay, closeRelay, err := di.NewRelay(ctx, rdb, infradb.LoadConfigFromEnv(), broker)
	if err != nil {
		slog.Warn("change relay unavailable. Live updates are local to this process.", "error", err)
	}
	defer closeRelay()
	var publisher changefeed.Publisher
	if relay != nil {
		publisher = relay
		go changefeed.RunRelay(ctx, relay, cfg.RelayRetry)
	}

	// Repository
	companies := di.NewCompanyRepository(db, rdb, cfg.CompanyCacheTTL, broker, publisher)
	sessions := di.NewFormSessionRepository(rdb, db)
	go purgeExpiredSessions(ctx, sessions, sessionPurgeInterval)

	// Usecase
	formUC := companyusecase.NewFormUsecase(companies, sessions, cfg.FormSessionTTL)
	displayUC := displayusecase.NewDisplayUsecase(companies)

	// Handler
	tmpl, err := web.Templates()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}
	companyH := companyhandler.NewCompanyHandler(formUC)
	formH := companyhandler.NewFormPageHandler(formUC, cfg.SecureCookie)
	displayH := displayhandler.NewDisplayHandler(displayUC, tmpl)

	checks := []handler.Check{{Name: "db", Ping: sqlDB.PingContext}}
	if rdb != nil {
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	// ルータ生成
	writes := ratelimiter.NewRateLimiter(cfg.WriteRateLimit, time.Minute)
	r := router.NewRouter(tmpl, companyH, formH, displayH, handler.Ready(checks...), writes)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// シグナル受信でSSEストリームも終了させる
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// purgeExpiredSessions は期限切れのフォームセッションを定期的に削除します。
func purgeExpiredSessions(ctx context.Context, store di.FormSessionStore, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("failed to purge expired form sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("purged expired form sessions", "count", n)
			}
		}
	}
}
