// Command seed は YAML ファイルの会社一覧をフォームと同じ検証・上限チェックで登録します。
//
//	go run ./cmd/seed -file companies.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"matka_backend/internal/app/config"
	"matka_backend/internal/app/di"
	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/usecase"
	"matka_backend/internal/platform/changefeed"
	infradb "matka_backend/internal/platform/db"
	infraredis "matka_backend/internal/platform/redis"
)

// seedCompany は YAML の1社分です。
type seedCompany struct {
	Name         string `yaml:"name"`
	TicketNumber string `yaml:"ticketNumber"`
	OpeningTime  string `yaml:"openingTime"`
	ClosingTime  string `yaml:"closingTime"`
	JodiInfo     string `yaml:"jodiInfo"`
	PanelInfo    string `yaml:"panelInfo"`
}

type seedFile struct {
	Companies []seedCompany `yaml:"companies"`
}

// loadSeed は YAML を読み込み、フォーム入力に変換します。
func loadSeed(r io.Reader) ([]entity.CompanyFields, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	out := make([]entity.CompanyFields, 0, len(f.Companies))
	for _, c := range f.Companies {
		out = append(out, entity.CompanyFields{
			Name:         c.Name,
			TicketNumber: c.TicketNumber,
			OpeningTime:  c.OpeningTime,
			ClosingTime:  c.ClosingTime,
			JodiInfo:     c.JodiInfo,
			PanelInfo:    c.PanelInfo,
		})
	}
	return out, nil
}

// companySaver はフォームの保存処理です。
type companySaver interface {
	Save(ctx context.Context, fields entity.CompanyFields, editingID string) (string, error)
}

// seedAll は各社を順に登録します。失敗した会社はログに出して続行し、登録件数を返します。
func seedAll(ctx context.Context, saver companySaver, companies []entity.CompanyFields) int {
	saved := 0
	for _, f := range companies {
		id, err := saver.Save(ctx, f, "")
		if err != nil {
			log.Printf("skip %q: %v", f.Name, err)
			continue
		}
		log.Printf("added %q (%s)", f.Name, id)
		saved++
	}
	return saved
}

// newSeedUsecase は1つのブローカーをリレーとリポジトリで共有してフォームの保存処理を組み立てます。
// リレーがあれば登録のたびに稼働中サーバーへ通知されます。返す関数でリレーを閉じます。
func newSeedUsecase(ctx context.Context, db *gorm.DB, rdb *redisv9.Client, dbCfg infradb.Config, cfg config.Config) (*usecase.FormUsecase, *changefeed.Broker, func()) {
	broker := changefeed.NewBroker()

	var publisher changefeed.Publisher
	relay, closeRelay, err := di.NewRelay(ctx, rdb, dbCfg, broker)
	if err != nil {
		log.Println("[WARN] change relay unavailable; running servers refresh on their next change:", err)
	}
	if relay != nil {
		publisher = relay
	}

	repo := di.NewCompanyRepository(db, rdb, cfg.CompanyCacheTTL, broker, publisher)
	return usecase.NewFormUsecase(repo, di.NewFormSessionRepository(rdb, db), cfg.FormSessionTTL), broker, closeRelay
}

func main() {
	path := flag.String("file", "companies.yaml", "seed file (YAML)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadConfig()

	file, err := os.Open(*path)
	if err != nil {
		log.Fatal("failed to open seed file:", err)
	}
	companies, err := loadSeed(file)
	_ = file.Close()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db := infradb.OpenDB()

	// Redisがあればキャッシュ無効化と稼働中サーバーへの通知に使う
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err == nil {
		rdb = tmp
		defer func() { _ = rdb.Close() }()
	}
	uc, _, closeRelay := newSeedUsecase(ctx, db, rdb, infradb.LoadConfigFromEnv(), cfg)
	defer closeRelay()

	saved := seedAll(ctx, uc, companies)
	log.Printf("seed ok: %d of %d companies added", saved, len(companies))
}
