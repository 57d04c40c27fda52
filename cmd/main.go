package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"hrfx-gateway/config"
	"hrfx-gateway/internal/alert"
	"hrfx-gateway/internal/app/service"
	delivery "hrfx-gateway/internal/delivery/http"
	"hrfx-gateway/internal/repository/sqlite"
	"hrfx-gateway/internal/upstream"
	"hrfx-gateway/pkg/workerpool"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("config load failed: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	log := logrus.StandardLogger()

	db, err := sql.Open("sqlite3", cfg.CachePath)
	if err != nil {
		log.Fatalf("cache database open failed: %v", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		log.Fatalf("cache migration failed: %v", err)
	}

	pool := workerpool.New(4, 32)
	defer pool.Close()

	store := sqlite.NewSqliteCacheRepo(db)
	go purgeLoop(store, cfg.FXCacheTTL, log)

	notifier, err := alert.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, pool, log)
	if err != nil {
		log.WithError(err).Warn("telegram alerting disabled")
		notifier = nil
	}

	fxService := &service.FXService{
		Source: upstream.NewNRBClient(cfg.UpstreamTimeout),
		Alerts: notifier,
		Log:    log,
	}
	hrService := &service.HRService{
		Token:      cfg.NotionToken,
		DatabaseID: cfg.NotionDBID,
		Source:     upstream.NewNotionClient(cfg.NotionToken, cfg.NotionDBID, cfg.UpstreamTimeout),
		Window:     cfg.HRCacheTTL,
		Alerts:     notifier,
		Log:        log,
	}
	cacheService := &service.CacheService{
		Store: store,
		Pool:  pool,
		Now:   time.Now,
		Log:   log,
	}

	handler := &delivery.Handler{
		Cache:    cacheService,
		FX:       fxService,
		HR:       hrService,
		FXWindow: cfg.FXCacheTTL,
		HRWindow: cfg.HRCacheTTL,
		Now:      time.Now,
		Log:      log,
	}

	app := delivery.NewApp()
	handler.Register(app)

	log.Infof("listening on %s", cfg.Address)
	if err := app.Listen(cfg.Address); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// purgeLoop trims cache rows older than the longest freshness window. Expiry
// is already enforced on read; this only bounds the file size.
func purgeLoop(store *sqlite.SqliteCacheRepo, maxWindow time.Duration, log logrus.FieldLogger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := store.PurgeOlderThan(time.Now().Add(-maxWindow)); err != nil {
			log.WithError(err).Warn("cache purge failed")
		}
	}
}
