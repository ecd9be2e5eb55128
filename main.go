package main

import (
	"log"
	"path/filepath"

	"eps-bot/bot"
	"eps-bot/config"
	"eps-bot/handlers"
	"eps-bot/logger"
	"eps-bot/moderation"
	"eps-bot/monitor"
	"eps-bot/storage"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogDir)
	if err != nil {
		// The console core still works; carry on without the file sink.
		zlog.Warn("file logging unavailable", zap.Error(err))
	}
	defer zlog.Sync()

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		zlog.Fatal("failed to initialize data store", zap.Error(err))
	}
	audit, err := storage.NewAuditLog(cfg.LogDir)
	if err != nil {
		zlog.Fatal("failed to initialize strike log", zap.Error(err))
	}
	db, err := storage.OpenMonitorDB(filepath.Join(cfg.DataDir, "monitor.db"))
	if err != nil {
		zlog.Fatal("failed to open monitor database", zap.Error(err))
	}

	b, err := bot.New(cfg, db, zlog)
	if err != nil {
		zlog.Fatal("failed to create bot", zap.Error(err))
	}

	state := moderation.NewState(store, zlog)
	links := moderation.NewLinkFilter(state, cfg.OwnInvites, zlog)
	ledger := moderation.NewLedger(moderation.DefaultDecayRules(), cfg.StrikeLimit)

	b.Moderator, err = moderation.NewModerator(moderation.Options{
		State:        state,
		Ledger:       ledger,
		Links:        links,
		Platform:     bot.NewPlatform(b.Session, cfg.GuildID),
		Audit:        audit,
		Responder:    handlers.NewCannedResponder(store.LoadResponses()),
		OwnerID:      cfg.OwnerID,
		AdminIDs:     cfg.AdminUserIDs,
		MuteDuration: cfg.MuteDuration,
		Logger:       zlog,
	})
	if err != nil {
		zlog.Fatal("failed to create moderator", zap.Error(err))
	}

	b.Monitor = monitor.New(db, cfg.Feeds, b.Announce, zlog)

	handlers.Register(b)
	defer b.Close()

	if err := b.Run(); err != nil {
		zlog.Fatal("bot stopped with error", zap.Error(err))
	}
}
