package bot

import (
	"fmt"

	"eps-bot/model"
	"eps-bot/moderation"
	"eps-bot/monitor"
	"eps-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Bot ties the Discord session to the moderation core and the announcement
// monitor.
type Bot struct {
	Session            *discordgo.Session
	Config             *model.Config
	Moderator          *moderation.Moderator
	Monitor            *monitor.Monitor
	DB                 *sqlx.DB
	Cooldown           *utils.Cooldown
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	RegisteredCommands []*discordgo.ApplicationCommand
	Logger             *zap.Logger

	done chan struct{}
}

func New(cfg *model.Config, db *sqlx.DB, logger *zap.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	return &Bot{
		Session:  dg,
		Config:   cfg,
		DB:       db,
		Cooldown: utils.NewCooldown(cfg.CommandCooldown),
		Logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Announce posts a message to the configured announcement channel.
func (b *Bot) Announce(text string) error {
	if b.Config.AnnounceChannelID == "" {
		b.Logger.Warn("announce channel not configured, dropping notification")
		return nil
	}
	_, err := b.Session.ChannelMessageSend(b.Config.AnnounceChannelID, text)
	return err
}

// Done exposes the shutdown signal to background workers.
func (b *Bot) Done() <-chan struct{} {
	return b.done
}

func (b *Bot) Close() {
	b.Logger.Info("gracefully shutting down")
	close(b.done)
	if err := b.Session.Close(); err != nil {
		b.Logger.Error("failed to close discord session", zap.Error(err))
	}
	if b.DB != nil {
		if err := b.DB.Close(); err != nil {
			b.Logger.Error("failed to close monitor database", zap.Error(err))
		}
	}
}
