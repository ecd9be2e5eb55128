package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"eps-bot/commands"

	"go.uber.org/zap"
)

// Run opens the gateway connection, registers the slash commands and blocks
// until the process receives an interrupt.
func (b *Bot) Run() error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}

	b.Logger.Info("registering commands", zap.String("guild_id", b.Config.GuildID))
	registered, err := b.Session.ApplicationCommandBulkOverwrite(
		b.Session.State.User.ID, b.Config.GuildID, commands.Generate())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	b.RegisteredCommands = registered

	b.startMonitor()

	b.Logger.Info("bot is now running, press CTRL-C to exit")
	if b.Config.LogChannelID != "" {
		if _, err := b.Session.ChannelMessageSend(b.Config.LogChannelID, "✅ Bot started successfully."); err != nil {
			b.Logger.Warn("failed to send startup notice", zap.Error(err))
		}
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	return nil
}
