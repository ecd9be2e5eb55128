package handlers

import (
	"fmt"
	"strings"

	"eps-bot/bot"
	"eps-bot/monitor"
	"eps-bot/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	defaultAnnouncementCount = 3
	maxAnnouncementCount     = 10
)

// HandleAnnouncements shows the latest cached announcements for a feed. The
// shared cooldown keeps the public info commands from being spammed.
func HandleAnnouncements(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !guardChannel(s, i, b) {
		return
	}
	if !b.Cooldown.Allow() {
		respondEphemeral(s, i, fmt.Sprintf(
			"⏳ Please wait %.0f seconds before using this command again.",
			b.Cooldown.Remaining().Seconds()), b.Logger)
		return
	}

	opts := optionMap(i)
	feed := opts["feed"].StringValue()
	count := defaultAnnouncementCount
	if opt, ok := opts["count"]; ok {
		count = int(opt.IntValue())
		if count < 1 {
			count = 1
		}
		if count > maxAnnouncementCount {
			count = maxAnnouncementCount
		}
	}

	items, err := storage.RecentAnnouncements(b.DB, feed, count)
	if err != nil {
		b.Logger.Error("failed to read announcement cache", zap.String("feed", feed), zap.Error(err))
		respondEphemeral(s, i, "❌ Could not read the announcement cache.", b.Logger)
		return
	}
	if len(items) == 0 {
		respond(s, i, "ℹ️ No cached announcements for that feed yet.", b.Logger)
		return
	}

	var blocks []string
	for _, item := range items {
		blocks = append(blocks, monitor.FormatAnnouncement(item))
	}
	respond(s, i, strings.Join(blocks, "\n\n———\n\n"), b.Logger)
}

// HandleHelp lists the command surface.
func HandleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	help := strings.Join([]string{
		"**Available commands**",
		"• `/announcements <feed> [count]` — latest cached announcements",
		"• `/strikes [user]` — show a strike count",
		"• `/status` — bot and system status",
		"",
		"**Admin**",
		"• `/addword <category> <word>` — extend the keyword lists",
		"• `/mute`, `/unmute`, `/ban`, `/unban` — manual enforcement",
		"• `/resetstrike <user>` — reset one user's strikes",
		"",
		"**Owner**",
		"• `/resetstrikeall` — reset every strike record",
		"• `/resetbanall` — clear the banned user list",
	}, "\n")

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: help,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// guardChannel restricts the public info commands to the configured command
// channel. DMs are allowed for the owner only.
func guardChannel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) bool {
	if i.Member == nil {
		if callerID(i) == b.Config.OwnerID {
			return true
		}
		respondEphemeral(s, i, "❌ This command can only be used inside the server.", b.Logger)
		return false
	}
	if b.Config.CommandChannelID == "" || i.ChannelID == b.Config.CommandChannelID {
		return true
	}
	respondEphemeral(s, i, fmt.Sprintf(
		"⚠️ Please use this command in <#%s>.", b.Config.CommandChannelID), b.Logger)
	return false
}
