package bot

import (
	"fmt"
	"time"

	"eps-bot/moderation"

	"github.com/bwmarrin/discordgo"
)

// discordPlatform adapts the discordgo session to the moderation.Platform
// contract. Mutes map to member timeouts; bans are guild-wide.
type discordPlatform struct {
	session *discordgo.Session
	guildID string
}

// NewPlatform wraps a session for the moderator.
func NewPlatform(session *discordgo.Session, guildID string) moderation.Platform {
	return &discordPlatform{session: session, guildID: guildID}
}

func (p *discordPlatform) DeleteMessage(channelID, messageID string) error {
	if err := p.session.ChannelMessageDelete(channelID, messageID); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	return nil
}

func (p *discordPlatform) MuteUser(channelID, userID string, duration time.Duration) error {
	var until *time.Time
	if duration > 0 {
		t := time.Now().Add(duration)
		until = &t
	}
	if err := p.session.GuildMemberTimeout(p.guildID, userID, until); err != nil {
		return fmt.Errorf("failed to timeout user %s: %w", userID, err)
	}
	return nil
}

func (p *discordPlatform) BanUser(channelID, userID string) error {
	if err := p.session.GuildBanCreateWithReason(p.guildID, userID, "automatic moderation ban", 0); err != nil {
		return fmt.Errorf("failed to ban user %s: %w", userID, err)
	}
	return nil
}

func (p *discordPlatform) UnbanUser(channelID, userID string) error {
	if err := p.session.GuildBanDelete(p.guildID, userID); err != nil {
		return fmt.Errorf("failed to unban user %s: %w", userID, err)
	}
	return nil
}

func (p *discordPlatform) SendMessage(channelID, text string) error {
	if _, err := p.session.ChannelMessageSend(channelID, text); err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return nil
}
