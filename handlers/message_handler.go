package handlers

import (
	"eps-bot/bot"
	"eps-bot/moderation"

	"github.com/bwmarrin/discordgo"
)

// HandleMessageCreate funnels every inbound guild message through the
// moderation pipeline.
func HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	b.Moderator.ProcessMessage(moderation.Message{
		ID:         m.ID,
		ChannelID:  m.ChannelID,
		UserID:     m.Author.ID,
		UserName:   m.Author.Username,
		Text:       m.Content,
		FromBot:    m.Author.Bot,
		ReplyToBot: addressesBot(s, m),
	})
}

// addressesBot is true when the message replies to one of the bot's messages
// or mentions the bot.
func addressesBot(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if m.ReferencedMessage != nil && m.ReferencedMessage.Author != nil &&
		m.ReferencedMessage.Author.ID == s.State.User.ID {
		return true
	}
	for _, mention := range m.Mentions {
		if mention.ID == s.State.User.ID {
			return true
		}
	}
	return false
}
