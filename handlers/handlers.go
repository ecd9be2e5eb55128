package handlers

import (
	"eps-bot/bot"

	"github.com/bwmarrin/discordgo"
)

// Register wires the message handler and the slash command dispatcher onto
// the bot's session.
func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)

	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		HandleMessageCreate(s, m, b)
	})

	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if handler, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	})
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"addword": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleAddWord(s, i, b)
		},
		"mute": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleMute(s, i, b)
		},
		"unmute": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleUnmute(s, i, b)
		},
		"ban": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBan(s, i, b)
		},
		"unban": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleUnban(s, i, b)
		},
		"strikes": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleStrikes(s, i, b)
		},
		"resetstrike": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleResetStrike(s, i, b)
		},
		"resetstrikeall": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleResetStrikeAll(s, i, b)
		},
		"resetbanall": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleResetBanAll(s, i, b)
		},
		"announcements": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleAnnouncements(s, i, b)
		},
		"status": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleStatus(s, i, b)
		},
		"help": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleHelp(s, i)
		},
	}
}
