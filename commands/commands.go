package commands

import "github.com/bwmarrin/discordgo"

// Generate builds the slash command set registered for the configured guild.
func Generate() []*discordgo.ApplicationCommand {
	categoryChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Ban keyword", Value: "ban"},
		{Name: "Bad word", Value: "bad"},
		{Name: "Sensitive topic", Value: "sensitive"},
	}

	feedChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Announcements", Value: "pengumuman"},
		{Name: "Preliminary training", Value: "training"},
	}

	userOption := func(name, description string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        name,
			Description: description,
			Required:    required,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "addword",
			Description: "Add a word to a moderation keyword category (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category",
					Description: "Keyword category",
					Required:    true,
					Choices:     categoryChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "word",
					Description: "Word or phrase to add",
					Required:    true,
				},
			},
		},
		{
			Name:        "mute",
			Description: "Temporarily mute a user (admin only)",
			Options:     []*discordgo.ApplicationCommandOption{userOption("user", "User to mute", true)},
		},
		{
			Name:        "unmute",
			Description: "Lift a user's mute (admin only)",
			Options:     []*discordgo.ApplicationCommandOption{userOption("user", "User to unmute", true)},
		},
		{
			Name:        "ban",
			Description: "Ban a user (admin only)",
			Options:     []*discordgo.ApplicationCommandOption{userOption("user", "User to ban", true)},
		},
		{
			Name:        "unban",
			Description: "Unban a user (admin only)",
			Options:     []*discordgo.ApplicationCommandOption{userOption("user", "User to unban", true)},
		},
		{
			Name:        "strikes",
			Description: "Show a user's strike count",
			Options:     []*discordgo.ApplicationCommandOption{userOption("user", "User to check (defaults to you)", false)},
		},
		{
			Name:        "resetstrike",
			Description: "Reset one user's strikes (admin only)",
			Options:     []*discordgo.ApplicationCommandOption{userOption("user", "User to reset", true)},
		},
		{
			Name:        "resetstrikeall",
			Description: "Reset all strikes (owner only)",
		},
		{
			Name:        "resetbanall",
			Description: "Clear the banned user list (owner only)",
		},
		{
			Name:        "announcements",
			Description: "Show the latest cached announcements",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "feed",
					Description: "Which feed to show",
					Required:    true,
					Choices:     feedChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "How many items (default 3, max 10)",
					Required:    false,
				},
			},
		},
		{
			Name:        "status",
			Description: "Show bot and system status",
		},
		{
			Name:        "help",
			Description: "List available commands",
		},
	}
}
