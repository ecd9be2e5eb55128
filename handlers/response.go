package handlers

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, logger *zap.Logger) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		logger.Error("failed to respond to interaction", zap.Error(err))
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string, logger *zap.Logger) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Error("failed to respond to interaction", zap.Error(err))
	}
}

// optionMap indexes the interaction's options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// callerID returns the invoking user's ID for both guild and DM interactions.
func callerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// callerRoles returns the invoking member's role IDs, nil in DMs.
func callerRoles(i *discordgo.InteractionCreate) []string {
	if i.Member != nil {
		return i.Member.Roles
	}
	return nil
}
