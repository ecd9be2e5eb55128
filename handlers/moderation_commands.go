package handlers

import (
	"fmt"

	"eps-bot/bot"
	"eps-bot/moderation"
	"eps-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// HandleAddWord appends a word to one of the keyword categories and persists
// the sets.
func HandleAddWord(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !requireAdmin(s, i, b) {
		return
	}

	opts := optionMap(i)
	category, err := moderation.ParseCategory(opts["category"].StringValue())
	if err != nil {
		respondEphemeral(s, i, "❗ Unknown category. Use ban, bad or sensitive.", b.Logger)
		return
	}
	word := opts["word"].StringValue()

	if !b.Moderator.AddKeyword(category, word) {
		respondEphemeral(s, i, "⚠️ That word is already on the list.", b.Logger)
		return
	}
	b.Logger.Info("keyword added",
		zap.String("category", category.String()), zap.String("by", callerID(i)))
	respond(s, i, fmt.Sprintf("✅ Added to the %s list.", category), b.Logger)
}

// HandleMute applies the standard timed mute to the targeted user.
func HandleMute(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !requireAdmin(s, i, b) {
		return
	}
	target := optionMap(i)["user"].UserValue(s)
	if target.Bot {
		respondEphemeral(s, i, "🤖 The bot cannot be muted.", b.Logger)
		return
	}
	if err := b.Moderator.MuteUser(i.ChannelID, target.ID); err != nil {
		b.Logger.Error("mute command failed", zap.String("user_id", target.ID), zap.Error(err))
		respondEphemeral(s, i, "❌ Failed to mute the user.", b.Logger)
		return
	}
	respond(s, i, fmt.Sprintf("🔇 %s has been muted temporarily.", target.Mention()), b.Logger)
}

// HandleUnmute lifts a mute early.
func HandleUnmute(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !requireAdmin(s, i, b) {
		return
	}
	target := optionMap(i)["user"].UserValue(s)
	if err := b.Moderator.UnmuteUser(i.ChannelID, target.ID); err != nil {
		b.Logger.Error("unmute command failed", zap.String("user_id", target.ID), zap.Error(err))
		respondEphemeral(s, i, "❌ Failed to unmute the user.", b.Logger)
		return
	}
	respond(s, i, fmt.Sprintf("🔓 %s has been unmuted.", target.Mention()), b.Logger)
}

// HandleBan bans the targeted user and records them in the banned set.
func HandleBan(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !requireAdmin(s, i, b) {
		return
	}
	target := optionMap(i)["user"].UserValue(s)
	if target.Bot {
		respondEphemeral(s, i, "🤖 The bot cannot be banned.", b.Logger)
		return
	}
	if err := b.Moderator.BanUser(i.ChannelID, target.ID); err != nil {
		b.Logger.Error("ban command failed", zap.String("user_id", target.ID), zap.Error(err))
		respondEphemeral(s, i, "❌ Failed to ban the user.", b.Logger)
		return
	}
	respond(s, i, fmt.Sprintf("🚫 %s has been banned.", target.Mention()), b.Logger)
}

// HandleUnban lifts a ban and removes the user from the banned set.
func HandleUnban(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !requireAdmin(s, i, b) {
		return
	}
	target := optionMap(i)["user"].UserValue(s)
	if err := b.Moderator.UnbanUser(i.ChannelID, target.ID); err != nil {
		b.Logger.Error("unban command failed", zap.String("user_id", target.ID), zap.Error(err))
		respondEphemeral(s, i, "❌ Failed to unban the user.", b.Logger)
		return
	}
	respond(s, i, fmt.Sprintf("✅ %s has been unbanned.", target.Mention()), b.Logger)
}

// HandleStrikes reports a user's active strike count. Owner, admins and bots
// are outside the strike system and answered specially.
func HandleStrikes(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	target := callerID(i)
	targetMention := fmt.Sprintf("<@%s>", target)
	if opt, ok := optionMap(i)["user"]; ok {
		user := opt.UserValue(s)
		if user.Bot {
			respondEphemeral(s, i, "🤖 Bots have no strike record.", b.Logger)
			return
		}
		target = user.ID
		targetMention = user.Mention()
	}

	if b.Config.OwnerID != "" && target == b.Config.OwnerID {
		respond(s, i, "👑 The owner has no strike record. 😎", b.Logger)
		return
	}
	if utils.CheckPermission(target, nil, b.Config) >= utils.AdminPermission {
		respond(s, i, "🛡 Admins are exempt from the strike system.", b.Logger)
		return
	}

	count := b.Moderator.StrikeCount(target)
	respond(s, i, fmt.Sprintf("📊 Strikes for %s: %d/%d", targetMention, count, b.Config.StrikeLimit), b.Logger)
}

// HandleResetStrike clears one user's strike history.
func HandleResetStrike(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !requireAdmin(s, i, b) {
		return
	}
	target := optionMap(i)["user"].UserValue(s)
	b.Moderator.ResetUserStrikes(target.ID)
	respond(s, i, fmt.Sprintf("✅ Strikes for %s have been reset.", target.Mention()), b.Logger)
}

// HandleResetStrikeAll clears every strike record and appends an audit
// marker. Owner only.
func HandleResetStrikeAll(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !requireOwner(s, i, b) {
		return
	}
	b.Moderator.ResetAllStrikes(callerID(i))
	respond(s, i, "✅ All strikes have been reset.", b.Logger)
}

// HandleResetBanAll empties the banned user set. Owner only.
func HandleResetBanAll(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !requireOwner(s, i, b) {
		return
	}
	b.Moderator.ResetAllBans()
	respond(s, i, "✅ All banned users have been removed from the ban list.", b.Logger)
}

func requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) bool {
	if utils.CheckPermission(callerID(i), callerRoles(i), b.Config) < utils.AdminPermission {
		respondEphemeral(s, i, "⛔ Only admins can use this command.", b.Logger)
		return false
	}
	return true
}

func requireOwner(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) bool {
	if utils.CheckPermission(callerID(i), callerRoles(i), b.Config) < utils.OwnerPermission {
		respondEphemeral(s, i, "🚫 This command is reserved for the bot owner.", b.Logger)
		return false
	}
	return true
}
