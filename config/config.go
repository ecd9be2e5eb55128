package config

import (
	"fmt"
	"strings"
	"time"

	"eps-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAnnounceURL = "https://www.kp2mi.go.id/gtog-data/korea/Pengumuman?start=0&length=10"
	defaultTrainingURL = "https://www.kp2mi.go.id/gtog-data/korea/Preliminary%20Training%20dan%20Info?start=0&length=10"
)

// Load reads the configuration from the environment. A .env file is honored
// when present but not required.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		// Not an error: production deployments set real environment variables.
		fmt.Println("Info: .env file not found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("LOG_DIR", "logs")
	v.SetDefault("STRIKE_LIMIT", 3)
	v.SetDefault("MUTE_DURATION_SECONDS", 300)
	v.SetDefault("MONITOR_INTERVAL_SECONDS", 60)
	v.SetDefault("COMMAND_COOLDOWN_SECONDS", 10)
	v.SetDefault("MONITOR_ANNOUNCE_URL", defaultAnnounceURL)
	v.SetDefault("MONITOR_TRAINING_URL", defaultTrainingURL)

	token := v.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable not set")
	}

	guildID := v.GetString("GUILD_ID")
	if guildID == "" {
		return nil, fmt.Errorf("GUILD_ID environment variable not set")
	}

	ownerID := v.GetString("OWNER_ID")
	if ownerID == "" {
		fmt.Println("Warning: OWNER_ID not set, owner-only commands will be unusable")
	}

	cfg := &model.Config{
		BotToken:          token,
		GuildID:           guildID,
		OwnerID:           ownerID,
		AdminUserIDs:      splitList(v.GetString("ADMIN_USER_IDS")),
		AdminRoleIDs:      splitList(v.GetString("ADMIN_ROLE_IDS")),
		LogChannelID:      v.GetString("LOG_CHANNEL_ID"),
		AnnounceChannelID: v.GetString("ANNOUNCE_CHANNEL_ID"),
		CommandChannelID:  v.GetString("COMMAND_CHANNEL_ID"),
		OwnInvites:        splitList(v.GetString("OWN_INVITES")),
		DataDir:           v.GetString("DATA_DIR"),
		LogDir:            v.GetString("LOG_DIR"),
		StrikeLimit:       v.GetInt("STRIKE_LIMIT"),
		MuteDuration:      time.Duration(v.GetInt("MUTE_DURATION_SECONDS")) * time.Second,
		MonitorInterval:   time.Duration(v.GetInt("MONITOR_INTERVAL_SECONDS")) * time.Second,
		CommandCooldown:   time.Duration(v.GetInt("COMMAND_COOLDOWN_SECONDS")) * time.Second,
		Feeds: []model.FeedConfig{
			{Name: "pengumuman", URL: v.GetString("MONITOR_ANNOUNCE_URL")},
			{Name: "training", URL: v.GetString("MONITOR_TRAINING_URL")},
		},
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
