package model

import "time"

// FeedConfig describes one announcement endpoint the monitor polls.
type FeedConfig struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Config holds everything loaded from the environment at startup.
type Config struct {
	BotToken string
	GuildID  string

	OwnerID      string
	AdminUserIDs []string
	AdminRoleIDs []string

	LogChannelID      string
	AnnounceChannelID string
	CommandChannelID  string

	// Invite slugs considered "our own" and exempt from the foreign-invite rule.
	OwnInvites []string

	DataDir string
	LogDir  string

	StrikeLimit  int
	MuteDuration time.Duration

	MonitorInterval time.Duration
	Feeds           []FeedConfig

	CommandCooldown time.Duration
}
