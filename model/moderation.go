package model

// KeywordSets is the persisted shape of the moderation keyword lists.
// Entries are stored lowercase and deduplicated.
type KeywordSets struct {
	BanKeywords     []string `json:"ban_keywords"`
	BadWords        []string `json:"bad_words"`
	SensitiveTopics []string `json:"sensitive_topics"`
}

// ResponseConfig holds the canned replies used when someone talks to the bot.
// Categories map a trigger keyword to its reply pool; Fallback is used when no
// category matches.
type ResponseConfig struct {
	Categories map[string][]string `json:"categories"`
	Fallback   []string            `json:"fallback"`
}
