package moderation

import (
	"fmt"
	"time"

	"eps-bot/storage"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Platform is the slice of the messaging client the moderator needs. The bot
// package provides the Discord implementation; tests use a fake.
type Platform interface {
	DeleteMessage(channelID, messageID string) error
	MuteUser(channelID, userID string, duration time.Duration) error
	BanUser(channelID, userID string) error
	UnbanUser(channelID, userID string) error
	SendMessage(channelID, text string) error
}

// Message is one inbound text message, already unwrapped from the platform
// event type.
type Message struct {
	ID         string
	ChannelID  string
	UserID     string
	UserName   string
	Text       string
	FromBot    bool
	ReplyToBot bool
}

// Responder supplies an optional canned reply for clean messages addressed to
// the bot.
type Responder interface {
	Reply(text string) (string, bool)
}

// processedCacheSize bounds the redelivery dedupe cache.
const processedCacheSize = 2048

// Moderator sequences the moderation pipeline for every inbound message and
// carries out the resulting enforcement through the platform.
type Moderator struct {
	state      *State
	classifier *Classifier
	links      *LinkFilter
	ledger     *Ledger
	platform   Platform
	audit      *storage.AuditLog
	responder  Responder

	processed *lru.Cache[string, struct{}]

	ownerID      string
	admins       map[string]bool
	muteDuration time.Duration

	logger *zap.Logger
}

// Options collects the moderator's wiring.
type Options struct {
	State        *State
	Ledger       *Ledger
	Links        *LinkFilter
	Platform     Platform
	Audit        *storage.AuditLog
	Responder    Responder
	OwnerID      string
	AdminIDs     []string
	MuteDuration time.Duration
	Logger       *zap.Logger
}

func NewModerator(opts Options) (*Moderator, error) {
	processed, err := lru.New[string, struct{}](processedCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create processed-message cache: %w", err)
	}

	admins := make(map[string]bool, len(opts.AdminIDs))
	for _, id := range opts.AdminIDs {
		admins[id] = true
	}

	return &Moderator{
		state:        opts.State,
		classifier:   NewClassifier(opts.State),
		links:        opts.Links,
		ledger:       opts.Ledger,
		platform:     opts.Platform,
		audit:        opts.Audit,
		responder:    opts.Responder,
		processed:    processed,
		ownerID:      opts.OwnerID,
		admins:       admins,
		muteDuration: opts.MuteDuration,
		logger:       opts.Logger,
	}, nil
}

// IsPrivileged reports whether a user is the owner or a configured admin.
// Privileged users are exempt from enforcement but not from detection.
func (m *Moderator) IsPrivileged(userID string) bool {
	return (m.ownerID != "" && userID == m.ownerID) || m.admins[userID]
}

// ProcessMessage runs the full moderation pipeline for one message. All
// failures are downgraded to log entries; one bad message must never stop the
// message loop.
func (m *Moderator) ProcessMessage(msg Message) {
	if msg.Text == "" || msg.FromBot {
		return
	}

	// Platform redelivery guard: a message already judged is never judged
	// again, so a retried delivery cannot double-count a strike.
	if msg.ID != "" {
		if _, dup := m.processed.Get(msg.ID); dup {
			m.logger.Info("skipping redelivered message", zap.String("message_id", msg.ID))
			return
		}
		m.processed.Add(msg.ID, struct{}{})
	}

	// Messages from banned users are silently dropped.
	if m.state.IsBanned(msg.UserID) {
		m.deleteMessage(msg)
		return
	}

	if m.handleSuspiciousLinks(msg) {
		return
	}

	// Refresh the sender's strike count even when the message is clean.
	m.ledger.Prune(msg.UserID)

	verdict := m.classifier.Classify(msg.Text)
	switch verdict {
	case VerdictHardViolation:
		m.handleHardViolation(msg)
	case VerdictProfanity:
		m.handleProfanity(msg)
	case VerdictSensitive:
		m.handleSensitive(msg)
	case VerdictClean:
		if msg.ReplyToBot && m.responder != nil {
			if reply, ok := m.responder.Reply(msg.Text); ok {
				m.send(msg.ChannelID, reply)
			}
		}
	}
}

// handleSuspiciousLinks runs the link reputation filter and performs its side
// effects. Returns true when the message was handled.
func (m *Moderator) handleSuspiciousLinks(msg Message) bool {
	for _, link := range ExtractLinks(msg.Text) {
		if m.links.Classify(link) != ReputationSuspicious {
			continue
		}

		m.logger.Warn("suspicious link detected",
			zap.String("user_id", msg.UserID),
			zap.String("channel_id", msg.ChannelID),
			zap.String("link", NormalizeDomain(link)))

		m.deleteMessage(msg)
		censored := CensorLinks(msg.Text)

		if m.IsPrivileged(msg.UserID) {
			// Privileged senders are exempt from the auto-ban but still
			// detected, logged and cached.
			m.send(msg.ChannelID, fmt.Sprintf(
				"⚠️ Admin/owner %s posted a suspicious link.\n🔗 %s", msg.UserName, censored))
			return true
		}

		if err := m.platform.BanUser(msg.ChannelID, msg.UserID); err != nil {
			m.logger.Error("failed to ban user for suspicious link",
				zap.String("user_id", msg.UserID), zap.Error(err))
		}
		m.state.AddBanned(msg.UserID)
		m.send(msg.ChannelID, fmt.Sprintf(
			"🚨 Suspicious link detected. %s has been banned.\n🔗 %s", msg.UserName, censored))
		return true
	}
	return false
}

func (m *Moderator) handleHardViolation(msg Message) {
	if m.IsPrivileged(msg.UserID) {
		m.logger.Warn("hard violation from privileged user, enforcement skipped",
			zap.String("user_id", msg.UserID))
		return
	}

	// Immediate ban, no strike bookkeeping and no public notice.
	m.deleteMessage(msg)
	if err := m.platform.BanUser(msg.ChannelID, msg.UserID); err != nil {
		m.logger.Error("failed to ban user for hard violation",
			zap.String("user_id", msg.UserID), zap.Error(err))
	}
	m.state.AddBanned(msg.UserID)
	m.logger.Warn("user banned for hard violation", zap.String("user_id", msg.UserID))
}

func (m *Moderator) handleProfanity(msg Message) {
	if m.IsPrivileged(msg.UserID) {
		m.logger.Info("profanity from privileged user, strike skipped",
			zap.String("user_id", msg.UserID))
		return
	}

	m.deleteMessage(msg)
	strikes := m.ledger.Record(msg.UserID)

	if err := m.audit.RecordStrike(msg.UserID, strikes, msg.Text); err != nil {
		m.logger.Warn("failed to append strike log", zap.Error(err))
	}

	if strikes >= m.ledger.Limit() {
		if err := m.platform.BanUser(msg.ChannelID, msg.UserID); err != nil {
			m.logger.Error("failed to ban user at strike limit",
				zap.String("user_id", msg.UserID), zap.Error(err))
		}
		m.state.AddBanned(msg.UserID)
		m.send(msg.ChannelID, fmt.Sprintf(
			"🚫 %s has been banned for repeated violations.", msg.UserName))
		return
	}

	if err := m.platform.MuteUser(msg.ChannelID, msg.UserID, m.muteDuration); err != nil {
		m.logger.Error("failed to mute user",
			zap.String("user_id", msg.UserID), zap.Error(err))
	}
	m.send(msg.ChannelID, fmt.Sprintf(
		"⚠️ %s strike %d/%d. Muted temporarily.", msg.UserName, strikes, m.ledger.Limit()))
}

func (m *Moderator) handleSensitive(msg Message) {
	if m.IsPrivileged(msg.UserID) {
		m.logger.Info("sensitive topic from privileged user, mute skipped",
			zap.String("user_id", msg.UserID))
		return
	}

	if err := m.platform.MuteUser(msg.ChannelID, msg.UserID, m.muteDuration); err != nil {
		m.logger.Error("failed to mute user for sensitive topic",
			zap.String("user_id", msg.UserID), zap.Error(err))
	}
	m.send(msg.ChannelID, fmt.Sprintf(
		"⚠️ %s, sensitive topics (politics/religion/ethnicity) are not allowed here.", msg.UserName))
}

// AddKeyword adds a word to a keyword category. Reports whether it was new.
func (m *Moderator) AddKeyword(cat Category, word string) bool {
	return m.state.AddKeyword(cat, NormalizeText(word))
}

// StrikeCount returns a user's active strike count after decay pruning.
func (m *Moderator) StrikeCount(userID string) int {
	return m.ledger.Count(userID)
}

// ResetUserStrikes clears one user's strike history.
func (m *Moderator) ResetUserStrikes(userID string) {
	m.ledger.ResetUser(userID)
}

// ResetAllStrikes clears all strike state and appends an audit marker.
func (m *Moderator) ResetAllStrikes(actorID string) {
	m.ledger.ResetAll()
	if err := m.audit.RecordReset(actorID); err != nil {
		m.logger.Warn("failed to append reset marker to strike log", zap.Error(err))
	}
}

// ResetAllBans empties the banned user set.
func (m *Moderator) ResetAllBans() {
	m.state.ClearBanned()
}

// BanUser bans through the platform and records the user in the banned set.
func (m *Moderator) BanUser(channelID, userID string) error {
	if err := m.platform.BanUser(channelID, userID); err != nil {
		return err
	}
	m.state.AddBanned(userID)
	return nil
}

// UnbanUser lifts a platform ban and removes the user from the banned set.
func (m *Moderator) UnbanUser(channelID, userID string) error {
	if err := m.platform.UnbanUser(channelID, userID); err != nil {
		return err
	}
	m.state.RemoveBanned(userID)
	return nil
}

// MuteUser applies the standard timed mute.
func (m *Moderator) MuteUser(channelID, userID string) error {
	return m.platform.MuteUser(channelID, userID, m.muteDuration)
}

// UnmuteUser lifts a mute early.
func (m *Moderator) UnmuteUser(channelID, userID string) error {
	return m.platform.MuteUser(channelID, userID, 0)
}

// IsBanned reports whether the user is in the banned set.
func (m *Moderator) IsBanned(userID string) bool {
	return m.state.IsBanned(userID)
}

func (m *Moderator) deleteMessage(msg Message) {
	if err := m.platform.DeleteMessage(msg.ChannelID, msg.ID); err != nil {
		m.logger.Error("failed to delete message",
			zap.String("message_id", msg.ID), zap.Error(err))
	}
}

func (m *Moderator) send(channelID, text string) {
	if err := m.platform.SendMessage(channelID, text); err != nil {
		m.logger.Error("failed to send notice", zap.String("channel_id", channelID), zap.Error(err))
	}
}
