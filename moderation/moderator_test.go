package moderation_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"eps-bot/moderation"
	"eps-bot/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePlatform records every enforcement call instead of talking to Discord.
type fakePlatform struct {
	deleted []string
	muted   []string
	banned  []string
	unbans  []string
	sent    []string

	deleteErr error
	banErr    error
}

func (p *fakePlatform) DeleteMessage(channelID, messageID string) error {
	p.deleted = append(p.deleted, messageID)
	return p.deleteErr
}

func (p *fakePlatform) MuteUser(channelID, userID string, d time.Duration) error {
	p.muted = append(p.muted, userID)
	return nil
}

func (p *fakePlatform) BanUser(channelID, userID string) error {
	if p.banErr != nil {
		return p.banErr
	}
	p.banned = append(p.banned, userID)
	return nil
}

func (p *fakePlatform) UnbanUser(channelID, userID string) error {
	p.unbans = append(p.unbans, userID)
	return nil
}

func (p *fakePlatform) SendMessage(channelID, text string) error {
	p.sent = append(p.sent, text)
	return nil
}

type fakeResponder struct {
	reply string
}

func (r *fakeResponder) Reply(string) (string, bool) {
	return r.reply, r.reply != ""
}

type testEnv struct {
	moderator *moderation.Moderator
	platform  *fakePlatform
	state     *moderation.State
	ledger    *moderation.Ledger
	store     *storage.Store
	auditPath string
}

func newTestEnv(t *testing.T, blacklist []string) *testEnv {
	t.Helper()

	dataDir := t.TempDir()
	logDir := t.TempDir()

	store, err := storage.New(dataDir)
	require.NoError(t, err)
	require.NoError(t, store.SaveList(storage.BlacklistFile, blacklist))

	audit, err := storage.NewAuditLog(logDir)
	require.NoError(t, err)

	state := moderation.NewState(store, zap.NewNop())
	state.AddKeyword(moderation.CategoryBanKeyword, "jual data")
	state.AddKeyword(moderation.CategoryBadWord, "idiot")
	state.AddKeyword(moderation.CategorySensitiveTopic, "politik")

	platform := &fakePlatform{}
	ledger := moderation.NewLedger(moderation.DefaultDecayRules(), 3)

	moderator, err := moderation.NewModerator(moderation.Options{
		State:        state,
		Ledger:       ledger,
		Links:        moderation.NewLinkFilter(state, []string{"discord.gg/epshelper"}, zap.NewNop()),
		Platform:     platform,
		Audit:        audit,
		Responder:    &fakeResponder{reply: "hello there"},
		OwnerID:      "owner",
		AdminIDs:     []string{"admin"},
		MuteDuration: 5 * time.Minute,
		Logger:       zap.NewNop(),
	})
	require.NoError(t, err)

	return &testEnv{
		moderator: moderator,
		platform:  platform,
		state:     state,
		ledger:    ledger,
		store:     store,
		auditPath: audit.Path(),
	}
}

func message(id, userID, text string) moderation.Message {
	return moderation.Message{
		ID:        id,
		ChannelID: "chan",
		UserID:    userID,
		UserName:  "someone",
		Text:      text,
	}
}

func (e *testEnv) auditContents(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.auditPath)
	if errors.Is(err, os.ErrNotExist) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}

func TestBannedUserMessagesAreDropped(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.state.AddBanned("u1")

	env.moderator.ProcessMessage(message("m1", "u1", "totally normal text"))

	assert.Equal(t, []string{"m1"}, env.platform.deleted)
	assert.Empty(t, env.platform.sent, "no notification for banned users")
	assert.Empty(t, env.platform.banned)
}

func TestSuspiciousLinkBansSender(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, []string{"casino"})

	env.moderator.ProcessMessage(message("m1", "u1", "check this out http://totally-legit-casino.xyz"))

	assert.Equal(t, []string{"m1"}, env.platform.deleted)
	assert.Equal(t, []string{"u1"}, env.platform.banned)
	assert.True(t, env.state.IsBanned("u1"))
	assert.Equal(t, 0, env.moderator.StrikeCount("u1"), "link bans bypass the strike ledger")

	require.Len(t, env.platform.sent, 1)
	assert.Contains(t, env.platform.sent[0], "[LINK] totally-legit-casino.xyz")
	assert.NotContains(t, env.platform.sent[0], "http://")
}

func TestSuspiciousLinkFromAdminWarnsInstead(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, []string{"casino"})

	env.moderator.ProcessMessage(message("m1", "admin", "look http://totally-legit-casino.xyz"))

	assert.Equal(t, []string{"m1"}, env.platform.deleted)
	assert.Empty(t, env.platform.banned, "privileged senders are not auto-banned")
	assert.False(t, env.state.IsBanned("admin"))

	require.Len(t, env.platform.sent, 1)
	assert.Contains(t, env.platform.sent[0], "Admin/owner")

	// Detection side effects still happen for privileged senders.
	assert.True(t, env.state.IsCachedPhishing("totally-legit-casino.xyz"))
}

func TestHardViolationBansWithoutStrike(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	env.moderator.ProcessMessage(message("m1", "u1", "jual data murah http://shady.example"))

	assert.Equal(t, []string{"m1"}, env.platform.deleted)
	assert.Equal(t, []string{"u1"}, env.platform.banned)
	assert.True(t, env.state.IsBanned("u1"))
	assert.Equal(t, 0, env.moderator.StrikeCount("u1"))
	assert.Empty(t, env.platform.sent)
}

func TestProfanityEscalatesToBanAtLimit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	env.moderator.ProcessMessage(message("m1", "u1", "idiot"))
	assert.Equal(t, []string{"u1"}, env.platform.muted)
	assert.Empty(t, env.platform.banned)
	require.Len(t, env.platform.sent, 1)
	assert.Contains(t, env.platform.sent[0], "strike 1/3")

	env.moderator.ProcessMessage(message("m2", "u1", "idiot again"))
	assert.Equal(t, []string{"u1", "u1"}, env.platform.muted)
	assert.Empty(t, env.platform.banned, "two strikes mean mute, not ban")
	assert.Contains(t, env.platform.sent[1], "strike 2/3")

	env.moderator.ProcessMessage(message("m3", "u1", "idiot once more"))
	assert.Equal(t, []string{"u1"}, env.platform.banned)
	assert.True(t, env.state.IsBanned("u1"))
	assert.Contains(t, env.platform.sent[2], "banned")

	audit := env.auditContents(t)
	assert.Contains(t, audit, "strike 1")
	assert.Contains(t, audit, "strike 3")
}

func TestSensitiveTopicMutesWithoutStrike(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	env.moderator.ProcessMessage(message("m1", "u1", "mari bahas politik"))

	assert.Empty(t, env.platform.deleted, "sensitive messages stay in the channel")
	assert.Equal(t, []string{"u1"}, env.platform.muted)
	assert.Equal(t, 0, env.moderator.StrikeCount("u1"))
	require.Len(t, env.platform.sent, 1)
	assert.Contains(t, env.platform.sent[0], "sensitive topics")
}

func TestPrivilegedUsersSkipStrikeEnforcement(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	env.moderator.ProcessMessage(message("m1", "admin", "idiot"))
	env.moderator.ProcessMessage(message("m2", "owner", "idiot"))

	assert.Empty(t, env.platform.deleted)
	assert.Empty(t, env.platform.muted)
	assert.Empty(t, env.platform.banned)
	assert.Equal(t, 0, env.moderator.StrikeCount("admin"))
}

func TestCleanReplyToBotGetsCannedResponse(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	msg := message("m1", "u1", "hi bot, how are you?")
	msg.ReplyToBot = true
	env.moderator.ProcessMessage(msg)

	require.Len(t, env.platform.sent, 1)
	assert.Equal(t, "hello there", env.platform.sent[0])
	assert.Empty(t, env.platform.deleted)
}

func TestRedeliveredMessageIsProcessedOnce(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	msg := message("m1", "u1", "idiot")
	env.moderator.ProcessMessage(msg)
	env.moderator.ProcessMessage(msg)

	assert.Equal(t, 1, env.moderator.StrikeCount("u1"), "redelivery must not double-count")
	assert.Equal(t, []string{"m1"}, env.platform.deleted)
}

func TestEnforcementFailureDoesNotStopPipeline(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.platform.deleteErr = errors.New("missing permissions")
	env.platform.banErr = errors.New("missing permissions")

	env.moderator.ProcessMessage(message("m1", "u1", "idiot"))

	// The strike is still recorded and the notice still goes out.
	assert.Equal(t, 1, env.moderator.StrikeCount("u1"))
	require.Len(t, env.platform.sent, 1)
	assert.Contains(t, env.platform.sent[0], "strike 1/3")
}

func TestGlobalStrikeResetWritesAuditLine(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	env.moderator.ProcessMessage(message("m1", "u1", "idiot"))
	require.Equal(t, 1, env.moderator.StrikeCount("u1"))

	env.moderator.ResetAllStrikes("owner")

	assert.Equal(t, 0, env.moderator.StrikeCount("u1"))
	lines := strings.Split(strings.TrimSpace(env.auditContents(t)), "\n")
	assert.Contains(t, lines[len(lines)-1], "all strikes reset by owner owner")
}

func TestResetAllBansClearsSet(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.state.AddBanned("u1")
	env.state.AddBanned("u2")

	env.moderator.ResetAllBans()

	assert.False(t, env.state.IsBanned("u1"))
	assert.False(t, env.state.IsBanned("u2"))
	assert.Empty(t, env.store.LoadList(storage.BannedFile))
}

func TestUnbanRemovesFromBannedSet(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	require.NoError(t, env.moderator.BanUser("chan", "u1"))
	assert.True(t, env.state.IsBanned("u1"))

	require.NoError(t, env.moderator.UnbanUser("chan", "u1"))
	assert.False(t, env.state.IsBanned("u1"))
	assert.Equal(t, []string{"u1"}, env.platform.unbans)
}
