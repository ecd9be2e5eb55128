package moderation_test

import (
	"testing"

	"eps-bot/moderation"
	"eps-bot/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFilter(t *testing.T, whitelist, blacklist []string) (*moderation.LinkFilter, *moderation.State, *storage.Store) {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SaveList(storage.WhitelistFile, whitelist))
	require.NoError(t, store.SaveList(storage.BlacklistFile, blacklist))

	state := moderation.NewState(store, zap.NewNop())
	filter := moderation.NewLinkFilter(state, []string{"discord.gg/epshelper"}, zap.NewNop())
	return filter, state, store
}

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "no links", text: "hello there", want: nil},
		{name: "http link", text: "go to http://example.com now", want: []string{"http://example.com"}},
		{name: "https link", text: "see https://example.com/page", want: []string{"https://example.com/page"}},
		{name: "bare www", text: "visit www.example.com please", want: []string{"www.example.com"}},
		{name: "telegram invite", text: "join t.me/somegroup today", want: []string{"t.me/somegroup"}},
		{name: "discord invite", text: "come to discord.gg/abcdef", want: []string{"discord.gg/abcdef"}},
		{name: "malformed https", text: "claim at https//scam.example", want: []string{"https//scam.example"}},
		{
			name: "multiple links",
			text: "http://a.example and www.b.example",
			want: []string{"http://a.example", "www.b.example"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, moderation.ExtractLinks(tt.text))
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		link string
		want string
	}{
		{name: "strips scheme", link: "http://example.com", want: "example.com"},
		{name: "strips www", link: "https://www.example.com", want: "example.com"},
		{name: "bare www", link: "www.example.com", want: "example.com"},
		{name: "lowercases", link: "HTTPS://EXAMPLE.COM", want: "example.com"},
		{name: "keeps path lowercased", link: "https://example.com/Path", want: "example.com/path"},
		{name: "trailing slash removed", link: "https://example.com/", want: "example.com"},
		{name: "invite untouched", link: "t.me/somegroup", want: "t.me/somegroup"},
		{name: "malformed https prefix", link: "https//scam.example", want: "scam.example"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, moderation.NormalizeDomain(tt.link))
		})
	}
}

func TestCensorLinks(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"check this out [LINK] totally-legit-casino.xyz",
		moderation.CensorLinks("check this out http://totally-legit-casino.xyz"))
	assert.Equal(t,
		"[LINK] example.com and [LINK] group",
		moderation.CensorLinks("www.example.com and t.me/group"))
}

func TestClassifyWhitelistPrecedence(t *testing.T) {
	t.Parallel()

	// The domain matches the blacklist too; whitelist must win.
	filter, state, _ := newTestFilter(t, []string{"youtube.com"}, []string{"youtube"})

	assert.Equal(t, moderation.ReputationSafe, filter.Classify("https://youtube.com/watch"))
	assert.False(t, state.IsCachedPhishing("youtube.com/watch"))
}

func TestClassifyBlacklistCaches(t *testing.T) {
	t.Parallel()

	filter, state, store := newTestFilter(t, nil, []string{"casino"})

	link := "http://totally-legit-casino.xyz"
	assert.Equal(t, moderation.ReputationSuspicious, filter.Classify(link))
	assert.True(t, state.IsCachedPhishing("totally-legit-casino.xyz"))

	// Second classification hits the cache and must not duplicate the entry.
	assert.Equal(t, moderation.ReputationSuspicious, filter.Classify(link))
	assert.Len(t, store.LoadList(storage.PhishingFile), 1)
}

func TestClassifyHeuristics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		link string
		want moderation.Reputation
	}{
		{name: "plain domain is safe", link: "https://example.org", want: moderation.ReputationSafe},
		{name: "xyz tld", link: "https://totally-legit.xyz", want: moderation.ReputationSuspicious},
		{name: "gambling keyword", link: "http://judi-online.example", want: moderation.ReputationSuspicious},
		{name: "shortener", link: "https://bit.ly/3xyzzy", want: moderation.ReputationSuspicious},
		{name: "foreign telegram invite", link: "t.me/freecrypto", want: moderation.ReputationSuspicious},
		{name: "foreign discord invite", link: "discord.gg/randomserver", want: moderation.ReputationSuspicious},
		{name: "own invite", link: "discord.gg/epshelper", want: moderation.ReputationSafe},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			filter, _, _ := newTestFilter(t, nil, nil)
			assert.Equal(t, tt.want, filter.Classify(tt.link))
		})
	}
}

func TestClassifyWhitelistedInvite(t *testing.T) {
	t.Parallel()

	filter, _, _ := newTestFilter(t, []string{"t.me/epsgroup"}, nil)
	assert.Equal(t, moderation.ReputationSafe, filter.Classify("t.me/epsgroup"))
}
