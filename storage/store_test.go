package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eps-bot/model"
	"eps-bot/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreKeywordsRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	sets := model.KeywordSets{
		BanKeywords:     []string{"jual data"},
		BadWords:        []string{"idiot", "tolol"},
		SensitiveTopics: []string{"politik"},
	}
	require.NoError(t, store.SaveKeywords(sets))

	loaded := store.LoadKeywords()
	assert.Equal(t, sets, loaded)
}

func TestStoreMissingFilesAreEmpty(t *testing.T) {
	t.Parallel()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.LoadKeywords().BadWords)
	assert.Empty(t, store.LoadList(storage.BannedFile))
	assert.Empty(t, store.LoadResponses().Categories)
}

func TestStoreMalformedFileIsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := storage.New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.BlacklistFile), []byte("{not json"), 0o644))
	assert.Empty(t, store.LoadList(storage.BlacklistFile))
}

func TestStoreListRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SaveList(storage.WhitelistFile, []string{"kp2mi.go.id", "youtube.com"}))
	assert.Equal(t, []string{"kp2mi.go.id", "youtube.com"}, store.LoadList(storage.WhitelistFile))

	// Saving nil still writes a valid empty array.
	require.NoError(t, store.SaveList(storage.WhitelistFile, nil))
	assert.Empty(t, store.LoadList(storage.WhitelistFile))
}

func TestAuditLogAppends(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	audit, err := storage.NewAuditLog(dir)
	require.NoError(t, err)

	require.NoError(t, audit.RecordStrike("123", 1, "bad message"))
	require.NoError(t, audit.RecordStrike("123", 2, "worse message"))
	require.NoError(t, audit.RecordReset("owner"))

	data, err := os.ReadFile(audit.Path())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "user 123 received strike 1: bad message")
	assert.Contains(t, lines[1], "strike 2")
	assert.Contains(t, lines[2], "all strikes reset by owner owner")
}
