package moderation_test

import (
	"testing"
	"time"

	"eps-bot/moderation"

	"github.com/stretchr/testify/assert"
)

func TestLedgerRecordAndCount(t *testing.T) {
	t.Parallel()

	ledger := moderation.NewLedger(moderation.DefaultDecayRules(), 3)

	assert.Equal(t, 0, ledger.Count("u1"))
	assert.Equal(t, 1, ledger.Record("u1"))
	assert.Equal(t, 2, ledger.Record("u1"))
	assert.Equal(t, 3, ledger.Record("u1"))
	assert.Equal(t, 3, ledger.Count("u1"))

	// Other users are unaffected.
	assert.Equal(t, 0, ledger.Count("u2"))
}

func TestLedgerFirstStrikeDecays(t *testing.T) {
	t.Parallel()

	ledger := moderation.NewLedger(moderation.DefaultDecayRules(), 3)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ledger.SetClock(func() time.Time { return now })

	ledger.Record("u1")

	now = now.Add(23 * time.Hour)
	assert.Equal(t, 1, ledger.Count("u1"), "strike still active inside the window")

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 0, ledger.Count("u1"), "strike expired after the 1-day window")
}

func TestLedgerDecayIgnoresLaterStrikes(t *testing.T) {
	t.Parallel()

	ledger := moderation.NewLedger(moderation.DefaultDecayRules(), 3)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ledger.SetClock(func() time.Time { return now })

	ledger.Record("u1")
	now = now.Add(20 * time.Hour)
	ledger.Record("u1")

	// 25h after the first strike: its 1-day window elapsed regardless of the
	// second strike's timestamp. The survivor is re-ranked as ordinal 1.
	now = now.Add(5 * time.Hour)
	assert.Equal(t, 1, ledger.Count("u1"))
}

func TestLedgerThirdStrikeNeverDecays(t *testing.T) {
	t.Parallel()

	// Only two decay tiers exist; an ordinal without a rule is permanent.
	ledger := moderation.NewLedger(moderation.DefaultDecayRules(), 3)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ledger.SetClock(func() time.Time { return now })

	ledger.Record("u1")
	ledger.Record("u1")
	ledger.Record("u1")

	now = now.Add(365 * 24 * time.Hour)
	assert.Equal(t, 1, ledger.Count("u1"), "third strike survives indefinitely")
}

func TestLedgerResets(t *testing.T) {
	t.Parallel()

	ledger := moderation.NewLedger(moderation.DefaultDecayRules(), 3)
	ledger.Record("u1")
	ledger.Record("u2")

	ledger.ResetUser("u1")
	assert.Equal(t, 0, ledger.Count("u1"))
	assert.Equal(t, 1, ledger.Count("u2"))

	ledger.ResetAll()
	assert.Equal(t, 0, ledger.Count("u2"))
}

func TestLedgerNoRulesMeansPermanentStrikes(t *testing.T) {
	t.Parallel()

	ledger := moderation.NewLedger(moderation.DecayRules{}, 3)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ledger.SetClock(func() time.Time { return now })

	ledger.Record("u1")
	now = now.Add(1000 * time.Hour)
	assert.Equal(t, 1, ledger.Count("u1"))
}
