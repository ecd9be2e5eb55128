package moderation

import (
	"sync"
	"time"
)

// DecayRules maps a strike ordinal (1-indexed) to the window after which that
// strike stops counting. An ordinal with no rule never decays; with the
// default two tiers and a limit of three, a third strike is permanent. That
// asymmetry is intentional and must not be papered over with an extra tier.
type DecayRules map[int]time.Duration

// DefaultDecayRules returns the stock two-tier decay configuration.
func DefaultDecayRules() DecayRules {
	return DecayRules{
		1: 24 * time.Hour,
		2: 48 * time.Hour,
	}
}

// Ledger tracks per-user violation timestamps. The strike count is always
// derived from the retained timestamp history, never incremented
// independently.
type Ledger struct {
	mu      sync.Mutex
	history map[string][]time.Time
	rules   DecayRules
	limit   int
	now     func() time.Time
}

func NewLedger(rules DecayRules, limit int) *Ledger {
	return &Ledger{
		history: make(map[string][]time.Time),
		rules:   rules,
		limit:   limit,
		now:     time.Now,
	}
}

// Limit returns the strike count at which a user is banned.
func (l *Ledger) Limit() int {
	return l.limit
}

// Record appends a violation at the current time and returns the active
// strike count after decay pruning.
func (l *Ledger) Record(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history[userID] = append(l.history[userID], l.now())
	return l.pruneLocked(userID)
}

// Prune drops decayed strikes from a user's history and returns the active
// count. The retained sequence replaces the stored one, so pruning is a side
// effect of reading.
func (l *Ledger) Prune(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pruneLocked(userID)
}

// Count is an alias for Prune kept for readability at query call sites.
func (l *Ledger) Count(userID string) int {
	return l.Prune(userID)
}

func (l *Ledger) pruneLocked(userID string) int {
	timestamps, ok := l.history[userID]
	if !ok {
		return 0
	}

	now := l.now()
	retained := timestamps[:0]
	for i, ts := range timestamps {
		window, hasRule := l.rules[i+1]
		if !hasRule || now.Sub(ts) < window {
			retained = append(retained, ts)
		}
	}

	if len(retained) == 0 {
		delete(l.history, userID)
		return 0
	}
	l.history[userID] = retained
	return len(retained)
}

// ResetUser clears one user's strike history.
func (l *Ledger) ResetUser(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.history, userID)
}

// ResetAll clears every user's strike history.
func (l *Ledger) ResetAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = make(map[string][]time.Time)
}

// SetClock overrides the time source. Tests only.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}
