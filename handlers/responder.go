package handlers

import (
	"math/rand"
	"sort"
	"strings"

	"eps-bot/model"
)

// CannedResponder picks a playful reply when someone talks to the bot and the
// message is clean. Category triggers are matched as substrings of the
// normalized text; with no match, a fallback reply is used.
type CannedResponder struct {
	categories map[string][]string
	triggers   []string // sorted for deterministic lookup order
	fallback   []string
}

func NewCannedResponder(cfg model.ResponseConfig) *CannedResponder {
	triggers := make([]string, 0, len(cfg.Categories))
	for trigger := range cfg.Categories {
		triggers = append(triggers, trigger)
	}
	sort.Strings(triggers)

	return &CannedResponder{
		categories: cfg.Categories,
		triggers:   triggers,
		fallback:   cfg.Fallback,
	}
}

// Reply implements moderation.Responder.
func (r *CannedResponder) Reply(text string) (string, bool) {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")

	for _, trigger := range r.triggers {
		if strings.Contains(normalized, trigger) {
			if pool := r.categories[trigger]; len(pool) > 0 {
				return pool[rand.Intn(len(pool))], true
			}
		}
	}

	if len(r.fallback) > 0 {
		return r.fallback[rand.Intn(len(r.fallback))], true
	}
	return "", false
}
