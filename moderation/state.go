package moderation

import (
	"sync"

	"eps-bot/model"
	"eps-bot/storage"

	"go.uber.org/zap"
)

// State owns all shared mutable moderation data: the keyword sets, the banned
// user set, the phishing domain cache and the link reputation lists. It is
// created once at startup and handed to the classifier, link filter and
// moderator; there are no package-level globals.
//
// Every mutation is flushed to the store synchronously. A failed flush keeps
// the in-memory state and is logged, never fatal.
type State struct {
	mu sync.Mutex

	banKeywords     []string
	badWords        []string
	sensitiveTopics []string

	banned   map[string]bool
	phishing map[string]bool

	whitelist []string
	blacklist []string

	store  *storage.Store
	logger *zap.Logger
}

// NewState loads all durable records from the store.
func NewState(store *storage.Store, logger *zap.Logger) *State {
	sets := store.LoadKeywords()

	s := &State{
		banKeywords:     sets.BanKeywords,
		badWords:        sets.BadWords,
		sensitiveTopics: sets.SensitiveTopics,
		banned:          make(map[string]bool),
		phishing:        make(map[string]bool),
		whitelist:       store.LoadList(storage.WhitelistFile),
		blacklist:       store.LoadList(storage.BlacklistFile),
		store:           store,
		logger:          logger,
	}
	for _, id := range store.LoadList(storage.BannedFile) {
		s.banned[id] = true
	}
	for _, domain := range store.LoadList(storage.PhishingFile) {
		s.phishing[domain] = true
	}
	return s
}

// Keywords returns a copy of the requested keyword set.
func (s *State) Keywords(cat Category) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keywordSet(cat)...)
}

// AddKeyword appends a word to a category, persists the sets and reports
// whether the word was new. Words are stored as given; callers normalize.
func (s *State) AddKeyword(cat Category, word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.keywordSet(cat)
	for _, existing := range set {
		if existing == word {
			return false
		}
	}
	switch cat {
	case CategoryBanKeyword:
		s.banKeywords = append(s.banKeywords, word)
	case CategoryBadWord:
		s.badWords = append(s.badWords, word)
	case CategorySensitiveTopic:
		s.sensitiveTopics = append(s.sensitiveTopics, word)
	}
	s.persistKeywords()
	return true
}

func (s *State) keywordSet(cat Category) []string {
	switch cat {
	case CategoryBanKeyword:
		return s.banKeywords
	case CategoryBadWord:
		return s.badWords
	case CategorySensitiveTopic:
		return s.sensitiveTopics
	}
	return nil
}

func (s *State) persistKeywords() {
	sets := model.KeywordSets{
		BanKeywords:     s.banKeywords,
		BadWords:        s.badWords,
		SensitiveTopics: s.sensitiveTopics,
	}
	if err := s.store.SaveKeywords(sets); err != nil {
		s.logger.Warn("failed to persist keyword sets", zap.Error(err))
	}
}

// IsBanned reports whether a user is in the banned set.
func (s *State) IsBanned(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banned[userID]
}

// AddBanned inserts a user into the banned set and persists it.
func (s *State) AddBanned(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.banned[userID] {
		return
	}
	s.banned[userID] = true
	s.persistBanned()
}

// RemoveBanned drops a user from the banned set and persists it.
func (s *State) RemoveBanned(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.banned[userID] {
		return
	}
	delete(s.banned, userID)
	s.persistBanned()
}

// ClearBanned empties the banned set and persists the empty record.
func (s *State) ClearBanned() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banned = make(map[string]bool)
	s.persistBanned()
}

func (s *State) persistBanned() {
	ids := make([]string, 0, len(s.banned))
	for id := range s.banned {
		ids = append(ids, id)
	}
	if err := s.store.SaveList(storage.BannedFile, ids); err != nil {
		s.logger.Warn("failed to persist banned users", zap.Error(err))
	}
}

// IsCachedPhishing reports whether a normalized domain was previously judged
// malicious.
func (s *State) IsCachedPhishing(domain string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phishing[domain]
}

// CachePhishing adds a domain to the reputation cache and persists it. The
// cache only grows; duplicate additions are no-ops.
func (s *State) CachePhishing(domain string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phishing[domain] {
		return
	}
	s.phishing[domain] = true

	domains := make([]string, 0, len(s.phishing))
	for d := range s.phishing {
		domains = append(domains, d)
	}
	if err := s.store.SaveList(storage.PhishingFile, domains); err != nil {
		s.logger.Warn("failed to persist phishing cache", zap.Error(err))
	}
}

// Whitelist returns the trusted domain substrings.
func (s *State) Whitelist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.whitelist...)
}

// Blacklist returns the denied domain substrings.
func (s *State) Blacklist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.blacklist...)
}

// ReloadLists re-reads the whitelist and blacklist from the store.
func (s *State) ReloadLists() {
	whitelist := s.store.LoadList(storage.WhitelistFile)
	blacklist := s.store.LoadList(storage.BlacklistFile)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.whitelist = whitelist
	s.blacklist = blacklist
}
