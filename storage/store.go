package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"eps-bot/model"
)

// File names of the durable moderation records, each an independent JSON
// document under the data directory.
const (
	KeywordsFile  = "moderation_keywords.json"
	BannedFile    = "banned_users.json"
	PhishingFile  = "phishing_cache.json"
	WhitelistFile = "whitelist.json"
	BlacklistFile = "blacklist.json"
	ResponsesFile = "responses.json"
)

// Store reads and writes the flat-file records. Every record is loaded fully
// into memory at startup and rewritten wholesale on mutation.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// LoadKeywords returns the persisted keyword sets. A missing or malformed file
// is treated as empty sets, never an error.
func (s *Store) LoadKeywords() model.KeywordSets {
	var sets model.KeywordSets
	if err := s.readJSON(KeywordsFile, &sets); err != nil {
		return model.KeywordSets{}
	}
	return sets
}

func (s *Store) SaveKeywords(sets model.KeywordSets) error {
	return s.writeJSON(KeywordsFile, sets)
}

// LoadList reads one of the string-list records. A missing file yields an
// empty list.
func (s *Store) LoadList(name string) []string {
	var items []string
	if err := s.readJSON(name, &items); err != nil {
		return nil
	}
	return items
}

func (s *Store) SaveList(name string, items []string) error {
	if items == nil {
		items = []string{}
	}
	return s.writeJSON(name, items)
}

// LoadResponses returns the canned reply configuration, or an empty config if
// the file is absent.
func (s *Store) LoadResponses() model.ResponseConfig {
	var cfg model.ResponseConfig
	if err := s.readJSON(ResponsesFile, &cfg); err != nil {
		return model.ResponseConfig{}
	}
	return cfg
}

func (s *Store) readJSON(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
