package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditLog is the append-only strike log. Entries are plain text lines; the
// file is never rewritten, a reset only appends a marker.
type AuditLog struct {
	mu   sync.Mutex
	path string
}

func NewAuditLog(logDir string) (*AuditLog, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}
	return &AuditLog{path: filepath.Join(logDir, "strike.log")}, nil
}

// RecordStrike appends one strike entry with the offending text.
func (a *AuditLog) RecordStrike(userID string, ordinal int, text string) error {
	return a.append(fmt.Sprintf("user %s received strike %d: %s", userID, ordinal, text))
}

// RecordReset appends a marker for a global strike reset. Historical entries
// are left untouched.
func (a *AuditLog) RecordReset(actorID string) error {
	return a.append(fmt.Sprintf("all strikes reset by owner %s", actorID))
}

func (a *AuditLog) append(line string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open strike log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s - %s\n", time.Now().UTC().Format(time.RFC3339), line); err != nil {
		return fmt.Errorf("failed to append strike log entry: %w", err)
	}
	return nil
}

// Path returns the location of the log file.
func (a *AuditLog) Path() string {
	return a.path
}
