package storage

import (
	"fmt"
	"time"

	"eps-bot/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// OpenMonitorDB opens the announcement cache database and ensures the table
// exists.
func OpenMonitorDB(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to monitor database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS announcements (
	          feed TEXT NOT NULL,
	          id TEXT NOT NULL,
	          title TEXT NOT NULL,
	          link TEXT NOT NULL,
	          date TEXT NOT NULL,
	          creator TEXT NOT NULL,
	          views TEXT NOT NULL,
	          category TEXT NOT NULL,
	          seen_at INTEGER NOT NULL,
	          PRIMARY KEY (feed, id)
	      );`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create announcements table: %w", err)
	}

	return db, nil
}

// SeenIDs returns the IDs already recorded for a feed.
func SeenIDs(db *sqlx.DB, feed string) (map[string]bool, error) {
	var ids []string
	if err := db.Select(&ids, "SELECT id FROM announcements WHERE feed = ?", feed); err != nil {
		return nil, fmt.Errorf("failed to query seen announcement IDs: %w", err)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}

// MarkSeen records newly observed announcements. Re-inserting a known ID is a
// no-op.
func MarkSeen(db *sqlx.DB, items []model.Announcement) error {
	query := `INSERT OR IGNORE INTO announcements
	          (feed, id, title, link, date, creator, views, category, seen_at)
	          VALUES (:feed, :id, :title, :link, :date, :creator, :views, :category, :seen_at)`
	for i := range items {
		items[i].SeenAt = time.Now().Unix()
		if _, err := db.NamedExec(query, items[i]); err != nil {
			return fmt.Errorf("failed to insert announcement %s/%s: %w", items[i].Feed, items[i].ID, err)
		}
	}
	return nil
}

// RecentAnnouncements returns the latest cached announcements for a feed,
// newest first.
func RecentAnnouncements(db *sqlx.DB, feed string, limit int) ([]model.Announcement, error) {
	var items []model.Announcement
	err := db.Select(&items,
		"SELECT * FROM announcements WHERE feed = ? ORDER BY seen_at DESC, id DESC LIMIT ?", feed, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent announcements: %w", err)
	}
	return items, nil
}
