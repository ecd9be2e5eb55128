package monitor

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"eps-bot/model"
	"eps-bot/storage"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NotifyFunc delivers one formatted notification to the announcement channel.
type NotifyFunc func(text string) error

// Monitor polls the announcement feeds, deduplicates against the sqlite cache
// and pushes new items to the notifier.
type Monitor struct {
	client  *http.Client
	db      *sqlx.DB
	feeds   []model.FeedConfig
	notify  NotifyFunc
	logger  *zap.Logger
	now     func() time.Time
	greeted string // last date the morning greeting went out
}

func New(db *sqlx.DB, feeds []model.FeedConfig, notify NotifyFunc, logger *zap.Logger) *Monitor {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Monitor{
		client: &http.Client{Transport: transport, Timeout: 30 * time.Second},
		db:     db,
		feeds:  feeds,
		notify: notify,
		logger: logger,
		now:    time.Now,
	}
}

// Poll runs one monitoring pass over every feed.
func (m *Monitor) Poll() {
	if m.isMorning() {
		if err := m.notify("🕗 Good morning! Announcement and training monitoring is active. I will let you know when something new shows up. 😉"); err != nil {
			m.logger.Error("failed to send morning greeting", zap.Error(err))
		}
	}

	for _, feed := range m.feeds {
		fresh, err := m.checkFeed(feed)
		if err != nil {
			m.logger.Error("feed check failed",
				zap.String("feed", feed.Name), zap.String("url", maskURL(feed.URL)), zap.Error(err))
			continue
		}
		for _, item := range fresh {
			if err := m.notify(FormatAnnouncement(item)); err != nil {
				m.logger.Error("failed to send announcement",
					zap.String("feed", feed.Name), zap.String("id", item.ID), zap.Error(err))
				continue
			}
			m.logger.Info("announcement delivered",
				zap.String("feed", feed.Name), zap.String("id", item.ID))
			time.Sleep(2 * time.Second)
		}
	}
}

// checkFeed fetches one feed and returns only the rows not yet in the cache,
// oldest first. New rows are marked seen before returning.
func (m *Monitor) checkFeed(feed model.FeedConfig) ([]model.Announcement, error) {
	rows, err := m.fetch(feed.URL)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		m.logger.Warn("feed returned no rows", zap.String("feed", feed.Name))
		return nil, nil
	}

	seen, err := storage.SeenIDs(m.db, feed.Name)
	if err != nil {
		return nil, err
	}

	var fresh []model.Announcement
	for _, row := range rows {
		id := row.ID.String()
		if id == "" || seen[id] {
			continue
		}
		title, link := parseTitleLink(row.Judul)
		fresh = append(fresh, model.Announcement{
			Feed:     feed.Name,
			ID:       id,
			Title:    title,
			Link:     link,
			Date:     row.Tanggal,
			Creator:  row.Creator,
			Views:    row.View.String(),
			Category: row.Kategori,
		})
	}

	if len(fresh) == 0 {
		return nil, nil
	}

	if err := storage.MarkSeen(m.db, fresh); err != nil {
		return nil, err
	}

	// The API lists newest first; deliver oldest first.
	for i, j := 0, len(fresh)-1; i < j; i, j = i+1, j-1 {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	}
	m.logger.Info("new announcements found",
		zap.String("feed", feed.Name), zap.Int("count", len(fresh)))
	return fresh, nil
}

type apiResponse struct {
	Data []apiRow `json:"data"`
}

type apiRow struct {
	ID       json.Number `json:"id"`
	Judul    string      `json:"judul"`
	Tanggal  string      `json:"tanggal"`
	Creator  string      `json:"creator"`
	View     json.Number `json:"view"`
	Kategori string      `json:"kategori"`
}

const maxFeedRows = 10

func (m *Monitor) fetch(feedURL string) ([]apiRow, error) {
	var body []byte

	operation := func() error {
		resp, err := m.client.Get(feedURL)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %s", resp.Status)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}
	if len(parsed.Data) > maxFeedRows {
		parsed.Data = parsed.Data[:maxFeedRows]
	}
	return parsed.Data, nil
}

// isMorning is true once per day at 08:00 local time.
func (m *Monitor) isMorning() bool {
	now := m.now()
	if now.Format("15:04") != "08:00" {
		return false
	}
	day := now.Format("2006-01-02")
	if m.greeted == day {
		return false
	}
	m.greeted = day
	return true
}

// maskURL drops query parameters before a URL reaches the logs.
func maskURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.RawQuery = ""
	out, err := url.PathUnescape(parsed.String())
	if err != nil {
		return parsed.String()
	}
	return out
}
