package monitor

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"eps-bot/model"
)

const siteBase = "https://www.kp2mi.go.id"

var (
	anchorPattern = regexp.MustCompile(`(?s)<a[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
)

// parseTitleLink pulls the title text and href out of the HTML anchor the
// feed embeds in its "judul" column.
func parseTitleLink(fragment string) (string, string) {
	raw := html.UnescapeString(fragment)

	match := anchorPattern.FindStringSubmatch(raw)
	if match == nil {
		title := strings.TrimSpace(tagPattern.ReplaceAllString(raw, ""))
		if title == "" {
			title = "Untitled announcement"
		}
		return title, "-"
	}

	href := strings.ReplaceAll(strings.TrimSpace(match[1]), `\/`, "/")
	if strings.HasPrefix(href, "/") {
		href = siteBase + href
	}
	if href == "" {
		href = "-"
	}

	title := strings.TrimSpace(tagPattern.ReplaceAllString(match[2], ""))
	if title == "" {
		title = "Untitled announcement"
	}
	return title, href
}

// FormatAnnouncement renders one announcement for the announce channel.
func FormatAnnouncement(a model.Announcement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 **%s**\n\n", a.Title)
	fmt.Fprintf(&b, "🆔 ID: `%s`\n", a.ID)
	fmt.Fprintf(&b, "✍️ Creator: %s\n", orDash(a.Creator))
	fmt.Fprintf(&b, "📅 Date: %s\n", orDash(a.Date))
	fmt.Fprintf(&b, "👁️ Views: %s\n", orDash(a.Views))
	fmt.Fprintf(&b, "🏷️ Category: %s\n", orDash(a.Category))
	fmt.Fprintf(&b, "🔗 Link: %s", orDash(a.Link))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
