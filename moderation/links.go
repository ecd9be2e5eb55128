package moderation

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/purell"
	"go.uber.org/zap"
)

// Reputation is the link filter's judgement of one extracted link.
type Reputation int

const (
	ReputationSafe Reputation = iota
	ReputationSuspicious
)

func (r Reputation) String() string {
	if r == ReputationSuspicious {
		return "suspicious"
	}
	return "safe"
}

var (
	linkPattern = regexp.MustCompile(`(https?://\S+|https//\S+|www\.\S+|t\.me/\S+|telegram\.me/\S+|discord\.gg/\S+)`)

	linkPrefixPattern = regexp.MustCompile(`(https?://|https//|www\.|t\.me/|telegram\.me/|discord\.gg/)`)

	invitePattern = regexp.MustCompile(`(t\.me/|telegram\.me/|discord\.gg/)`)

	// Fixed heuristic for gambling/adult/shortener patterns and throwaway TLDs.
	suspiciousPattern = regexp.MustCompile(`(bokep|judi|slot|phising|claim|\.xyz|\.click|bit\.ly|tinyurl|grabify|xxx)`)
)

const normalizationFlags = purell.FlagsSafe |
	purell.FlagRemoveWWW |
	purell.FlagRemoveTrailingSlash |
	purell.FlagRemoveFragment

// ExtractLinks returns every link-looking substring in the text: explicit
// http(s) URLs, bare www. hosts and messaging invite links.
func ExtractLinks(text string) []string {
	return linkPattern.FindAllString(text, -1)
}

// NormalizeDomain lowercases a link and strips the scheme and www prefix,
// yielding the form used for all reputation comparisons and cache keys.
func NormalizeDomain(link string) string {
	s := strings.ToLower(strings.TrimSpace(link))
	// Tolerate the malformed "https//" scammers use to dodge URL detection.
	s = strings.Replace(s, "https//", "https://", 1)

	withScheme := s
	if !strings.HasPrefix(withScheme, "http://") && !strings.HasPrefix(withScheme, "https://") {
		withScheme = "https://" + withScheme
	}
	if normalized, err := purell.NormalizeURLString(withScheme, normalizationFlags); err == nil {
		withScheme = normalized
	}

	s = strings.TrimPrefix(withScheme, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimPrefix(s, "www.")
}

// CensorLinks replaces every link prefix in the text with a redaction marker
// so a notice can quote the offending message without making it clickable.
func CensorLinks(text string) string {
	return linkPrefixPattern.ReplaceAllString(text, "[LINK] ")
}

// LinkFilter classifies extracted links against the whitelist, the reputation
// cache, the blacklist, the foreign-invite rule and the heuristic pattern, in
// that order. Whitelist wins over everything else.
type LinkFilter struct {
	state      *State
	ownInvites []string
	logger     *zap.Logger
}

func NewLinkFilter(state *State, ownInvites []string, logger *zap.Logger) *LinkFilter {
	normalized := make([]string, 0, len(ownInvites))
	for _, invite := range ownInvites {
		normalized = append(normalized, NormalizeDomain(invite))
	}
	return &LinkFilter{state: state, ownInvites: normalized, logger: logger}
}

// Classify judges a single raw link. Every suspicious judgement adds the
// domain to the phishing cache, which is persisted immediately; the cache
// never shrinks.
func (f *LinkFilter) Classify(link string) Reputation {
	domain := NormalizeDomain(link)

	whitelist := f.state.Whitelist()
	if matchesAnyEntry(domain, whitelist) {
		f.logger.Info("link matched whitelist", zap.String("domain", domain))
		return ReputationSafe
	}

	if f.state.IsCachedPhishing(domain) {
		f.logger.Info("link found in phishing cache", zap.String("domain", domain))
		return ReputationSuspicious
	}

	if matchesAnyEntry(domain, f.state.Blacklist()) {
		f.logger.Warn("link matched blacklist", zap.String("domain", domain))
		f.state.CachePhishing(domain)
		return ReputationSuspicious
	}

	if invitePattern.MatchString(domain) && !f.isOwnInvite(domain) {
		f.logger.Warn("foreign group invite", zap.String("domain", domain))
		f.state.CachePhishing(domain)
		return ReputationSuspicious
	}

	if suspiciousPattern.MatchString(domain) {
		f.logger.Warn("link matched suspicious pattern", zap.String("domain", domain))
		f.state.CachePhishing(domain)
		return ReputationSuspicious
	}

	f.logger.Info("link considered safe", zap.String("domain", domain))
	return ReputationSafe
}

func (f *LinkFilter) isOwnInvite(domain string) bool {
	for _, invite := range f.ownInvites {
		if invite != "" && strings.HasSuffix(domain, invite) {
			return true
		}
	}
	return false
}

// matchesAnyEntry does substring matching of normalized list entries against
// the domain, mirroring how list entries double as both full domains and
// fragments.
func matchesAnyEntry(domain string, entries []string) bool {
	for _, entry := range entries {
		normalized := NormalizeDomain(entry)
		if normalized != "" && strings.Contains(domain, normalized) {
			return true
		}
	}
	return false
}
