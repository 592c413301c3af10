package extract

import "strings"

// senderAliases folds well-known issuer spellings onto one canonical
// key so spend summaries aggregate correctly.
var senderAliases = map[string]string{
	"anthropic_pbc":      "anthropic",
	"google_workspace":   "google",
	"loom_inc":           "loom",
	"apify_technologies": "apify",
}

// NormalizeSender canonicalizes an extracted sender for use as a
// directory name and aggregation key: lower-cased, runs of
// non-alphanumerics collapsed to single underscores, known aliases
// folded. An absent sender becomes "unknown".
func NormalizeSender(sender string) string {
	s := strings.ToLower(strings.TrimSpace(sender))
	if s == "" {
		return "unknown"
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	s = strings.Trim(b.String(), "_")
	if s == "" {
		return "unknown"
	}
	if canonical, ok := senderAliases[s]; ok {
		return canonical
	}
	return s
}
