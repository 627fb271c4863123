package blog

import "strings"

// Slugify derives a URL-safe slug from a title: lowercase, runs of
// non-alphanumeric characters collapsed to a single "-", leading and
// trailing "-" stripped. Slugs are not guaranteed unique.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // swallow leading dashes
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
