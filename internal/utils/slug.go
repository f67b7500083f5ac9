package utils

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxSlugLen caps generated slugs; long titles truncate rather than fail.
const maxSlugLen = 60

// Slugify converts an arbitrary title into a URL-safe slug: lowercase,
// diacritics folded away (NFKD), every run of non-alphanumerics collapsed
// to a single dash, leading/trailing dashes trimmed, capped at 60 bytes.
// The result may be empty when the input carries no usable characters.
func Slugify(s string) string {
	s = strings.ToLower(s)
	// NFKD splits accented letters into base letter + combining marks,
	// which are then dropped.
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	lastDash := true // suppress a leading dash
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case unicode.Is(unicode.Mn, r):
			// combining mark from the decomposition; skip
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if len(out) > maxSlugLen {
		out = strings.TrimRight(out[:maxSlugLen], "-")
	}
	return out
}

// EventSlug synthesizes the default slug for an event created from a
// template: the slugified title suffixed with the start date.  Explicit
// slugs bypass this and go through Slugify directly.
func EventSlug(title string, dateStart time.Time) string {
	base := Slugify(title)
	suffix := dateStart.UTC().Format("2006-01-02")
	if base == "" {
		return suffix
	}
	combined := base + "-" + suffix
	if len(combined) > maxSlugLen {
		keep := maxSlugLen - len(suffix) - 1
		if keep < 1 {
			return suffix
		}
		combined = strings.TrimRight(base[:keep], "-") + "-" + suffix
	}
	return combined
}
