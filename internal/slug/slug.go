// Package slug derives URL-safe, human-readable identifiers from note titles.
package slug

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	maxBaseLen = 50
	suffixLen  = 6
	alphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
	hyphenRun  = regexp.MustCompile(`-+`)
)

// Make builds a lowercase hyphenated slug from title plus a random base36
// suffix. It never fails: a title that is empty after stripping yields a
// degenerate slug consisting of the suffix alone. Uniqueness is
// probabilistic; callers that need a guarantee must check the store.
func Make(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = nonWord.ReplaceAllString(base, "")
	base = whitespace.ReplaceAllString(base, "-")
	base = hyphenRun.ReplaceAllString(base, "-")
	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}
	base = strings.Trim(base, "-")
	if base == "" {
		return suffix()
	}
	return base + "-" + suffix()
}

func suffix() string {
	b := make([]byte, suffixLen)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
