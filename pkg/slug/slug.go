// Package slug derives stable URL-safe identifiers from activity names.
package slug

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

// Fallback is the slug of a name without any letter or digit.
const Fallback = "activity"

var nonAlphaNum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Make lowercases input and collapses every run of characters that are neither letters nor
// digits into a hyphen. Letters outside ASCII are kept.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

// Disambiguate appends a short hash of input to base. The result is stable for a given input.
func Disambiguate(base, input string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(Normalize(input)))
	return fmt.Sprintf("%s-%08x", base, h.Sum32())
}

// Normalize lowercases input and collapses whitespace.
func Normalize(input string) string {
	return strings.Join(strings.Fields(strings.ToLower(input)), " ")
}

// Equivalent reports whether a and b name the same activity: their slugs agree and, when the
// slug carries no letters or digits, their normalized text agrees too.
func Equivalent(a, b string) bool {
	sa := Make(a)
	if sa != Make(b) {
		return false
	}
	if sa == Fallback {
		return Normalize(a) == Normalize(b)
	}
	return true
}
