// Package answer classifies submitted answers against the answer keys
// stored in the workbook. A key is either a regular expression
// ("re:pattern"), a list of alternatives ("a|b|c"), or a plain string.
package answer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const regexPrefix = "re:"

// stripMarks decomposes to NFD and drops the combining marks, so "pirós"
// folds to "piros".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, trims, collapses internal whitespace runs to a
// single space and removes diacritical marks. "  Pirós " and "piros"
// normalize to the same string.
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Matches reports whether submitted satisfies key. Rules, in order:
//
//  1. A key starting with "re:" is a case-insensitive full-match regex
//     evaluated against the raw submission. An uncompilable pattern is
//     not a failure; the key falls through to the next rules unchanged.
//  2. A key containing "|" is a set of alternatives, each compared after
//     normalization.
//  3. Otherwise normalized equality.
//
// An empty or absent key never matches anything.
func Matches(submitted, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}

	if pattern, ok := strings.CutPrefix(key, regexPrefix); ok {
		re, err := regexp.Compile("(?i)^(?:" + strings.TrimSpace(pattern) + ")$")
		if err == nil {
			return re.MatchString(submitted)
		}
	}

	if strings.Contains(key, "|") {
		normalized := Normalize(submitted)
		for _, alt := range strings.Split(key, "|") {
			if normalized == Normalize(alt) {
				return true
			}
		}
		return false
	}

	return Normalize(submitted) == Normalize(key)
}
