package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Normalize("piros"), Normalize("  Pirós "))
	assert.Equal(t, "kek", Normalize("KÉK"))
	assert.Equal(t, "ket szo", Normalize("  Két   szó\t"))
	assert.Equal(t, "", Normalize("   "))
}

func TestMatchesExact(t *testing.T) {
	assert.True(t, Matches("42", "42"))
	assert.False(t, Matches("42.0", "42"))
	assert.True(t, Matches("  PIROS ", "pirós"))
	assert.False(t, Matches("zöld", "piros"))
}

func TestMatchesAlternatives(t *testing.T) {
	key := "piros|kék"

	assert.True(t, Matches("KÉK", key))
	assert.True(t, Matches("kek", key))
	assert.True(t, Matches("  piros ", key))
	assert.False(t, Matches("zöld", key))
}

func TestMatchesRegex(t *testing.T) {
	key := `re:alpha\d{2}`

	assert.True(t, Matches("ALPHA07", key), "regex keys are case-insensitive")
	assert.False(t, Matches("alpha7", key))
	assert.False(t, Matches("xalpha07", key), "regex keys are full matches")
}

func TestMatchesRegexIsRawNotNormalized(t *testing.T) {
	// The submission is not trimmed or folded before the regex runs.
	assert.False(t, Matches(" alpha07", `re:alpha\d{2}`))
	assert.False(t, Matches("álpha07", `re:alpha\d{2}`))
}

func TestMatchesBadRegexFallsThrough(t *testing.T) {
	// "re:(a|b" does not compile; the unchanged key still contains "|",
	// so the alternatives rule applies to it.
	key := "re:(a|b"

	assert.True(t, Matches("b", key))
	assert.True(t, Matches("re:(a", key))
	assert.False(t, Matches("a", key))
}

func TestMatchesEmptyKey(t *testing.T) {
	assert.False(t, Matches("anything", ""))
	assert.False(t, Matches("", "   "))
}
