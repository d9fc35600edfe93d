package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatcherSubstring(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		ignoreCase bool
		line       string
		want       bool
	}{
		{
			name:  "case-sensitive hit",
			query: "Needle",
			line:  "a Needle in a haystack",
			want:  true,
		},
		{
			name:  "case-sensitive miss on different case",
			query: "Needle",
			line:  "a needle in a haystack",
			want:  false,
		},
		{
			name:  "miss",
			query: "Needle",
			line:  "plain straw",
			want:  false,
		},
		{
			name:       "ignore-case upper query lower line",
			query:      "NEEDLE",
			ignoreCase: true,
			line:       "a needle in a haystack",
			want:       true,
		},
		{
			name:       "ignore-case lower query upper line",
			query:      "needle",
			ignoreCase: true,
			line:       "a NEEDLE in a haystack",
			want:       true,
		},
		{
			name:       "ignore-case mixed",
			query:      "nEeDlE",
			ignoreCase: true,
			line:       "NeEdLe",
			want:       true,
		},
		{
			name:  "empty query matches every line",
			query: "",
			line:  "anything",
			want:  true,
		},
		{
			name:  "empty query matches empty line",
			query: "",
			line:  "",
			want:  true,
		},
		{
			name:       "lowercasing is ASCII-only",
			query:      "straße",
			ignoreCase: true,
			line:       "STRASSE",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher, err := NewMatcher(tt.query, tt.ignoreCase, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matcher.MatchLine(tt.line))
		})
	}
}

func TestNewMatcherRegex(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		ignoreCase bool
		line       string
		want       bool
	}{
		{
			name:  "unanchored partial match",
			query: "ne+dle",
			line:  "a neeedle in a haystack",
			want:  true,
		},
		{
			name:  "caret anchors to line start",
			query: "^needle",
			line:  "a needle",
			want:  false,
		},
		{
			name:  "caret hit",
			query: "^needle",
			line:  "needle first",
			want:  true,
		},
		{
			name:  "dollar anchors to line end",
			query: "needle$",
			line:  "needle first",
			want:  false,
		},
		{
			name:  "dollar hit",
			query: "needle$",
			line:  "find the needle",
			want:  true,
		},
		{
			name:       "ignore-case via flag",
			query:      "NEEDLE",
			ignoreCase: true,
			line:       "a needle",
			want:       true,
		},
		{
			name:  "empty pattern matches everything",
			query: "",
			line:  "anything at all",
			want:  true,
		},
		{
			name:  "case-sensitive regex miss",
			query: "NEEDLE",
			line:  "a needle",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher, err := NewMatcher(tt.query, tt.ignoreCase, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matcher.MatchLine(tt.line))
		})
	}
}

func TestNewMatcherMalformedRegex(t *testing.T) {
	matcher, err := NewMatcher("[unbalanced", false, true)
	require.Error(t, err)
	assert.Nil(t, matcher)
	assert.Contains(t, err.Error(), "invalid regex pattern")
}

// The same malformed bracket is perfectly fine as a literal substring.
func TestMalformedRegexIsValidSubstring(t *testing.T) {
	matcher, err := NewMatcher("[unbalanced", false, false)
	require.NoError(t, err)
	assert.True(t, matcher.MatchLine("an [unbalanced bracket"))
}

func TestCaseInsensitiveSymmetry(t *testing.T) {
	// Matching "NEEDLE" against a line containing "needle" must succeed
	// exactly when matching "needle" against "NEEDLE" does.
	upper, err := NewMatcher("NEEDLE", true, false)
	require.NoError(t, err)
	lower, err := NewMatcher("needle", true, false)
	require.NoError(t, err)

	assert.Equal(t, upper.MatchLine("the needle"), lower.MatchLine("the NEEDLE"))
	assert.True(t, upper.MatchLine("the needle"))
}

func TestFindSpan(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		ignoreCase bool
		useRegex   bool
		line       string
		wantStart  int
		wantEnd    int
		wantOK     bool
	}{
		{
			name:      "substring span",
			query:     "needle",
			line:      "a needle here",
			wantStart: 2,
			wantEnd:   8,
			wantOK:    true,
		},
		{
			name:       "ignore-case substring span keeps offsets",
			query:      "NEEDLE",
			ignoreCase: true,
			line:       "a needle here",
			wantStart:  2,
			wantEnd:    8,
			wantOK:     true,
		},
		{
			name:   "substring no span on miss",
			query:  "needle",
			line:   "nothing",
			wantOK: false,
		},
		{
			name:   "empty query has no highlightable span",
			query:  "",
			line:   "anything",
			wantOK: false,
		},
		{
			name:      "regex leftmost span",
			query:     "e+",
			useRegex:  true,
			line:      "neeedle",
			wantStart: 1,
			wantEnd:   4,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher, err := NewMatcher(tt.query, tt.ignoreCase, tt.useRegex)
			require.NoError(t, err)

			finder, ok := matcher.(SpanFinder)
			require.True(t, ok, "matcher should implement SpanFinder")

			start, end, ok := finder.FindSpan(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStart, start)
				assert.Equal(t, tt.wantEnd, end)
			}
		})
	}
}

func TestLowerASCII(t *testing.T) {
	assert.Equal(t, "hello", lowerASCII("HeLLo"))
	assert.Equal(t, "already lower", lowerASCII("already lower"))
	assert.Equal(t, "123!@#", lowerASCII("123!@#"))
	// Bytes outside A-Z are untouched, including non-ASCII letters.
	assert.Equal(t, "Ünïcode stays", lowerASCII("Ünïcode STAYS"))
}
