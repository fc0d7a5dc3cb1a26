// Package mention holds the mentionable candidates and the pure matching
// rules behind the @mention autocomplete.
package mention

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Candidate is a mentionable entity.
type Candidate struct {
	ID    int
	Value string
}

// Token is an in-progress mention: "@" followed by zero or more word
// characters at the end of a text.
type Token struct {
	// Query is the fragment typed after "@".
	Query string
	// Start is the rune offset of "@" within the matched text.
	Start int
	// Len is the rune length of the whole token, "@" included.
	Len int
}

var tokenRE = regexp.MustCompile(`@(\w*)$`)

// DefaultCandidates returns the built-in candidate list.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{ID: 1, Value: "Alice"},
		{ID: 2, Value: "Bob"},
		{ID: 3, Value: "Charlie"},
	}
}

// MatchToken finds a trailing token in textBeforeCursor.
func MatchToken(textBeforeCursor string) (Token, bool) {
	loc := tokenRE.FindStringSubmatchIndex(textBeforeCursor)
	if loc == nil {
		return Token{}, false
	}
	start := utf8.RuneCountInString(textBeforeCursor[:loc[0]])
	return Token{
		Query: textBeforeCursor[loc[2]:loc[3]],
		Start: start,
		Len:   utf8.RuneCountInString(textBeforeCursor[loc[0]:loc[1]]),
	}, true
}

// Filter returns the candidates whose Value starts with query, ignoring case.
// Order is preserved and the result never aliases candidates.
func Filter(candidates []Candidate, query string) []Candidate {
	q := strings.ToLower(query)
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c.Value), q) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the candidate whose Value equals value, ignoring case.
func Find(candidates []Candidate, value string) (Candidate, bool) {
	for _, c := range candidates {
		if strings.EqualFold(c.Value, value) {
			return c, true
		}
	}
	return Candidate{}, false
}

// InsertText is the literal text a confirmed mention of c replaces its token
// with. The trailing space ends the mention so typing continues as prose.
func InsertText(c Candidate) string {
	return "@" + c.Value + " "
}

// Markup names used for mention annotations in document HTML.
const (
	HTMLClass     = "mention"
	HTMLValueAttr = "data-value"
)
