package model

import "fmt"

// Query is a free-text card identifier exactly as the collector wrote it,
// e.g. "Pikachu SWSH143" or "Bulbasaur MEG 133".
type Query string

// ParsedQuery is a Query split into the card name and its collector number.
//
// Number is always the last whitespace-delimited token of the query. Name is
// everything before it, minus a redundant set-code token when one sits in
// front of the number (see pokemontcg.ParseQuery).
type ParsedQuery struct {
	Name   string
	Number string
}

// Complete reports whether both a name and a number could be separated.
//
// A single-token query parses into an empty Name and the whole query as
// Number. Searching for that would match any card with the given number, so
// callers skip incomplete queries instead of sending them to the API.
func (p ParsedQuery) Complete() bool {
	return p.Name != "" && p.Number != ""
}

// String returns the query in "Name #Number" form for log output.
func (p ParsedQuery) String() string {
	return fmt.Sprintf("%s #%s", p.Name, p.Number)
}

// StrategyKind tells the resolver how to treat a non-empty result set.
type StrategyKind int

const (
	// StrategyStrict filters by name and number on the server; the first
	// result is accepted as is.
	StrategyStrict StrategyKind = iota

	// StrategyLoose filters by name only; the collector number is verified
	// client-side before a result is accepted.
	StrategyLoose
)

// String returns the lowercase name of the strategy kind.
func (k StrategyKind) String() string {
	switch k {
	case StrategyStrict:
		return "strict"
	case StrategyLoose:
		return "loose"
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(k))
	}
}

// SearchStrategy is one search attempt against the remote API.
type SearchStrategy struct {
	// QueryString is the filter expression sent as the q parameter,
	// e.g. `name:"Keldeo" number:"GG07"`.
	QueryString string

	// Kind decides whether results are trusted or verified.
	Kind StrategyKind
}
