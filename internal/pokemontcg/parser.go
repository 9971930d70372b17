package pokemontcg

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/handiism/tcg-portfolio/internal/model"
)

// maxSetCodeLen is the longest token still treated as a set code.
const maxSetCodeLen = 4

// ParseQuery splits a free-text identifier into a card name and number.
//
// The last whitespace-delimited token is always the number. When the query
// has at least three tokens and the one before the number looks like a set
// code (uppercase, at most four characters, no digits), that token is
// dropped as well:
//
//	ParseQuery("Bulbasaur MEG 133")  // {Name: "Bulbasaur", Number: "133"}
//	ParseQuery("Iron Leaves TEF 203") // {Name: "Iron Leaves", Number: "203"}
//	ParseQuery("Keldeo GG07/GG70")    // {Name: "Keldeo", Number: "GG07/GG70"}
//	ParseQuery("Pikachu SWSH143")     // {Name: "Pikachu", Number: "SWSH143"}
//
// A single-token query yields an empty name and the token as the number.
// ParseQuery does not reject it; see model.ParsedQuery.Complete.
func ParseQuery(q model.Query) model.ParsedQuery {
	parts := strings.Fields(string(q))
	if len(parts) == 0 {
		return model.ParsedQuery{}
	}

	number := parts[len(parts)-1]
	nameParts := parts[:len(parts)-1]
	if len(parts) > 2 && isSetCode(parts[len(parts)-2]) {
		nameParts = parts[:len(parts)-2]
	}

	return model.ParsedQuery{
		Name:   strings.Join(nameParts, " "),
		Number: number,
	}
}

// isSetCode reports whether token looks like a short set abbreviation such
// as "MEG" or "SVI".
func isSetCode(token string) bool {
	if utf8.RuneCountInString(token) > maxSetCodeLen {
		return false
	}
	cased := false
	for _, r := range token {
		switch {
		case unicode.IsDigit(r), unicode.IsLower(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// BuildStrategies expands a parsed query into the ordered search strategies:
// a strict name-and-number search followed by a loose name-only search.
//
// Gallery numbers such as "GG07/GG70" are searched by their prefix ("GG07")
// in the strict strategy, which is how the API stores them.
func BuildStrategies(p model.ParsedQuery) []model.SearchStrategy {
	return []model.SearchStrategy{
		{
			QueryString: fmt.Sprintf(`name:"%s" number:"%s"`, p.Name, strictNumber(p.Number)),
			Kind:        model.StrategyStrict,
		},
		{
			QueryString: fmt.Sprintf(`name:"%s"`, p.Name),
			Kind:        model.StrategyLoose,
		},
	}
}

// strictNumber truncates gallery numbers to the part before the slash.
func strictNumber(number string) string {
	if strings.Contains(number, "/") && strings.Contains(number, "GG") {
		return strings.SplitN(number, "/", 2)[0]
	}
	return number
}

// NumbersMatch reports whether a card number returned by the API matches
// the requested one, ignoring leading zeros on both sides ("096" == "96").
func NumbersMatch(got, want string) bool {
	return got == want || strings.TrimLeft(got, "0") == strings.TrimLeft(want, "0")
}
