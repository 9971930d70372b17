package model

import "strconv"

// PortfolioEntry is the persisted record of one resolved query.
//
// Entries are created once, when a query resolves, and never modified
// afterwards. OriginalQuery identifies the entry across runs: a query whose
// text already appears as an OriginalQuery is not looked up again.
type PortfolioEntry struct {
	OriginalQuery string  `json:"original_query"`
	Name          string  `json:"name"`
	Set           string  `json:"set"`
	Number        string  `json:"number"`
	TotalPrinted  int     `json:"total_printed"`
	Image         string  `json:"image"`
	MarketPrice   float64 `json:"market_price"`
}

// NewPortfolioEntry builds the entry for query from a resolved card and its
// extracted market price.
func NewPortfolioEntry(query Query, card *Card, price float64) PortfolioEntry {
	return PortfolioEntry{
		OriginalQuery: string(query),
		Name:          card.Name,
		Set:           card.SetName,
		Number:        card.Number,
		TotalPrinted:  card.SetPrintedTotal,
		Image:         card.SmallImageURL,
		MarketPrice:   price,
	}
}

// DisplayNumber returns the number in "number/totalPrinted" form.
func (e PortfolioEntry) DisplayNumber() string {
	return e.Number + "/" + strconv.Itoa(e.TotalPrinted)
}

// Portfolio is the ordered, append-only list of resolved entries.
type Portfolio []PortfolioEntry

// TotalValue returns the sum of all market prices. An empty portfolio is
// worth 0.
func (p Portfolio) TotalValue() float64 {
	var total float64
	for _, e := range p {
		total += e.MarketPrice
	}
	return total
}

// ResolvedQueries returns the set of original queries already present.
// Entries without an original query (hand-edited datasets) are ignored.
func (p Portfolio) ResolvedQueries() map[Query]bool {
	found := make(map[Query]bool, len(p))
	for _, e := range p {
		if e.OriginalQuery != "" {
			found[Query(e.OriginalQuery)] = true
		}
	}
	return found
}
