// Package model defines the core data structures used throughout
// tcg-portfolio.
//
// # Queries
//
// A Query is the collector's own shorthand for a card. It is parsed into a
// ParsedQuery and expanded into an ordered list of SearchStrategy values:
//
//	parsed := pokemontcg.ParseQuery("Bulbasaur MEG 133")
//	// parsed.Name = "Bulbasaur", parsed.Number = "133"
//
// # Cards
//
// Card is the normalized record returned by the pricing API, including its
// per-variant price table.
//
// # Portfolio
//
// PortfolioEntry is what gets persisted for each resolved query, and
// Portfolio is the ordered list of entries:
//
//	entry := model.NewPortfolioEntry(query, card, price)
//	portfolio = append(portfolio, entry)
//	fmt.Printf("$%.2f\n", portfolio.TotalValue())
package model
