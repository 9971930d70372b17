// Package report renders a portfolio as a self-contained HTML gallery.
//
// The page has a header with the total market value, the number of cards
// and the date, followed by one tile per card showing its image, name, set,
// number/printed total and price.
//
//	html, err := report.Render(portfolio, report.Options{Now: time.Now()})
//
// Gallery wraps Render for a report file on disk and swaps remote images
// for local thumbnails when they have been downloaded.
package report
