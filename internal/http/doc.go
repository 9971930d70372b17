// Package http provides the HTTP client used to talk to the Pokémon TCG API
// and to fetch card images from its CDN.
//
// The Client in this package handles:
//   - the client-identifying User-Agent header
//   - request timeouts
//   - mapping of response status codes to typed errors
//
// # Basic Usage
//
//	client := http.NewClient(http.Options{Timeout: 30 * time.Second}, log)
//
//	// Search cards; the body is the raw JSON of a 200 response
//	body, err := client.Search(ctx, `name:"Vulpix" number:"197"`)
//
//	// Download a card image
//	img, err := client.Get(ctx, card.SmallImageURL)
//
// # Errors
//
// Search distinguishes three failure kinds:
//
//	errors.Is(err, http.ErrNotFound)  // 404, nothing to retry
//	http.IsTransient(err)             // 429/500/502/503/504, retry after a pause
//	errors.Is(err, http.ErrTransport) // network failure, retry shortly
//
// Any other status is returned as a non-transient *StatusError.
package http
