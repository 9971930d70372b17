// Package pokemontcg turns collector shorthand into priced cards using the
// Pokémon TCG API.
//
// The package covers the whole identifier resolution pipeline:
//
//  1. ParseQuery splits "Bulbasaur MEG 133" into name and number
//  2. BuildStrategies turns that into a strict and a loose search
//  3. Resolver runs the searches with retry, backoff and fallback
//  4. ExtractMarketPrice picks a single market price from the card
//
// # Resolving a Query
//
//	resolver := pokemontcg.NewResolver(client, pokemontcg.TimerSleeper{}, pokemontcg.DefaultRetryPolicy(), log)
//
//	parsed := pokemontcg.ParseQuery("Keldeo GG07/GG70")
//	res, err := resolver.Resolve(ctx, parsed)
//	if err != nil {
//	    return err
//	}
//	if res.Found() {
//	    price := pokemontcg.ExtractMarketPrice(res.Card)
//	}
//
// # Strategies
//
// The strict search asks the API for an exact name and number and trusts
// the first result. The loose search asks for the name only and accepts a
// result only when its number matches, ignoring leading zeros. A loose
// search never falls back to an arbitrary card with the same name.
//
// # Retries
//
// Throttling and gateway errors (429, 500, 502, 503, 504) are retried after
// 5s, 10s and 15s. Network failures and unreadable bodies are retried after
// 2s. A 404 or an empty result moves on to the next strategy at once.
package pokemontcg
