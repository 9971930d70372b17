package pokemontcg

import (
	"context"
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/handiism/tcg-portfolio/internal/http"
	"github.com/handiism/tcg-portfolio/internal/model"
	"github.com/handiism/tcg-portfolio/internal/pokemontcg/dto"
)

// ErrMalformedResponse is recorded when a 200 response cannot be read as a
// card search result.
var ErrMalformedResponse = errors.New("malformed search response")

// Searcher runs a card search and returns the raw body of a 200 response.
// *http.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]byte, error)
}

// Resolution is the outcome of resolving one parsed query.
type Resolution struct {
	// Card is the matched card, nil when no strategy produced a match.
	Card *model.Card

	// Strategy is the strategy that produced Card.
	Strategy model.SearchStrategy

	// Requests counts the searches sent, retries included.
	Requests int

	// LastErr is the last failure seen while searching (throttling,
	// transport, malformed body, unexpected status). It is informational:
	// a nil Card with a nil LastErr is a clean miss.
	LastErr error
}

// Found reports whether a card was matched.
func (r Resolution) Found() bool {
	return r.Card != nil
}

// Resolver executes search strategies against the API with retry and
// strategy fallback.
//
// Requests are strictly sequential. Every pause goes through the Sleeper,
// so the resolver never overlaps requests and tests never wait.
//
// Example usage:
//
//	resolver := NewResolver(client, TimerSleeper{}, DefaultRetryPolicy(), log)
//	res, err := resolver.Resolve(ctx, ParseQuery("Vulpix 197"))
//	if err != nil {
//	    return err // context cancelled
//	}
//	if res.Found() {
//	    fmt.Println(res.Card.Name, ExtractMarketPrice(res.Card))
//	}
type Resolver struct {
	searcher Searcher
	sleeper  Sleeper
	policy   RetryPolicy
	log      zerolog.Logger
}

// NewResolver creates a Resolver. A policy with MaxAttempts < 1 is replaced
// by DefaultRetryPolicy.
func NewResolver(searcher Searcher, sleeper Sleeper, policy RetryPolicy, log zerolog.Logger) *Resolver {
	if policy.MaxAttempts < 1 {
		policy = DefaultRetryPolicy()
	}
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	return &Resolver{
		searcher: searcher,
		sleeper:  sleeper,
		policy:   policy,
		log:      log.With().Str("component", "resolver").Logger(),
	}
}

// Resolve tries each strategy of BuildStrategies(p) in order and returns
// the first acceptable match.
//
// Running out of strategies is not an error; the returned Resolution simply
// has no Card. The error return is reserved for context cancellation.
func (r *Resolver) Resolve(ctx context.Context, p model.ParsedQuery) (Resolution, error) {
	var res Resolution

	for _, strategy := range BuildStrategies(p) {
		card, err := r.runStrategy(ctx, strategy, p, &res)
		if err != nil {
			return res, err
		}
		if card != nil {
			res.Card = card
			res.Strategy = strategy
			res.LastErr = nil
			return res, nil
		}
	}

	return res, nil
}

// runStrategy sends one strategy up to MaxAttempts times. It returns a nil
// card when the strategy is abandoned.
func (r *Resolver) runStrategy(ctx context.Context, s model.SearchStrategy, p model.ParsedQuery, res *Resolution) (*model.Card, error) {
	log := r.log.With().Str("strategy", s.Kind.String()).Str("q", s.QueryString).Logger()

	for attempt := 0; attempt < r.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res.Requests++
		body, err := r.searcher.Search(ctx, s.QueryString)

		switch {
		case err == nil:
			cards, decodeErr := dto.DecodeSearchResponse(body)
			if decodeErr == nil && s.Kind == model.StrategyStrict && len(cards) > 0 && !usable(cards[0]) {
				decodeErr = fmt.Errorf("%w: first card has no name or number", dto.ErrUnexpectedShape)
			}
			if decodeErr != nil {
				res.LastErr = fmt.Errorf("%w: %w", ErrMalformedResponse, decodeErr)
				log.Warn().Err(decodeErr).Int("attempt", attempt+1).Msg("Unreadable search response")
				if err := r.sleeper.Sleep(ctx, r.policy.TransportDelay); err != nil {
					return nil, err
				}
				continue
			}
			return r.pick(log, s, p, cards), nil

		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err

		case errors.Is(err, http.ErrNotFound):
			log.Debug().Msg("No cards found")
			return nil, nil

		case http.IsTransient(err):
			res.LastErr = err
			wait := r.policy.BusyWait(attempt)
			log.Warn().Err(err).Int("attempt", attempt+1).Dur("wait", wait).Msg("API busy, backing off")
			if err := r.sleeper.Sleep(ctx, wait); err != nil {
				return nil, err
			}

		case errors.Is(err, http.ErrTransport):
			res.LastErr = err
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("Request failed, retrying")
			if err := r.sleeper.Sleep(ctx, r.policy.TransportDelay); err != nil {
				return nil, err
			}

		default:
			res.LastErr = err
			log.Warn().Err(err).Msg("Unexpected status, abandoning strategy")
			return nil, nil
		}
	}

	return nil, nil
}

// pick selects the accepted card from a result list, or nil.
func (r *Resolver) pick(log zerolog.Logger, s model.SearchStrategy, p model.ParsedQuery, cards []*model.Card) *model.Card {
	if len(cards) == 0 {
		log.Debug().Msg("Empty result set")
		return nil
	}

	if s.Kind == model.StrategyStrict {
		return cards[0]
	}

	for _, card := range cards {
		if usable(card) && NumbersMatch(card.Number, p.Number) {
			return card
		}
	}

	closest := closestNumber(cards, p.Number)
	log.Debug().
		Int("results", len(cards)).
		Str("want", p.Number).
		Str("closest", closest).
		Msg("No result with a matching number")
	return nil
}

// usable reports whether a result card can be stored as a portfolio entry.
func usable(c *model.Card) bool {
	return c.Name != "" && c.Number != ""
}

// closestNumber returns the card number nearest to want by edit distance.
// It only feeds diagnostics; the card is never returned as a match.
func closestNumber(cards []*model.Card, want string) string {
	best, bestDist := "", -1
	for _, card := range cards {
		if card.Number == "" {
			continue
		}
		d := levenshtein.ComputeDistance(card.Number, want)
		if bestDist < 0 || d < bestDist {
			best, bestDist = card.Number, d
		}
	}
	return best
}
