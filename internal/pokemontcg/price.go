package pokemontcg

import "github.com/handiism/tcg-portfolio/internal/model"

// PricePriority is the order in which price variants are consulted when
// picking a card's market price.
var PricePriority = []string{
	model.VariantHolofoil,
	model.VariantNormal,
	model.VariantReverseHolofoil,
	model.VariantUnlimitedHolofoil,
}

// FirstPresent walks keys in order and returns the first value in m for
// which ok reports true.
func FirstPresent[K comparable, V any](m map[K]V, keys []K, ok func(V) bool) (V, bool) {
	for _, k := range keys {
		if v, found := m[k]; found && ok(v) {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// ExtractMarketPrice returns the market price of the highest-priority
// variant that has a non-zero market price, or 0 when there is none.
func ExtractMarketPrice(card *model.Card) float64 {
	if card == nil {
		return 0
	}
	v, ok := FirstPresent(card.Prices, PricePriority, func(p model.VariantPrice) bool {
		return p.Market != nil && *p.Market != 0
	})
	if !ok {
		return 0
	}
	return *v.Market
}
