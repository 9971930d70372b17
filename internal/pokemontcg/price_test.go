package pokemontcg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/handiism/tcg-portfolio/internal/model"
)

func price(v float64) *float64 { return &v }

func TestExtractMarketPrice(t *testing.T) {
	tests := []struct {
		name string
		card *model.Card
		want float64
	}{
		{
			name: "holofoil preferred",
			card: &model.Card{Prices: map[string]model.VariantPrice{
				model.VariantHolofoil: {Market: price(150.0)},
				model.VariantNormal:   {Market: price(10.0)},
			}},
			want: 150.0,
		},
		{
			name: "only normal",
			card: &model.Card{Prices: map[string]model.VariantPrice{
				model.VariantNormal: {Market: price(5.0)},
			}},
			want: 5.0,
		},
		{
			name: "zero holofoil falls through",
			card: &model.Card{Prices: map[string]model.VariantPrice{
				model.VariantHolofoil:        {Market: price(0)},
				model.VariantReverseHolofoil: {Market: price(2.25)},
			}},
			want: 2.25,
		},
		{
			name: "missing market falls through",
			card: &model.Card{Prices: map[string]model.VariantPrice{
				model.VariantHolofoil:          {Low: price(1.0)},
				model.VariantUnlimitedHolofoil: {Market: price(40.0)},
			}},
			want: 40.0,
		},
		{
			name: "unknown variants ignored",
			card: &model.Card{Prices: map[string]model.VariantPrice{
				"1stEditionHolofoil": {Market: price(900.0)},
			}},
			want: 0,
		},
		{name: "no prices", card: &model.Card{}, want: 0},
		{name: "nil card", card: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMarketPrice(tt.card))
		})
	}
}

func TestFirstPresent(t *testing.T) {
	m := map[string]int{"b": 2, "c": 0}
	positive := func(v int) bool { return v > 0 }

	v, ok := FirstPresent(m, []string{"a", "c", "b"}, positive)
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = FirstPresent(m, []string{"a", "c"}, positive)
	assert.False(t, ok)
}
