package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSearchResponse(t *testing.T) {
	body := `{
		"data": [{
			"id": "swsh45sv-SV107",
			"name": "Charizard",
			"number": "SV107",
			"set": {"id": "swsh45sv", "name": "Shining Fates Shiny Vault", "printedTotal": 122},
			"images": {"small": "https://images.pokemontcg.io/swsh45sv/SV107.png"},
			"tcgplayer": {"prices": {"holofoil": {"low": 80.0, "market": 95.5, "high": null}}}
		}],
		"page": 1, "pageSize": 250, "count": 1, "totalCount": 1
	}`

	cards, err := DecodeSearchResponse([]byte(body))
	require.NoError(t, err)
	require.Len(t, cards, 1)

	card := cards[0]
	assert.Equal(t, "Charizard", card.Name)
	assert.Equal(t, "SV107", card.Number)
	assert.Equal(t, "Shining Fates Shiny Vault", card.SetName)
	assert.Equal(t, 122, card.SetPrintedTotal)
	assert.Equal(t, "https://images.pokemontcg.io/swsh45sv/SV107.png", card.SmallImageURL)

	holo, ok := card.Prices["holofoil"]
	require.True(t, ok)
	require.NotNil(t, holo.Market)
	assert.Equal(t, 95.5, *holo.Market)
	assert.Nil(t, holo.High)
}

func TestDecodeSearchResponse_NoTCGPlayer(t *testing.T) {
	cards, err := DecodeSearchResponse([]byte(`{"data":[{"name":"Eevee","number":"173"}]}`))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Empty(t, cards[0].Prices)
}

func TestDecodeSearchResponse_Empty(t *testing.T) {
	cards, err := DecodeSearchResponse([]byte(`{"data":[]}`))
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestDecodeSearchResponse_NullData(t *testing.T) {
	cards, err := DecodeSearchResponse([]byte(`{"data":null}`))
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestDecodeSearchResponse_KeepsIncompleteCards(t *testing.T) {
	cards, err := DecodeSearchResponse([]byte(`{"data":[{"name":"Nymble","number":"96"},{"name":"Mew"}]}`))
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "96", cards[0].Number)
	assert.Empty(t, cards[1].Number)
}

func TestDecodeSearchResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>maintenance</html>`},
		{name: "missing data", body: `{"error":"oops"}`},
		{name: "data not a list", body: `{"data":{"name":"Mew"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSearchResponse([]byte(tt.body))
			assert.ErrorIs(t, err, ErrUnexpectedShape)
		})
	}
}
