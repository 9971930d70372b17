package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/handiism/tcg-portfolio/internal/model"
)

// ErrUnexpectedShape is returned when a 200 response does not look like a
// card search result.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// JSONSearchResponse is the body of a successful card search.
type JSONSearchResponse struct {
	Data       json.RawMessage `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	Count      int             `json:"count"`
	TotalCount int             `json:"totalCount"`
}

// JSONCard represents a card object from the API. Fields the tracker does not
// use are left out.
type JSONCard struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Number    string         `json:"number"`
	Set       JSONSet        `json:"set"`
	Images    JSONImages     `json:"images"`
	TCGPlayer *JSONTCGPlayer `json:"tcgplayer"`
}

// JSONSet is the set a card was printed in.
type JSONSet struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PrintedTotal int    `json:"printedTotal"`
}

// JSONImages holds the image URLs of a card.
type JSONImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

// JSONTCGPlayer holds the TCGplayer price table, keyed by variant.
type JSONTCGPlayer struct {
	URL       string                      `json:"url"`
	UpdatedAt string                      `json:"updatedAt"`
	Prices    map[string]JSONVariantPrice `json:"prices"`
}

// JSONVariantPrice is one row of the price table. Any field may be null.
type JSONVariantPrice struct {
	Low    *float64 `json:"low"`
	Mid    *float64 `json:"mid"`
	High   *float64 `json:"high"`
	Market *float64 `json:"market"`
}

// DecodeSearchResponse parses a search body into normalized cards.
//
// A body that is not JSON or has no data key is reported as
// ErrUnexpectedShape. A null data list decodes as no cards. Cards are
// returned as sent, including ones without a name or number; callers decide
// which cards they need complete.
func DecodeSearchResponse(body []byte) ([]*model.Card, error) {
	var resp JSONSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: missing data list", ErrUnexpectedShape)
	}

	var data []JSONCard
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrUnexpectedShape, err)
	}

	cards := make([]*model.Card, 0, len(data))
	for _, jc := range data {
		cards = append(cards, jc.ToCard())
	}
	return cards, nil
}

// ToCard converts JSONCard to a model.Card.
func (jc *JSONCard) ToCard() *model.Card {
	card := &model.Card{
		ID:              jc.ID,
		Name:            jc.Name,
		Number:          jc.Number,
		SetName:         jc.Set.Name,
		SetPrintedTotal: jc.Set.PrintedTotal,
		SmallImageURL:   jc.Images.Small,
		Prices:          map[string]model.VariantPrice{},
	}

	if jc.TCGPlayer != nil {
		for variant, p := range jc.TCGPlayer.Prices {
			card.Prices[variant] = model.VariantPrice{
				Low:    p.Low,
				Mid:    p.Mid,
				High:   p.High,
				Market: p.Market,
			}
		}
	}

	return card
}
