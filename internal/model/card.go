package model

// Price variant keys used by the remote price table.
const (
	VariantHolofoil          = "holofoil"
	VariantNormal            = "normal"
	VariantReverseHolofoil   = "reverseHolofoil"
	VariantUnlimitedHolofoil = "unlimitedHolofoil"
)

// Card is the normalized view of a card record returned by the pricing API.
//
// Only the fields the tracker needs are kept. Prices maps a variant name
// (holofoil, normal, reverseHolofoil, ...) to its price points; a variant may
// be present without a market price.
type Card struct {
	ID              string
	Name            string
	Number          string
	SetName         string
	SetPrintedTotal int
	SmallImageURL   string
	Prices          map[string]VariantPrice
}

// VariantPrice holds the price points of a single printing variant.
// A nil Market means the API did not report a market price.
type VariantPrice struct {
	Low    *float64
	Mid    *float64
	High   *float64
	Market *float64
}
