package domain

// Listing is a blue-carbon project offering credits for sale.
// ImageRef is an opaque asset reference resolved by the client.
type Listing struct {
	ID               string  `json:"id"`
	ProjectName      string  `json:"project_name"`
	Location         string  `json:"location"`
	AvailableCredits int64   `json:"available_credits"`
	PricePerCredit   float64 `json:"price_per_credit"`
	Verified         bool    `json:"verified"`
	ImageRef         string  `json:"image_ref"`
	Position         int     `json:"-"` // catalog display order
}

// CanFill reports whether the listing has enough supply for an order.
func (l *Listing) CanFill(credits int64) bool {
	return credits > 0 && l.AvailableCredits >= credits
}

// WithSupply returns a copy of the listing with a new supply figure.
func (l *Listing) WithSupply(available int64) *Listing {
	cp := *l
	cp.AvailableCredits = available
	return &cp
}

// MarketStat is a headline marketplace figure.
type MarketStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
