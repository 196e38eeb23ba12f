package domain

// Product catalog item that can be ordered for pickup
type Product struct {
	ID          int64
	Slug        string
	Name        string
	PriceCents  int64
	Currency    string
	MaxPerOrder int
	InStock     bool
	Active      bool
}

// IsPurchasable returns true if the product can be sold right now
func (p *Product) IsPurchasable() bool {
	return p.Active && p.InStock
}
