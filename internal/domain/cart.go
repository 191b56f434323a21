package domain

// CartLine is one cart entry: a copy of the product's display fields taken at
// the time of the first add, plus a quantity. Display fields are frozen at add
// time; a later catalog refresh does not touch lines already in the cart.
type CartLine struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
	Quantity    int     `json:"quantity"`
}

// NewCartLine snapshots a product into a line with quantity 1.
func NewCartLine(p Product) CartLine {
	return CartLine{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      p.Rating,
		Quantity:    1,
	}
}
