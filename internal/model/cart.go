package model

// CartLineItem is one row in the cart: a product identifier, the product
// fields denormalized for display, and a quantity. Quantity is always at
// least 1; a line that would reach 0 is removed instead of stored.
type CartLineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	ImageName string  `json:"imageName"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns price multiplied by quantity for this line.
func (li CartLineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

// NewCartLineItem builds a line item from a product with quantity 1.
func NewCartLineItem(p Product) CartLineItem {
	return CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.Price,
		ImageName: p.ImageName,
		Quantity:  1,
	}
}
