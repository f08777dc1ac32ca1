package model

// OrderItemRequest represents a single item in an order placement request.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest represents the payload for POST /api/orders/place. It is a
// write-only projection of the cart plus the customer contact fields; it is
// never persisted client-side.
type OrderRequest struct {
	CustomerName  string             `json:"customerName"`
	Email         string             `json:"email"`
	Address       string             `json:"address"`
	Mobile        string             `json:"mobile"`
	PaymentMethod string             `json:"paymentMethod"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderConfirmation is the backend's response to a successful placement.
type OrderConfirmation struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// OrderItem is one line of a previously placed order as returned by the
// order history endpoint.
type OrderItem struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Order represents a placed order with its nested line items.
type Order struct {
	OrderID      string      `json:"orderId"`
	CustomerName string      `json:"customerName"`
	Email        string      `json:"email"`
	Status       string      `json:"status"`
	OrderDate    string      `json:"orderDate"`
	Items        []OrderItem `json:"items"`
}

// Total sums the item totals of the order.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.TotalPrice
	}
	return total
}
