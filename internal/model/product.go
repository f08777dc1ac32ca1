package model

import "encoding/json"

// Product represents a catalogue product as served by the backend.
// The client treats it as read-only within a session.
type Product struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Brand            string  `json:"brand"`
	Description      string  `json:"description"`
	Price            float64 `json:"price"`
	Category         string  `json:"category"`
	ReleaseDate      string  `json:"releaseDate"`
	ProductAvailable bool    `json:"productAvailable"`
	StockQuantity    int     `json:"stockQuantity"`
	ImageName        string  `json:"imageName"`
	ImageType        string  `json:"imageType"`
}

// UnmarshalJSON normalizes the product identifier at the ingestion
// boundary. Some backend deployments serve the identifier as "_id"
// (numeric or string), others as "id"; everything downstream only ever
// sees Product.ID.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		RawID json.RawMessage `json:"id"`
		AltID json.RawMessage `json:"_id"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.ID = normalizeID(aux.RawID)
	if p.ID == "" {
		p.ID = normalizeID(aux.AltID)
	}
	return nil
}

// normalizeID renders a raw JSON identifier (string or number) as a plain string.
func normalizeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// Available reports whether the product can currently be added to a cart.
func (p *Product) Available() bool {
	return p.ProductAvailable && p.StockQuantity > 0
}
