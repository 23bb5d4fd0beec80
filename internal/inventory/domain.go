// Package inventory tracks the clinic's stock of supplies and medicines.
package inventory

// Collection is the change-feed name for the inventory collection.
const Collection = "inventory"

// Item models a single inventory batch.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Batch    string  `json:"batch"`
	Expiry   string  `json:"expiry"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price,omitempty"`
	Supplier string  `json:"supplier,omitempty"`
}
