// Package pharmacy exposes the static medicine catalog and price quoting.
package pharmacy

import "errors"

var (
	// ErrNotFound is returned when a medicine name is not in the catalog.
	ErrNotFound = errors.New("medicine not found")
	// ErrValidation is returned for rejected quote requests.
	ErrValidation = errors.New("validation failed")
	// ErrInsufficientStock is returned when a quote exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Medicine is one catalog item. The catalog is immutable reference data.
type Medicine struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Stock       int     `json:"stock"`
}

// Quote is a priced order line for one medicine.
type Quote struct {
	Medicine  Medicine `json:"medicine"`
	Quantity  int      `json:"quantity"`
	TotalCost float64  `json:"total_cost"`
}
