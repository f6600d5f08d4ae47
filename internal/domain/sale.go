package domain

import "time"

// Product is a retail item sold at the counter (pomade, shampoo, ...).
type Product struct {
	ID     int64
	ShopID int64
	Name   string
	Price  float64
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductSale records one counter sale. The product link is optional so
// owners can record items that were never added to the catalog; in that
// case ProductName carries the free-text description.
type ProductSale struct {
	ID        int64
	ShopID    int64
	ProductID *int64

	ProductName string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64 // always Quantity * UnitPrice, recomputed on write

	SoldAt time.Time
	Note   *string

	CreatedAt time.Time
}
