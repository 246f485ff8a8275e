package request

// PriceUpdate is one element of the batch body for
// POST /api/erp/v2/product/prices. The response payload is positionally
// aligned to this slice.
type PriceUpdate struct {
	Sku          string   `json:"sku"`
	RegularPrice float64  `json:"regular_price"`
	SalePrice    *float64 `json:"sale_price,omitempty"`
	PriceList    string   `json:"price_list"`
	MinQuantity  int      `json:"min_quantity"`
}
