package request

// ProductView looks a product up by SKU via POST /api/v3/product/view.
type ProductView struct {
	Sku string `json:"sku"`
}

// PackageUpdate replaces a master product's picklist via
// PATCH /api/v3/product.
type PackageUpdate struct {
	ID       int64      `json:"id"`
	Picklist []PickItem `json:"picklist"`
}

type PickItem struct {
	Sku      string      `json:"sku"`
	Quantity interface{} `json:"quantity"`
}
