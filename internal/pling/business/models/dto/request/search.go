package request

// ProductSearch queries POST /api/erp/v2/product/search for the single
// product matching a SKU, with the translatable description expanded.
type ProductSearch struct {
	Sku         string   `json:"sku"`
	PageSize    int      `json:"page_size"`
	ProductType []string `json:"product_type"`
	Expand      []string `json:"expand"`
	Locale      string   `json:"locale"`
}

func NewProductSearch(sku, locale string) ProductSearch {
	return ProductSearch{
		Sku:         sku,
		PageSize:    1,
		ProductType: []string{"simple", "variable"},
		Expand:      []string{"description"},
		Locale:      locale,
	}
}
