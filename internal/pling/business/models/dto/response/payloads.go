package response

// BatchResponse is the envelope of the batch price endpoint: a payload
// array positionally aligned to the request batch, each entry truthy on
// success.
type BatchResponse struct {
	Payload []interface{} `json:"payload"`
}

// StockResponse carries the accepted rows of a stock batch; a row whose
// sku is absent from the payload was rejected.
type StockResponse struct {
	Payload []StockResult `json:"payload"`
}

type StockResult struct {
	Sku string `json:"sku"`
}

// ViewResponse is the product-view envelope. ID stays nil when the
// master product does not exist.
type ViewResponse struct {
	Payload *ViewPayload `json:"payload"`
}

type ViewPayload struct {
	ID *int64 `json:"id"`
}

// SearchResponse is the product-search envelope.
type SearchResponse struct {
	Payload SearchPayload `json:"payload"`
}

type SearchPayload struct {
	Results []Product `json:"results"`
}

type Product struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
}

// ApiErrors is the error surface shared by the v3 write endpoints.
type ApiErrors struct {
	AllErrors []string `json:"all_errors"`
}
