package dto

// TraceResponse rake de origen de una entidad.
type TraceResponse struct {
	EntityID string `json:"entity_id"`
	RakeCode string `json:"rake_code"`
}

// DescendantsResponse registros que derivan de un rake.
type DescendantsResponse struct {
	RakeCode     string                      `json:"rake_code"`
	Documents    []TransportDocumentResponse `json:"transport_documents"`
	LoadingSlips []LoadingSlipResponse       `json:"loading_slips"`
	Movements    []StockMovementResponse     `json:"stock_movements"`
	Invoices     []InvoiceResponse           `json:"invoices"`
}

// DocumentChainResponse cadena completa de una builty: rake, movimientos y e-bill.
type DocumentChainResponse struct {
	Rake      RakeResponse              `json:"rake"`
	Document  TransportDocumentResponse `json:"document"`
	Movements []StockMovementResponse   `json:"stock_movements"`
	Invoice   *InvoiceResponse          `json:"invoice,omitempty"`
}
