package dto

import (
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/stock"
)

// FromRake convierte la entidad en respuesta.
func FromRake(r *entity.Rake) RakeResponse {
	return RakeResponse{
		ID:            r.ID,
		Code:          r.Code,
		CompanyName:   r.CompanyName,
		CompanyCode:   r.CompanyCode,
		ProductName:   r.ProductName,
		ProductCode:   r.ProductCode,
		RakePointName: r.RakePointName,
		Date:          r.Date,
		RRQuantity:    r.RRQuantity,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
	}
}

// FromRakeBalance convierte el saldo calculado en respuesta.
func FromRakeBalance(b stock.RakeBalance) RakeBalanceResponse {
	return RakeBalanceResponse{
		RakeCode:  b.RakeCode,
		Receipted: b.Receipted,
		StockIn:   b.StockIn,
		StockOut:  b.StockOut,
		Balance:   b.Balance,
	}
}

// FromDocument convierte una builty en respuesta.
func FromDocument(d *entity.TransportDocument) TransportDocumentResponse {
	return TransportDocumentResponse{
		ID:                d.ID,
		Number:            d.Number,
		Variant:           string(d.Variant),
		RakeCode:          d.RakeCode,
		Destination:       DestinationDTO{Kind: string(d.Destination.Kind), ID: d.Destination.ID},
		SourceWarehouseID: d.SourceWarehouseID,
		TruckID:           d.TruckID,
		Date:              d.Date,
		RakePointName:     d.RakePointName,
		LoadingPoint:      d.LoadingPoint,
		UnloadingPoint:    d.UnloadingPoint,
		GoodsName:         d.GoodsName,
		Bags:              d.Bags,
		KgPerBag:          d.KgPerBag,
		Quantity:          d.Quantity,
		RatePerMT:         d.RatePerMT,
		TotalFreight:      d.TotalFreight,
		LRNumber:          d.LRNumber,
		CreatedByRole:     d.CreatedByRole,
		CreatedBy:         d.CreatedBy,
		CreatedAt:         d.CreatedAt,
	}
}

// FromDocuments convierte una lista de builties.
func FromDocuments(list []*entity.TransportDocument) []TransportDocumentResponse {
	out := make([]TransportDocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, FromDocument(d))
	}
	return out
}

// FromMovement convierte un movimiento en respuesta.
func FromMovement(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:          m.ID,
		WarehouseID: m.WarehouseID,
		DocumentID:  m.DocumentID,
		Direction:   string(m.Direction),
		Quantity:    m.Quantity,
		Date:        m.Date,
		Actor:       m.Actor,
		Notes:       m.Notes,
		ReversalOf:  m.ReversalOf,
		CreatedAt:   m.CreatedAt,
	}
}

// FromMovements convierte una lista de movimientos.
func FromMovements(list []*entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromLoadingSlip convierte un loading slip en respuesta.
func FromLoadingSlip(s *entity.LoadingSlip) LoadingSlipResponse {
	return LoadingSlipResponse{
		ID:               s.ID,
		RakeCode:         s.RakeCode,
		Serial:           s.Serial,
		LoadingPointName: s.LoadingPointName,
		DestinationName:  s.DestinationName,
		AccountID:        s.AccountID,
		WarehouseID:      s.WarehouseID,
		Bags:             s.Bags,
		Quantity:         s.Quantity,
		TruckID:          s.TruckID,
		WagonNumber:      s.WagonNumber,
		GoodsName:        s.GoodsName,
		DocumentID:       s.DocumentID,
		CreatedBy:        s.CreatedBy,
		CreatedAt:        s.CreatedAt,
	}
}

// FromLoadingSlips convierte una lista de loading slips.
func FromLoadingSlips(list []*entity.LoadingSlip) []LoadingSlipResponse {
	out := make([]LoadingSlipResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromLoadingSlip(s))
	}
	return out
}

// FromInvoice convierte una e-bill en respuesta.
func FromInvoice(i *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               i.ID,
		Number:           i.Number,
		DocumentID:       i.DocumentID,
		Amount:           i.Amount,
		Tax:              i.Tax,
		Total:            i.Total(),
		ComplianceDocRef: i.ComplianceDocRef,
		IssueDate:        i.IssueDate,
		CreatedBy:        i.CreatedBy,
		CreatedAt:        i.CreatedAt,
	}
}

// FromInvoices convierte una lista de e-bills.
func FromInvoices(list []*entity.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, i := range list {
		out = append(out, FromInvoice(i))
	}
	return out
}

// FromRakeStock convierte el saldo de un rake en bodega.
func FromRakeStock(s stock.RakeStock) RakeStockResponse {
	return RakeStockResponse{
		RakeCode: s.RakeCode,
		RakeDate: s.RakeDate,
		StockIn:  s.Totals.In,
		StockOut: s.Totals.Out,
		Balance:  s.Totals.Balance(),
	}
}
