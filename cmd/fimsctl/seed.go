package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/app"
	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/domain/entity"
)

type seedResult struct {
	Rake      *dto.RakeResponse              `json:"rake"`
	Warehouse *dto.WarehouseResponse         `json:"warehouse"`
	Account   *dto.AccountResponse           `json:"account"`
	Truck     *dto.TruckResponse             `json:"truck"`
	Document  *dto.TransportDocumentResponse `json:"document"`
	StockIn   *dto.StockInResponse           `json:"stock_in"`
	Balance   *dto.RakeBalanceResponse       `json:"balance"`
}

// seed registra un rake de 100 MT, una builty de 40 MT hacia bodega y su entrada completa.
func seed(ctx context.Context, a *app.App, rakeCode string) (*seedResult, error) {
	admin := entity.Actor{ID: "seed", Role: entity.RoleAdmin}
	out := &seedResult{}
	var err error

	if out.Warehouse, err = a.Warehouse.Create(ctx, dto.CreateWarehouseRequest{
		Name: "Bodega Central", Location: "Patio 1", Capacity: decimal.NewFromInt(500),
	}); err != nil {
		return nil, fmt.Errorf("bodega: %w", err)
	}
	if out.Account, err = a.Account.Create(ctx, dto.CreateAccountRequest{
		Name: "Dealer Demo", Type: entity.AccountTypeDealer,
	}); err != nil {
		return nil, fmt.Errorf("cuenta: %w", err)
	}
	if out.Truck, err = a.Truck.Create(ctx, dto.CreateTruckRequest{
		Number: "TRK-" + rakeCode, DriverName: "Conductor Demo",
	}); err != nil {
		return nil, fmt.Errorf("camión: %w", err)
	}
	if out.Rake, err = a.Rake.Create(ctx, admin, dto.CreateRakeRequest{
		Code:          rakeCode,
		CompanyName:   "Fertilizantes Demo",
		ProductName:   "Urea",
		RakePointName: "Rake Point Norte",
		RRQuantity:    decimal.NewFromInt(100),
	}); err != nil {
		return nil, fmt.Errorf("rake: %w", err)
	}
	if out.Document, err = a.Document.CreateInbound(ctx, admin, dto.CreateInboundDocumentRequest{
		FreightDTO: dto.FreightDTO{
			TruckID:   out.Truck.ID,
			GoodsName: "Urea",
			Bags:      800,
			KgPerBag:  decimal.NewFromInt(50),
			RatePerMT: decimal.NewFromInt(120),
		},
		RakeCode:    rakeCode,
		Destination: dto.DestinationDTO{Kind: string(entity.DestinationWarehouse), ID: out.Warehouse.ID},
		Quantity:    decimal.NewFromInt(40),
	}); err != nil {
		return nil, fmt.Errorf("builty: %w", err)
	}
	if out.StockIn, err = a.Document.StockIn(ctx, admin, dto.StockInRequest{
		DocumentID:  out.Document.ID,
		WarehouseID: out.Warehouse.ID,
		Quantity:    decimal.NewFromInt(40),
		Notes:       "seed",
	}); err != nil {
		return nil, fmt.Errorf("entrada: %w", err)
	}
	if out.Balance, err = a.Rake.Balance(ctx, rakeCode); err != nil {
		return nil, fmt.Errorf("saldo: %w", err)
	}
	return out, nil
}
