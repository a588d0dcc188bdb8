package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/internal/app"
	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/pkg/config"
	"github.com/jhoicas/fims/pkg/logger"
)

func TestNewInMemory_SubLoggersPorComponente(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	a := app.NewInMemory(config.LedgerConfig{}, logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}))
	admin := entity.Actor{ID: "u-admin", Role: entity.RoleAdmin}

	_, err := a.Rake.Create(ctx, admin, dto.CreateRakeRequest{Code: "RK-LOG", CompanyName: "IFFCO", ProductName: "Urea", RRQuantity: decimal.NewFromInt(10)})
	require.NoError(t, err)
	wh, err := a.Warehouse.Create(ctx, dto.CreateWarehouseRequest{Name: "W"})
	require.NoError(t, err)
	_, err = a.Document.CreateInbound(ctx, admin, dto.CreateInboundDocumentRequest{
		RakeCode:    "RK-LOG",
		Destination: dto.DestinationDTO{Kind: string(entity.DestinationWarehouse), ID: wh.ID},
		Quantity:    decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	components := make(map[string]string)
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		c, _ := entry["component"].(string)
		msg, _ := entry["message"].(string)
		components[msg] = c
	}
	assert.Equal(t, "rakes", components["rake registrado"])
	assert.Equal(t, "ledger", components["builty registrada"])
}
