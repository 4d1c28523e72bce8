package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rutastock-api/internal/application/dto"
	"github.com/jhoicas/rutastock-api/internal/domain"
	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	domledger "github.com/jhoicas/rutastock-api/internal/domain/ledger"
	apphttp "github.com/jhoicas/rutastock-api/internal/interfaces/http"
)

// stubLedger responde con valores fijos o el error configurado; registra los
// argumentos recibidos para verificar el cableado handler → servicio.
type stubLedger struct {
	err          error
	lines        []domledger.DriverInventoryLine
	gotDriverID  string
	gotDest      entity.Destination
	gotThreshold decimal.Decimal
}

func (s *stubLedger) GetDriverInventoryWithAlerts(_ context.Context, driverID string, threshold decimal.Decimal) ([]domledger.DriverInventoryLine, error) {
	s.gotDriverID = driverID
	s.gotThreshold = threshold
	return s.lines, s.err
}

func (s *stubLedger) AddAssignment(_ context.Context, driverID, productID string, quantity decimal.Decimal, createdBy string) (*entity.Assignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Assignment{ID: "A1", DriverID: driverID, ProductID: productID, Quantity: quantity}, nil
}

func (s *stubLedger) TransferStock(_ context.Context, fromDriverID string, dest entity.Destination, productID string, quantity decimal.Decimal, createdBy string) (*entity.StockTransfer, error) {
	s.gotDest = dest
	if s.err != nil {
		return nil, s.err
	}
	tr := &entity.StockTransfer{ID: "T1", FromDriverID: fromDriverID, ProductID: productID, Quantity: quantity}
	if dest.IsPool() {
		tr.TransferType = entity.TransferTypeCollect
	} else {
		toID := dest.DriverID()
		tr.ToDriverID = &toID
		tr.TransferType = entity.TransferTypeTransfer
	}
	return tr, nil
}

func (s *stubLedger) RecordSale(_ context.Context, driverID, productID string, quantity decimal.Decimal, orderID *string, createdBy string) (*entity.Sale, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Sale{ID: "S1", DriverID: driverID, ProductID: productID, Quantity: quantity}, nil
}

func buildLedgerApp(stub *stubLedger) *fiber.App {
	app := fiber.New()
	// Los repos de historial no se ejercitan en estos tests.
	h := apphttp.NewLedgerHandler(stub, nil, nil, nil, 5)
	app.Post("/api/assignments", h.CreateAssignment)
	app.Post("/api/transfers", h.CreateTransfer)
	app.Get("/api/drivers/:id/inventory", h.GetDriverInventory)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateAssignment_Retorna201(t *testing.T) {
	stub := &stubLedger{}
	app := buildLedgerApp(stub)

	resp := postJSON(t, app, "/api/assignments", dto.CreateAssignmentRequest{
		DriverID:  "D1",
		ProductID: "P1",
		Quantity:  decimal.NewFromInt(4),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.AssignmentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "D1", body.DriverID)
	assert.True(t, body.Quantity.Equal(decimal.NewFromInt(4)))
}

func TestCreateAssignment_StockInsuficiente_409ConMontos(t *testing.T) {
	// El 409 lleva disponible y solicitado exactos para la UI.
	stub := &stubLedger{err: domain.NewInsufficientStock(decimal.NewFromInt(3), decimal.NewFromInt(10))}
	app := buildLedgerApp(stub)

	resp := postJSON(t, app, "/api/assignments", dto.CreateAssignmentRequest{
		DriverID:  "D1",
		ProductID: "P1",
		Quantity:  decimal.NewFromInt(10),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.NotNil(t, body.Available)
	require.NotNil(t, body.Requested)
	assert.True(t, body.Available.Equal(decimal.NewFromInt(3)))
	assert.True(t, body.Requested.Equal(decimal.NewFromInt(10)))
}

func TestCreateTransfer_SinDestinoEsCollect(t *testing.T) {
	stub := &stubLedger{}
	app := buildLedgerApp(stub)

	resp := postJSON(t, app, "/api/transfers", dto.CreateTransferRequest{
		FromDriverID: "D1",
		ProductID:    "P1",
		Quantity:     decimal.NewFromInt(2),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, stub.gotDest.IsPool(), "to_driver_id omitido debe mapear a la bodega central")

	var body dto.TransferResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entity.TransferTypeCollect, body.TransferType)
	assert.Nil(t, body.ToDriverID)
}

func TestCreateTransfer_ConDestinoEsTransfer(t *testing.T) {
	stub := &stubLedger{}
	app := buildLedgerApp(stub)

	resp := postJSON(t, app, "/api/transfers", dto.CreateTransferRequest{
		FromDriverID: "D1",
		ToDriverID:   "D2",
		ProductID:    "P1",
		Quantity:     decimal.NewFromInt(2),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.False(t, stub.gotDest.IsPool())
	assert.Equal(t, "D2", stub.gotDest.DriverID())
}

func TestGetDriverInventory_UsaUmbralDelQuery(t *testing.T) {
	stub := &stubLedger{lines: []domledger.DriverInventoryLine{
		{ProductID: "P1", SKU: "SKU-P1", ProductName: "Producto P1",
			Assigned: decimal.NewFromInt(4), Sold: decimal.NewFromInt(1),
			Remaining: decimal.NewFromInt(3), AlertLevel: domledger.AlertWarning},
	}}
	app := buildLedgerApp(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/drivers/D1/inventory?threshold=8", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "D1", stub.gotDriverID)
	assert.True(t, stub.gotThreshold.Equal(decimal.NewFromInt(8)))

	var body dto.DriverInventoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Lines, 1)
	assert.Equal(t, domledger.AlertWarning, body.Lines[0].AlertLevel)
}

func TestGetDriverInventory_ConductorInexistente_404(t *testing.T) {
	stub := &stubLedger{err: domain.ErrNotFound}
	app := buildLedgerApp(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/drivers/D-fantasma/inventory", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
