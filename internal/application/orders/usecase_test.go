package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rutastock-api/internal/application/dto"
	appledger "github.com/jhoicas/rutastock-api/internal/application/ledger"
	"github.com/jhoicas/rutastock-api/internal/application/orders"
	"github.com/jhoicas/rutastock-api/internal/domain"
	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	domledger "github.com/jhoicas/rutastock-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: store transaccional con rollback por snapshot, igual que
// una transacción real confirma o revierte el pedido completo con sus ventas.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	products map[string]entity.Product
	stock    map[string]decimal.Decimal // driverID|productID
	sales    []*entity.Sale
	orders   []*entity.Order
}

func stockKey(driverID, productID string) string { return driverID + "|" + productID }

type snapshot struct {
	products map[string]entity.Product
	stock    map[string]decimal.Decimal
	nSales   int
	nOrders  int
}

func (s *memStore) snap() snapshot {
	sn := snapshot{
		products: make(map[string]entity.Product, len(s.products)),
		stock:    make(map[string]decimal.Decimal, len(s.stock)),
		nSales:   len(s.sales),
		nOrders:  len(s.orders),
	}
	for k, v := range s.products {
		sn.products[k] = v
	}
	for k, v := range s.stock {
		sn.stock[k] = v
	}
	return sn
}

func (s *memStore) restore(sn snapshot) {
	s.products = sn.products
	s.stock = sn.stock
	s.sales = s.sales[:sn.nSales]
	s.orders = s.orders[:sn.nOrders]
}

type fakeTxRunner struct{ store *memStore }

func (f *fakeTxRunner) Run(_ context.Context, fn func(r appledger.TxRepos) error) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	sn := f.store.snap()
	repos := appledger.TxRepos{
		Products:    &memProductRepo{s: f.store},
		DriverStock: &memStockRepo{s: f.store},
		Sales:       &memSaleRepo{s: f.store},
		Orders:      &memOrderRepo{s: f.store},
	}
	if err := fn(repos); err != nil {
		f.store.restore(sn)
		return err
	}
	return nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = *p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}
func (r *memProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}
func (r *memProductRepo) UpdateTotalQuantity(id string, q decimal.Decimal) error {
	p := r.s.products[id]
	p.TotalQuantity = q
	r.s.products[id] = p
	return nil
}
func (r *memProductRepo) Update(p *entity.Product) error           { r.s.products[p.ID] = *p; return nil }
func (r *memProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Archive(string) error                     { return nil }

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(driverID, productID string) (*entity.DriverStock, error) {
	return &entity.DriverStock{
		DriverID:  driverID,
		ProductID: productID,
		Quantity:  r.s.stock[stockKey(driverID, productID)],
	}, nil
}
func (r *memStockRepo) GetForUpdate(driverID, productID string) (*entity.DriverStock, error) {
	return r.Get(driverID, productID)
}
func (r *memStockRepo) Upsert(st *entity.DriverStock) error {
	r.s.stock[stockKey(st.DriverID, st.ProductID)] = st.Quantity
	return nil
}

func (r *memStockRepo) AddQuantity(driverID, productID string, delta decimal.Decimal) error {
	key := stockKey(driverID, productID)
	r.s.stock[key] = r.s.stock[key].Add(delta)
	return nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error { r.s.sales = append(r.s.sales, sale); return nil }
func (r *memSaleRepo) ListByDriver(driverID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.DriverID == driverID {
			out = append(out, sale)
		}
	}
	return out, nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(o *entity.Order) error { r.s.orders = append(r.s.orders, o); return nil }
func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	for _, o := range r.s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}
func (r *memOrderRepo) ListByDriver(driverID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.DriverID == driverID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeDriverRepo struct{ drivers map[string]*entity.Driver }

func (r *fakeDriverRepo) Create(d *entity.Driver) error             { r.drivers[d.ID] = d; return nil }
func (r *fakeDriverRepo) GetByID(id string) (*entity.Driver, error) { return r.drivers[id], nil }
func (r *fakeDriverRepo) Update(d *entity.Driver) error             { r.drivers[d.ID] = d; return nil }
func (r *fakeDriverRepo) List(int, int) ([]*entity.Driver, error)   { return nil, nil }
func (r *fakeDriverRepo) Archive(string) error                      { return nil }

type noopInventoryRepo struct{}

func (noopInventoryRepo) LinesByDriver(string) ([]domledger.DriverInventoryLine, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

// capturePublisher acumula los eventos publicados.
type capturePublisher struct {
	mu     sync.Mutex
	events []appledger.Event
}

func (p *capturePublisher) Publish(_ context.Context, ev appledger.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) all() []appledger.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]appledger.Event(nil), p.events...)
}

type orderFixture struct {
	store     *memStore
	drivers   *fakeDriverRepo
	publisher *capturePublisher
	uc        *orders.OrderUseCase
}

func newOrderFixture() *orderFixture {
	store := &memStore{
		products: make(map[string]entity.Product),
		stock:    make(map[string]decimal.Decimal),
	}
	runner := &fakeTxRunner{store: store}
	drivers := &fakeDriverRepo{drivers: make(map[string]*entity.Driver)}
	publisher := &capturePublisher{}
	ledgerUC := appledger.NewLedgerUseCase(runner, drivers, &memProductRepo{s: store}, noopInventoryRepo{}, publisher)
	uc := orders.NewOrderUseCase(runner, ledgerUC, drivers, &memOrderRepo{s: store})
	return &orderFixture{store: store, drivers: drivers, publisher: publisher, uc: uc}
}

func (f *orderFixture) addDriver(id string) {
	f.drivers.drivers[id] = &entity.Driver{ID: id, Name: "Conductor " + id, Status: entity.StatusActive}
}

func (f *orderFixture) addProduct(id string, price int64) {
	f.store.products[id] = entity.Product{
		ID:     id,
		SKU:    "SKU-" + id,
		Name:   "Producto " + id,
		Price:  decimal.NewFromInt(price),
		Status: entity.StatusActive,
	}
}

func (f *orderFixture) setStock(driverID, productID string, qty int64) {
	f.store.stock[stockKey(driverID, productID)] = decimal.NewFromInt(qty)
}

func (f *orderFixture) stockOf(driverID, productID string) decimal.Decimal {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.stock[stockKey(driverID, productID)]
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_DescuentaTodasLasLineas(t *testing.T) {
	f := newOrderFixture()
	f.addDriver("D1")
	f.addProduct("P1", 100)
	f.addProduct("P2", 250)
	f.setStock("D1", "P1", 5)
	f.setStock("D1", "P2", 3)

	resp, err := f.uc.PlaceOrder(context.Background(), dto.CreateOrderRequest{
		DriverID:     "D1",
		CustomerName: "Tienda La Esquina",
		Lines: []dto.OrderLineRequest{
			{ProductID: "P1", Quantity: dec(2)},
			{ProductID: "P2", Quantity: dec(1)},
		},
	}, "vendedor-1")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.OrderStatusFulfilled, resp.Status)
	assert.True(t, resp.Total.Equal(dec(450)), "total = 2*100 + 1*250, obtenido %s", resp.Total)
	require.Len(t, resp.Lines, 2)
	assert.True(t, resp.Lines[0].Subtotal.Equal(dec(200)))
	assert.True(t, resp.Lines[1].Subtotal.Equal(dec(250)))

	// Stock descontado por cada línea.
	assert.True(t, f.stockOf("D1", "P1").Equal(dec(3)))
	assert.True(t, f.stockOf("D1", "P2").Equal(dec(2)))

	// Cada línea dejó su evento de venta, enlazado al pedido.
	require.Len(t, f.store.sales, 2)
	for _, sale := range f.store.sales {
		require.NotNil(t, sale.OrderID)
		assert.Equal(t, resp.ID, *sale.OrderID)
	}
	require.Len(t, f.store.orders, 1)
}

func TestPlaceOrder_TodoONada(t *testing.T) {
	// La segunda línea excede el stock: el pedido completo se revierte,
	// incluida la primera línea que sí tenía stock.
	f := newOrderFixture()
	f.addDriver("D1")
	f.addProduct("P1", 100)
	f.addProduct("P2", 250)
	f.setStock("D1", "P1", 5)
	f.setStock("D1", "P2", 1)

	_, err := f.uc.PlaceOrder(context.Background(), dto.CreateOrderRequest{
		DriverID: "D1",
		Lines: []dto.OrderLineRequest{
			{ProductID: "P1", Quantity: dec(2)},
			{ProductID: "P2", Quantity: dec(3)},
		},
	}, "vendedor-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuff *domain.InsufficientStockError
	require.True(t, errors.As(err, &insuff))
	assert.True(t, insuff.Available.Equal(dec(1)))
	assert.True(t, insuff.Requested.Equal(dec(3)))

	// Nada cambió.
	assert.True(t, f.stockOf("D1", "P1").Equal(dec(5)), "la línea válida también se revierte")
	assert.True(t, f.stockOf("D1", "P2").Equal(dec(1)))
	assert.Empty(t, f.store.sales)
	assert.Empty(t, f.store.orders)
	assert.Empty(t, f.publisher.all(), "un pedido revertido no publica eventos")
}

// Toda mutación confirmada del ledger se publica, incluidas las ventas que
// nacen de un pedido: un evento sale.recorded por línea, después del commit.
func TestPlaceOrder_PublicaEventoPorLinea(t *testing.T) {
	f := newOrderFixture()
	f.addDriver("D1")
	f.addProduct("P1", 100)
	f.addProduct("P2", 250)
	f.setStock("D1", "P1", 5)
	f.setStock("D1", "P2", 3)

	resp, err := f.uc.PlaceOrder(context.Background(), dto.CreateOrderRequest{
		DriverID: "D1",
		Lines: []dto.OrderLineRequest{
			{ProductID: "P1", Quantity: dec(2)},
			{ProductID: "P2", Quantity: dec(1)},
		},
	}, "vendedor-1")
	require.NoError(t, err)

	events := f.publisher.all()
	require.Len(t, events, 2, "un evento por línea del pedido")
	for i, ev := range events {
		assert.Equal(t, appledger.EventSaleRecorded, ev.Type)
		assert.Equal(t, "D1", ev.DriverID)
		assert.Equal(t, resp.ID, ev.OrderID, "el evento enlaza al pedido que originó la venta")
		assert.Equal(t, resp.Lines[i].ProductID, ev.ProductID)
		assert.True(t, ev.Quantity.Equal(resp.Lines[i].Quantity))
	}
}

func TestPlaceOrder_RechazaEntradaInvalida(t *testing.T) {
	f := newOrderFixture()
	f.addDriver("D1")

	_, err := f.uc.PlaceOrder(context.Background(), dto.CreateOrderRequest{DriverID: "D1"}, "vendedor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "pedido sin líneas")

	_, err = f.uc.PlaceOrder(context.Background(), dto.CreateOrderRequest{
		DriverID: "D1",
		Lines:    []dto.OrderLineRequest{{ProductID: "P1", Quantity: dec(0)}},
	}, "vendedor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "línea con cantidad cero")
}

func TestPlaceOrder_RechazaConductorArchivado(t *testing.T) {
	f := newOrderFixture()
	f.addDriver("D1")
	f.drivers.drivers["D1"].Status = entity.StatusArchived
	f.addProduct("P1", 100)
	f.setStock("D1", "P1", 5)

	_, err := f.uc.PlaceOrder(context.Background(), dto.CreateOrderRequest{
		DriverID: "D1",
		Lines:    []dto.OrderLineRequest{{ProductID: "P1", Quantity: dec(1)}},
	}, "vendedor-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlaceOrder_RechazaProductoInexistente(t *testing.T) {
	f := newOrderFixture()
	f.addDriver("D1")

	_, err := f.uc.PlaceOrder(context.Background(), dto.CreateOrderRequest{
		DriverID: "D1",
		Lines:    []dto.OrderLineRequest{{ProductID: "P-fantasma", Quantity: dec(1)}},
	}, "vendedor-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.orders)
}

func TestGetByID_YListByDriver(t *testing.T) {
	f := newOrderFixture()
	f.addDriver("D1")
	f.addProduct("P1", 100)
	f.setStock("D1", "P1", 5)

	placed, err := f.uc.PlaceOrder(context.Background(), dto.CreateOrderRequest{
		DriverID: "D1",
		Lines:    []dto.OrderLineRequest{{ProductID: "P1", Quantity: dec(2)}},
	}, "vendedor-1")
	require.NoError(t, err)

	got, err := f.uc.GetByID(context.Background(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
	assert.True(t, got.Total.Equal(dec(200)))

	list, err := f.uc.ListByDriver(context.Background(), "D1", 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, placed.ID, list.Items[0].ID)

	_, err = f.uc.GetByID(context.Background(), "pedido-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
