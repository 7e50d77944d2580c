package order_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fitahiana66/GestionStock/internal/application/dto"
	"github.com/Fitahiana66/GestionStock/internal/application/order"
	"github.com/Fitahiana66/GestionStock/internal/domain"
	"github.com/Fitahiana66/GestionStock/internal/domain/entity"
	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	items  []*entity.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) CreateItem(it *entity.OrderItem) error {
	clone := *it
	r.items = append(r.items, &clone)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOrderRepo) Update(o *entity.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) List(limit, offset int) ([]*entity.OrderSummary, error) {
	var out []*entity.OrderSummary
	for _, o := range r.orders {
		out = append(out, &entity.OrderSummary{Order: *o})
	}
	return out, nil
}

func (r *fakeOrderRepo) ListItems(orderID string) ([]*entity.OrderItemDetail, error) {
	var out []*entity.OrderItemDetail
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, &entity.OrderItemDetail{OrderItem: *it, ProductName: "Producto " + it.ProductID})
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetBySKUAndWarehouse(sku, warehouseID string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku && p.WarehouseID == warehouseID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKUAndWarehouseForUpdate(sku, warehouseID string) (*entity.Product, error) {
	return r.GetBySKUAndWarehouse(sku, warehouseID)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	clone := *m
	r.movements = append(r.movements, &clone)
	return nil
}

func (r *fakeMovementRepo) ListDetails(limit, offset int) ([]*entity.StockMovementDetail, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error        { return nil }
func (r *fakeSupplierRepo) List() ([]*entity.Supplier, error)      { return nil, nil }
func (r *fakeSupplierRepo) Delete(id string) error                 { return nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }

// fakeTxRunner simula el rollback restaurando el estado previo si el
// callback devuelve error.
type fakeTxRunner struct {
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (r *fakeTxRunner) RunOrder(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	orderSnap := make(map[string]*entity.Order, len(r.orders.orders))
	for id, o := range r.orders.orders {
		clone := *o
		orderSnap[id] = &clone
	}
	itemSnap := len(r.orders.items)
	productSnap := make(map[string]*entity.Product, len(r.products.products))
	for id, p := range r.products.products {
		clone := *p
		productSnap[id] = &clone
	}
	movementSnap := len(r.movements.movements)

	if err := fn(r.orders, r.products, r.movements); err != nil {
		r.orders.orders = orderSnap
		r.orders.items = r.orders.items[:itemSnap]
		r.products.products = productSnap
		r.movements.movements = r.movements.movements[:movementSnap]
		return err
	}
	return nil
}

type fixture struct {
	uc        *order.UseCase
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func newFixture() *fixture {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	movements := &fakeMovementRepo{}
	runner := &fakeTxRunner{orders: orders, products: products, movements: movements}
	suppliers := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Proveedor Uno"},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Name: "Ana"},
	}}
	return &fixture{
		uc:        order.NewUseCase(runner, orders, suppliers, users),
		orders:    orders,
		products:  products,
		movements: movements,
	}
}

func (f *fixture) seedProduct(t *testing.T, p entity.Product) {
	t.Helper()
	require.NoError(t, f.products.Create(&p))
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — compras
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_Compra_SumaStockYActualizaCosto(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Teclado", Quantity: 5,
		Cost: decimal.NewFromInt(2), WarehouseID: "wh-1",
	})

	out, err := f.uc.Create(context.Background(), "user-1", dto.CreateOrderRequest{
		Type:       entity.OrderTypePurchase,
		SupplierID: "sup-1",
		Items: []dto.OrderItemRequest{
			{ProductID: "p-1", Quantity: 3, UnitPrice: decimal.RequireFromString("4.50")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, "13.50", out.TotalAmount.StringFixed(2), "total = Σ cantidad × precio unitario")

	p, _ := f.products.GetByID("p-1")
	assert.Equal(t, 8, p.Quantity)
	assert.Equal(t, "4.50", p.Cost.StringFixed(2), "costeo a última compra")

	require.Len(t, f.movements.movements, 1)
	m := f.movements.movements[0]
	assert.Equal(t, entity.MovementTypeIN, m.Type)
	assert.Equal(t, 3, m.Quantity)
	assert.Equal(t, entity.ReasonPurchaseOrder, m.Reason)

	require.Len(t, f.orders.items, 1)
	assert.Equal(t, out.ID, f.orders.items[0].OrderID)
}

func TestCreateOrder_CompraSinProveedor(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateOrderRequest{
		Type: entity.OrderTypePurchase,
		Items: []dto.OrderItemRequest{
			{ProductID: "p-1", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_Venta_RestaStock(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Teclado", Quantity: 10, WarehouseID: "wh-1",
	})

	out, err := f.uc.Create(context.Background(), "user-1", dto.CreateOrderRequest{
		Type: entity.OrderTypeSale,
		Items: []dto.OrderItemRequest{
			{ProductID: "p-1", Quantity: 4, UnitPrice: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "8.00", out.TotalAmount.StringFixed(2))
	assert.Empty(t, out.SupplierID, "las ventas no llevan proveedor")

	p, _ := f.products.GetByID("p-1")
	assert.Equal(t, 6, p.Quantity)

	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, entity.MovementTypeOUT, f.movements.movements[0].Type)
	assert.Equal(t, entity.ReasonSale, f.movements.movements[0].Reason)
}

func TestCreateOrder_VentaStockInsuficiente_RevierteTodo(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Teclado", Quantity: 10, WarehouseID: "wh-1",
	})
	f.seedProduct(t, entity.Product{
		ID: "p-2", SKU: "SKU-2", Name: "Mouse", Quantity: 1, WarehouseID: "wh-1",
	})

	// La primera línea es válida; la segunda falla. Nada debe persistir.
	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateOrderRequest{
		Type: entity.OrderTypeSale,
		Items: []dto.OrderItemRequest{
			{ProductID: "p-1", Quantity: 4, UnitPrice: decimal.NewFromInt(2)},
			{ProductID: "p-2", Quantity: 5, UnitPrice: decimal.NewFromInt(3)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p1, _ := f.products.GetByID("p-1")
	assert.Equal(t, 10, p1.Quantity, "la línea válida también debe revertirse")
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.orders.items)
	assert.Empty(t, f.movements.movements)
}

func TestCreateOrder_ProductoInexistente_RevierteTodo(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateOrderRequest{
		Type: entity.OrderTypeSale,
		Items: []dto.OrderItemRequest{
			{ProductID: "missing", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.movements.movements)
}

func TestCreateOrder_SinLineas(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateOrderRequest{
		Type: entity.OrderTypeSale,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_ReenvioCreaOrdenIndependiente(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Teclado", Quantity: 10, WarehouseID: "wh-1",
	})

	req := dto.CreateOrderRequest{
		Type: entity.OrderTypeSale,
		Items: []dto.OrderItemRequest{
			{ProductID: "p-1", Quantity: 2, UnitPrice: decimal.NewFromInt(2)},
		},
	}
	first, err := f.uc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)

	// No hay deduplicación: el mismo body produce dos órdenes y dos efectos.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, f.orders.orders, 2)
	p, _ := f.products.GetByID("p-1")
	assert.Equal(t, 6, p.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus / detalles
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_TransicionLibre(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.orders.Create(&entity.Order{
		ID: "o-1", Type: entity.OrderTypeSale, Status: entity.OrderStatusDelivered,
	}))

	// Cualquier transición entre estados conocidos se acepta (override administrativo).
	out, err := f.uc.UpdateStatus(context.Background(), "o-1", dto.UpdateOrderRequest{
		Status: entity.OrderStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.orders.Create(&entity.Order{
		ID: "o-1", Type: entity.OrderTypeSale, Status: entity.OrderStatusPending,
	}))

	_, err := f.uc.UpdateStatus(context.Background(), "o-1", dto.UpdateOrderRequest{
		Status: "archived",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.uc.UpdateStatus(context.Background(), "missing", dto.UpdateOrderRequest{
		Status: entity.OrderStatusShipped,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetDetails_ResuelveNombresYLineas(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Teclado", Quantity: 5, WarehouseID: "wh-1",
	})

	created, err := f.uc.Create(context.Background(), "user-1", dto.CreateOrderRequest{
		Type:       entity.OrderTypePurchase,
		SupplierID: "sup-1",
		Items: []dto.OrderItemRequest{
			{ProductID: "p-1", Quantity: 2, UnitPrice: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	detail, err := f.uc.GetDetails(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Proveedor Uno", detail.SupplierName)
	assert.Equal(t, "Ana", detail.UserName)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "p-1", detail.Items[0].ProductID)
	assert.Equal(t, 2, detail.Items[0].Quantity)
}

func TestGetDetails_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.uc.GetDetails(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
