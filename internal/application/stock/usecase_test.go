package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fitahiana66/GestionStock/internal/application/dto"
	"github.com/Fitahiana66/GestionStock/internal/application/stock"
	"github.com/Fitahiana66/GestionStock/internal/domain"
	"github.com/Fitahiana66/GestionStock/internal/domain/entity"
	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU && existing.WarehouseID == p.WarehouseID {
			return domain.ErrDuplicate
		}
	}
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
		if filter.WarehouseID != "" && p.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.MaxQuantity != nil && p.Quantity > *filter.MaxQuantity {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) snapshot() map[string]*entity.Product {
	snap := make(map[string]*entity.Product, len(r.products))
	for id, p := range r.products {
		clone := *p
		snap[id] = &clone
	}
	return snap
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
	var out []*entity.StockMovementDetail
	for _, m := range r.movements {
		out = append(out, &entity.StockMovementDetail{StockMovement: *m})
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback sobre los fakes y simula el rollback
// restaurando el estado previo si el callback devuelve error.
type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	productSnap := r.products.snapshot()
	movementSnap := len(r.movements.movements)
	if err := fn(r.products, r.movements); err != nil {
		r.products.products = productSnap
		r.movements.movements = r.movements.movements[:movementSnap]
		return err
	}
	return nil
}

func newStockFixture() (*stock.UseCase, *fakeProductRepo, *fakeMovementRepo) {
	products := newFakeProductRepo()
	movements := &fakeMovementRepo{}
	runner := &fakeTxRunner{products: products, movements: movements}
	return stock.NewUseCase(runner, products, movements), products, movements
}

func seedProduct(t *testing.T, repo *fakeProductRepo, p entity.Product) {
	t.Helper()
	require.NoError(t, repo.Create(&p))
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_RegistraAsientoInicial(t *testing.T) {
	uc, products, movements := newStockFixture()

	out, err := uc.CreateProduct(context.Background(), "user-1", dto.CreateProductRequest{
		SKU:         "SKU-1",
		Name:        "Teclado",
		Quantity:    10,
		Price:       decimal.NewFromInt(30),
		WarehouseID: "wh-1",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	stored, err := products.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 10, stored.Quantity)

	require.Len(t, movements.movements, 1)
	m := movements.movements[0]
	assert.Equal(t, entity.MovementTypeIN, m.Type)
	assert.Equal(t, 10, m.Quantity)
	assert.Equal(t, entity.ReasonInitialStock, m.Reason)
	assert.Equal(t, out.ID, m.ProductID)
	assert.Equal(t, "user-1", m.UserID)
}

func TestCreateProduct_SinStockInicial_NoAsienta(t *testing.T) {
	uc, _, movements := newStockFixture()

	_, err := uc.CreateProduct(context.Background(), "user-1", dto.CreateProductRequest{
		SKU:         "SKU-1",
		Name:        "Teclado",
		Quantity:    0,
		WarehouseID: "wh-1",
	})
	require.NoError(t, err)
	assert.Empty(t, movements.movements, "cantidad inicial cero no debe generar asiento")
}

func TestCreateProduct_UmbralPorDefecto(t *testing.T) {
	uc, _, _ := newStockFixture()

	out, err := uc.CreateProduct(context.Background(), "user-1", dto.CreateProductRequest{
		SKU:         "SKU-1",
		Name:        "Teclado",
		Quantity:    3,
		WarehouseID: "wh-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, out.LowStockThreshold)
	assert.True(t, out.IsLowStock, "3 <= 5 debe marcar stock bajo")
}

func TestCreateProduct_SKUDuplicadoEnBodega(t *testing.T) {
	uc, products, _ := newStockFixture()
	seedProduct(t, products, entity.Product{ID: "p-1", SKU: "SKU-1", Name: "Teclado", WarehouseID: "wh-1"})

	_, err := uc.CreateProduct(context.Background(), "user-1", dto.CreateProductRequest{
		SKU:         "SKU-1",
		Name:        "Otro",
		WarehouseID: "wh-1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_DeltaPositivo_AsientaEntrada(t *testing.T) {
	uc, products, movements := newStockFixture()
	seedProduct(t, products, entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Teclado", Quantity: 5,
		LowStockThreshold: 5, WarehouseID: "wh-1",
	})

	out, err := uc.UpdateProduct(context.Background(), "user-1", "p-1", dto.UpdateProductRequest{
		Name: "Teclado", Quantity: 8, LowStockThreshold: 5, WarehouseID: "wh-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, out.Quantity)

	require.Len(t, movements.movements, 1)
	m := movements.movements[0]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, m.Type)
	assert.Equal(t, 3, m.Quantity, "el asiento registra la magnitud del delta")
	assert.Equal(t, entity.ReasonAdjustmentIn, m.Reason)
}

func TestUpdateProduct_DeltaNegativo_AsientaSalida(t *testing.T) {
	uc, products, movements := newStockFixture()
	seedProduct(t, products, entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Teclado", Quantity: 8,
		LowStockThreshold: 5, WarehouseID: "wh-1",
	})

	_, err := uc.UpdateProduct(context.Background(), "user-1", "p-1", dto.UpdateProductRequest{
		Name: "Teclado", Quantity: 2, LowStockThreshold: 5, WarehouseID: "wh-1",
	})
	require.NoError(t, err)

	require.Len(t, movements.movements, 1)
	m := movements.movements[0]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, m.Type)
	assert.Equal(t, 6, m.Quantity)
	assert.Equal(t, entity.ReasonAdjustmentOut, m.Reason)
}

func TestUpdateProduct_SinCambioDeCantidad_NoAsienta(t *testing.T) {
	uc, products, movements := newStockFixture()
	seedProduct(t, products, entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Teclado", Quantity: 5,
		LowStockThreshold: 5, WarehouseID: "wh-1",
	})

	_, err := uc.UpdateProduct(context.Background(), "user-1", "p-1", dto.UpdateProductRequest{
		Name: "Teclado mecánico", Quantity: 5, LowStockThreshold: 5, WarehouseID: "wh-1",
	})
	require.NoError(t, err)
	assert.Empty(t, movements.movements, "cambiar solo metadatos no debe generar asiento")
}

func TestUpdateProduct_NoExiste(t *testing.T) {
	uc, _, movements := newStockFixture()

	_, err := uc.UpdateProduct(context.Background(), "user-1", "missing", dto.UpdateProductRequest{
		Name: "Teclado", Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movements.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_DestinoExistente_FusionaPorSKU(t *testing.T) {
	uc, products, movements := newStockFixture()
	seedProduct(t, products, entity.Product{
		ID: "p-src", SKU: "SKU-1", Name: "Teclado", Quantity: 10, WarehouseID: "wh-1",
	})
	seedProduct(t, products, entity.Product{
		ID: "p-dst", SKU: "SKU-1", Name: "Teclado", Quantity: 2, WarehouseID: "wh-2",
	})

	err := uc.Transfer(context.Background(), "user-1", dto.TransferStockRequest{
		ProductID: "p-src", FromWarehouseID: "wh-1", ToWarehouseID: "wh-2", Quantity: 4,
	})
	require.NoError(t, err)

	src, _ := products.GetByID("p-src")
	dst, _ := products.GetByID("p-dst")
	assert.Equal(t, 6, src.Quantity)
	assert.Equal(t, 6, dst.Quantity)

	require.Len(t, movements.movements, 2)
	out, in := movements.movements[0], movements.movements[1]
	assert.Equal(t, entity.MovementTypeOUT, out.Type)
	assert.Equal(t, "p-src", out.ProductID)
	assert.Equal(t, entity.ReasonTransferOut, out.Reason)
	assert.Equal(t, entity.MovementTypeIN, in.Type)
	assert.Equal(t, "p-dst", in.ProductID, "el asiento de entrada referencia el producto destino")
	assert.Equal(t, entity.ReasonTransferIn, in.Reason)
	assert.Equal(t, 4, out.Quantity)
	assert.Equal(t, 4, in.Quantity)
}

func TestTransfer_DestinoNuevo_CreaProducto(t *testing.T) {
	uc, products, movements := newStockFixture()
	seedProduct(t, products, entity.Product{
		ID: "p-src", SKU: "SKU-1", Name: "Teclado", Quantity: 10,
		LowStockThreshold: 3, Price: decimal.NewFromInt(30), WarehouseID: "wh-1",
	})

	err := uc.Transfer(context.Background(), "user-1", dto.TransferStockRequest{
		ProductID: "p-src", FromWarehouseID: "wh-1", ToWarehouseID: "wh-2", Quantity: 4,
	})
	require.NoError(t, err)

	dst, err := products.GetBySKUAndWarehouse("SKU-1", "wh-2")
	require.NoError(t, err)
	require.NotNil(t, dst, "debe crearse el producto en la bodega destino")
	assert.Equal(t, 4, dst.Quantity)
	assert.Equal(t, "Teclado", dst.Name)
	assert.Equal(t, 3, dst.LowStockThreshold, "el destino hereda el umbral del origen")
	assert.NotEqual(t, "p-src", dst.ID)

	require.Len(t, movements.movements, 2)
	assert.Equal(t, dst.ID, movements.movements[1].ProductID)
}

func TestTransfer_StockInsuficiente_RevierteTodo(t *testing.T) {
	uc, products, movements := newStockFixture()
	seedProduct(t, products, entity.Product{
		ID: "p-src", SKU: "SKU-1", Name: "Teclado", Quantity: 3, WarehouseID: "wh-1",
	})

	err := uc.Transfer(context.Background(), "user-1", dto.TransferStockRequest{
		ProductID: "p-src", FromWarehouseID: "wh-1", ToWarehouseID: "wh-2", Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	src, _ := products.GetByID("p-src")
	assert.Equal(t, 3, src.Quantity, "el origen no debe cambiar tras el rollback")
	assert.Empty(t, movements.movements)
}

func TestTransfer_ProductoFueraDeBodegaOrigen(t *testing.T) {
	uc, products, movements := newStockFixture()
	seedProduct(t, products, entity.Product{
		ID: "p-src", SKU: "SKU-1", Name: "Teclado", Quantity: 10, WarehouseID: "wh-9",
	})

	err := uc.Transfer(context.Background(), "user-1", dto.TransferStockRequest{
		ProductID: "p-src", FromWarehouseID: "wh-1", ToWarehouseID: "wh-2", Quantity: 2,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movements.movements)
}

func TestTransfer_MismaBodega(t *testing.T) {
	uc, _, _ := newStockFixture()

	err := uc.Transfer(context.Background(), "user-1", dto.TransferStockRequest{
		ProductID: "p-src", FromWarehouseID: "wh-1", ToWarehouseID: "wh-1", Quantity: 2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_CantidadNoPositiva(t *testing.T) {
	uc, _, _ := newStockFixture()

	err := uc.Transfer(context.Background(), "user-1", dto.TransferStockRequest{
		ProductID: "p-src", FromWarehouseID: "wh-1", ToWarehouseID: "wh-2", Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteProduct / listados
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_ConservaHistorial(t *testing.T) {
	uc, products, movements := newStockFixture()
	seedProduct(t, products, entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Teclado", Quantity: 5, WarehouseID: "wh-1",
	})
	require.NoError(t, movements.Create(&entity.StockMovement{
		ID: "m-1", ProductID: "p-1", Type: entity.MovementTypeIN, Quantity: 5,
		Reason: entity.ReasonInitialStock,
	}))

	require.NoError(t, uc.DeleteProduct(context.Background(), "p-1"))

	gone, _ := products.GetByID("p-1")
	assert.Nil(t, gone)
	assert.Len(t, movements.movements, 1, "los asientos sobreviven al borrado del producto")
}

func TestDeleteProduct_NoExiste(t *testing.T) {
	uc, _, _ := newStockFixture()
	err := uc.DeleteProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProducts_FiltroStockBajo(t *testing.T) {
	uc, products, _ := newStockFixture()
	seedProduct(t, products, entity.Product{ID: "p-1", SKU: "A", Name: "A", Quantity: 2, WarehouseID: "wh-1"})
	seedProduct(t, products, entity.Product{ID: "p-2", SKU: "B", Name: "B", Quantity: 50, WarehouseID: "wh-1"})

	maxQty := 5
	out, err := uc.ListProducts(repository.ProductFilter{MaxQuantity: &maxQty})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "p-1", out.Items[0].ID)
}
