package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Fitahiana66/GestionStock/internal/application/dto"
	"github.com/Fitahiana66/GestionStock/internal/domain"
	"github.com/Fitahiana66/GestionStock/internal/domain/entity"
	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

// UseCase es el único punto donde cambian las cantidades de producto fuera de
// las órdenes. Cada mutación corre dentro de TxRunner.Run con la fila del
// producto bloqueada (SELECT FOR UPDATE) y produce exactamente un asiento por
// cambio de cantidad; si algo falla se revierte todo.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewUseCase construye el caso de uso de stock.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, movementRepo: movementRepo}
}

// defaultLowStockThreshold umbral de alerta si el cliente no envía uno.
const defaultLowStockThreshold = 5

// CreateProduct crea un producto y, si la cantidad inicial es positiva,
// registra el asiento de creación en la misma transacción.
func (uc *UseCase) CreateProduct(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.WarehouseID == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetBySKUAndWarehouse(in.SKU, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	threshold := defaultLowStockThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		SKU:               in.SKU,
		Name:              in.Name,
		Quantity:          in.Quantity,
		LowStockThreshold: threshold,
		Price:             in.Price,
		Cost:              in.Cost,
		CategoryID:        in.CategoryID,
		WarehouseID:       in.WarehouseID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if product.Quantity == 0 {
			return nil
		}
		return movementRepo.Create(&entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			UserID:    userID,
			Type:      entity.MovementTypeIN,
			Quantity:  product.Quantity,
			Reason:    entity.ReasonInitialStock,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateProduct aplica un reemplazo completo de campos. Si la cantidad nueva
// difiere de la actual se registra un asiento de ajuste por la magnitud del
// delta, en la misma transacción que el update (nunca por separado).
func (uc *UseCase) UpdateProduct(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		oldQuantity := product.Quantity
		now := time.Now()
		product.Name = in.Name
		product.Quantity = in.Quantity
		product.LowStockThreshold = in.LowStockThreshold
		product.Price = in.Price
		product.Cost = in.Cost
		product.CategoryID = in.CategoryID
		product.WarehouseID = in.WarehouseID
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}

		if delta := in.Quantity - oldQuantity; delta != 0 {
			reason := entity.ReasonAdjustmentIn
			magnitude := delta
			if delta < 0 {
				reason = entity.ReasonAdjustmentOut
				magnitude = -delta
			}
			if err := movementRepo.Create(&entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				UserID:    userID,
				Type:      entity.MovementTypeADJUSTMENT,
				Quantity:  magnitude,
				Reason:    reason,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Transfer mueve cantidad de un producto entre bodegas, de forma atómica:
// resta en origen (fila bloqueada), suma en el producto del mismo SKU en la
// bodega destino —creándolo si no existe— y registra un asiento de salida y
// uno de entrada. El asiento de entrada referencia el producto DESTINO, que
// es la instancia realmente afectada.
func (uc *UseCase) Transfer(ctx context.Context, userID string, in dto.TransferStockRequest) error {
	if in.ProductID == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.FromWarehouseID == in.ToWarehouseID {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		source, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if source == nil || source.WarehouseID != in.FromWarehouseID {
			return domain.ErrNotFound
		}
		if source.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		source.Quantity -= in.Quantity
		source.UpdatedAt = now
		if err := productRepo.Update(source); err != nil {
			return err
		}
		if err := movementRepo.Create(&entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: source.ID,
			UserID:    userID,
			Type:      entity.MovementTypeOUT,
			Quantity:  in.Quantity,
			Reason:    entity.ReasonTransferOut,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		dest, err := productRepo.GetBySKUAndWarehouseForUpdate(source.SKU, in.ToWarehouseID)
		if err != nil {
			return err
		}
		if dest != nil {
			dest.Quantity += in.Quantity
			dest.UpdatedAt = now
			if err := productRepo.Update(dest); err != nil {
				return err
			}
		} else {
			dest = &entity.Product{
				ID:                uuid.New().String(),
				SKU:               source.SKU,
				Name:              source.Name,
				Quantity:          in.Quantity,
				LowStockThreshold: source.LowStockThreshold,
				Price:             source.Price,
				Cost:              source.Cost,
				CategoryID:        source.CategoryID,
				WarehouseID:       in.ToWarehouseID,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := productRepo.Create(dest); err != nil {
				return err
			}
		}

		return movementRepo.Create(&entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: dest.ID,
			UserID:    userID,
			Type:      entity.MovementTypeIN,
			Quantity:  in.Quantity,
			Reason:    entity.ReasonTransferIn,
			CreatedAt: now,
		})
	})
}

// DeleteProduct elimina un producto. Sus asientos no se borran en cascada:
// el historial queda huérfano a propósito para conservar la auditoría.
func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

// ListProducts lista productos con filtros opcionales.
func (uc *UseCase) ListProducts(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// History lista el libro de movimientos con nombres de producto y usuario.
func (uc *UseCase) History(limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movementRepo.ListDetails(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			UserID:      m.UserID,
			UserName:    m.UserName,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		Price:             p.Price,
		Cost:              p.Cost,
		CategoryID:        p.CategoryID,
		WarehouseID:       p.WarehouseID,
		IsLowStock:        p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
