package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Fitahiana66/GestionStock/internal/application/dto"
	"github.com/Fitahiana66/GestionStock/internal/domain"
	"github.com/Fitahiana66/GestionStock/internal/domain/entity"
	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

// UseCase crea órdenes de compra/venta con sus efectos de stock y gestiona su
// estado. La creación corre completa dentro de una transacción: validaciones
// por línea contra la fila de producto bloqueada, líneas, deltas de cantidad
// y asientos; cualquier fallo revierte la orden entera.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
}

// NewUseCase construye el caso de uso de órdenes.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, supplierRepo: supplierRepo, userRepo: userRepo}
}

// Create valida y persiste una orden con sus líneas y efectos de stock.
// Compras: cantidad += pedida y el costo del producto pasa a ser el precio
// unitario de la línea (costeo a última compra). Ventas: cantidad -= pedida
// tras verificar stock suficiente sobre la fila bloqueada.
// No hay deduplicación: reenviar la misma petición crea una segunda orden.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Type != entity.OrderTypePurchase && in.Type != entity.OrderTypeSale {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.OrderTypePurchase && in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	// Total calculado antes de abrir la transacción y guardado en la cabecera.
	total := decimal.Zero
	for _, item := range in.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	supplierID := ""
	if in.Type == entity.OrderTypePurchase {
		supplierID = in.SupplierID
	}
	now := time.Now()
	ord := &entity.Order{
		ID:          uuid.New().String(),
		Type:        in.Type,
		Status:      entity.OrderStatusPending,
		SupplierID:  supplierID,
		UserID:      userID,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := orderRepo.Create(ord); err != nil {
			return err
		}
		for _, item := range in.Items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if in.Type == entity.OrderTypeSale && product.Quantity < item.Quantity {
				return domain.ErrInsufficientStock
			}

			if err := orderRepo.CreateItem(&entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   ord.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				CreatedAt: now,
			}); err != nil {
				return err
			}

			movementType := entity.MovementTypeIN
			reason := entity.ReasonPurchaseOrder
			if in.Type == entity.OrderTypePurchase {
				product.Quantity += item.Quantity
				product.Cost = item.UnitPrice
			} else {
				product.Quantity -= item.Quantity
				movementType = entity.MovementTypeOUT
				reason = entity.ReasonSale
			}
			product.UpdatedAt = now
			if err := productRepo.Update(product); err != nil {
				return err
			}

			if err := movementRepo.Create(&entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				UserID:    userID,
				Type:      movementType,
				Quantity:  item.Quantity,
				Reason:    reason,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(ord), nil
}

// UpdateStatus cambia el estado de una orden. Cualquier transición es válida
// (override administrativo); solo se valida que el estado exista.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	switch in.Status {
	case entity.OrderStatusPending, entity.OrderStatusShipped, entity.OrderStatusDelivered, entity.OrderStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	ord, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	ord.Status = in.Status
	ord.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(ord); err != nil {
		return nil, err
	}
	return toOrderResponse(ord), nil
}

// List lista órdenes con nombres de proveedor y usuario.
func (uc *UseCase) List(limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		resp := toOrderResponse(&o.Order)
		resp.SupplierName = o.SupplierName
		resp.UserName = o.UserName
		items = append(items, *resp)
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetDetails devuelve una orden con líneas anidadas y nombres resueltos.
func (uc *UseCase) GetDetails(ctx context.Context, id string) (*dto.OrderDetailResponse, error) {
	summary, items, err := uc.loadDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(&summary.Order)
	resp.SupplierName = summary.SupplierName
	resp.UserName = summary.UserName
	detail := &dto.OrderDetailResponse{OrderResponse: *resp, Items: make([]dto.OrderItemResponse, 0, len(items))}
	for _, it := range items {
		detail.Items = append(detail.Items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return detail, nil
}

// loadDetails resuelve la orden, sus líneas y los nombres de proveedor/usuario.
func (uc *UseCase) loadDetails(ctx context.Context, id string) (*entity.OrderSummary, []*entity.OrderItemDetail, error) {
	ord, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if ord == nil {
		return nil, nil, domain.ErrNotFound
	}
	summary := &entity.OrderSummary{Order: *ord}
	if ord.SupplierID != "" {
		if supplier, err := uc.supplierRepo.GetByID(ord.SupplierID); err == nil && supplier != nil {
			summary.SupplierName = supplier.Name
		}
	}
	if user, err := uc.userRepo.GetByID(ord.UserID); err == nil && user != nil {
		summary.UserName = user.Name
	}
	items, err := uc.orderRepo.ListItems(ord.ID)
	if err != nil {
		return nil, nil, err
	}
	return summary, items, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		Type:        o.Type,
		Status:      o.Status,
		SupplierID:  o.SupplierID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
