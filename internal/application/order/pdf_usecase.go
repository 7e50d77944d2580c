package order

import "context"

// PDFUseCase genera la representación imprimible de una orden.
type PDFUseCase struct {
	orders    *UseCase
	generator PDFGenerator
}

// NewPDFUseCase construye el caso de uso de PDF de órdenes.
func NewPDFUseCase(orders *UseCase, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{orders: orders, generator: generator}
}

// Generate devuelve los bytes del PDF de la orden indicada.
func (uc *PDFUseCase) Generate(ctx context.Context, id string) ([]byte, error) {
	summary, items, err := uc.orders.loadDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateOrderPDF(ctx, summary, items)
}
