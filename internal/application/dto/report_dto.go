package dto

// StockReportResponse cifras derivadas del inventario actual. Las claves
// camelCase preservan el contrato que el front end ya consume.
// StockValue se serializa con dos decimales ("46.00").
type StockReportResponse struct {
	TotalStock       int64  `json:"totalStock"`
	LowStockProducts int64  `json:"lowStockProducts"`
	StockValue       string `json:"stockValue"`
}
