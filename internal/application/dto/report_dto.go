package dto

import "github.com/shopspring/decimal"

// RankingEntry fila de un ranking de productos.
type RankingEntry struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
}

// KPIResponse rankings de ganancia y rotación (top 10).
type KPIResponse struct {
	Profit   []RankingEntry `json:"profit"`
	Rotation []RankingEntry `json:"rotation"`
}

// SalesExportRow fila de exportación de ventas.
type SalesExportRow struct {
	Fecha        string
	Tipo         string
	Serie        string
	Numero       int
	DocCliente   string
	RazonCliente string
	Total        string
}

// VerifyResponse verificación de los artefactos congelados de una venta.
type VerifyResponse struct {
	SaleID        string `json:"sale_id"`
	DigestMatches bool   `json:"digest_matches"`
	Reproducible  bool   `json:"reproducible"`
	Digest        string `json:"digest"`
}
