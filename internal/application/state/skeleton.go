package state

import (
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/pkg/sunat"
)

// Valores del emisor de demostración.
const (
	DefaultRUC   = "20123456789"
	DefaultRazon = "MI EMPRESA S.A.C."
)

// NewSkeleton documento por defecto: emisor de demostración, series F001/B001/NP01,
// correlativos en 1 y un usuario admin con el hash de contraseña indicado.
func NewSkeleton(adminPasswordHash string) *entity.Document {
	counters := make(map[string]int, len(sunat.DocTypes))
	for _, t := range sunat.DocTypes {
		counters[t] = 1
	}
	return &entity.Document{
		Settings: entity.Settings{
			RUCEmisor:   DefaultRUC,
			RazonEmisor: DefaultRazon,
			Series:      sunat.DefaultSeriesMap(),
			Counters:    counters,
		},
		Users: []entity.User{{
			Username:     entity.BaseAdmin,
			PasswordHash: adminPasswordHash,
			Role:         entity.RoleAdmin,
			Access:       append([]string(nil), entity.Sections...),
		}},
		Proveedores: []entity.Supplier{},
		Compras:     []entity.Purchase{},
		Inventario:  []entity.InventoryItem{},
		Clientes:    []entity.Customer{},
		Ventas:      []entity.Sale{},
	}
}
