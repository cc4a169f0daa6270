package entity

import "strings"

// Document documento raíz persistido bajo una sola clave; contiene todo el estado del negocio.
type Document struct {
	Settings    Settings        `json:"settings"`
	Users       []User          `json:"users"`
	Session     Session         `json:"session"`
	Proveedores []Supplier      `json:"proveedores"`
	Compras     []Purchase      `json:"compras"`
	Inventario  []InventoryItem `json:"inventario"`
	Clientes    []Customer      `json:"clientes"`
	Ventas      []Sale          `json:"ventas"`
}

// FindUser índice del usuario o -1.
func (d *Document) FindUser(username string) int {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return i
		}
	}
	return -1
}

// FindItem índice del producto por id o -1.
func (d *Document) FindItem(id string) int {
	for i := range d.Inventario {
		if d.Inventario[i].ID == id {
			return i
		}
	}
	return -1
}

// MatchItem busca el producto de una línea de compra: por código si viene informado,
// si no por nombre sin distinguir mayúsculas.
func (d *Document) MatchItem(name, code string) int {
	for i := range d.Inventario {
		it := &d.Inventario[i]
		if code != "" {
			if it.Code == code {
				return i
			}
			continue
		}
		if strings.EqualFold(it.Name, name) {
			return i
		}
	}
	return -1
}

// FindSale índice de la venta por id o -1.
func (d *Document) FindSale(id string) int {
	for i := range d.Ventas {
		if d.Ventas[i].ID == id {
			return i
		}
	}
	return -1
}
