package models

import "time"

// TipoProducto distingue las dos líneas de producto que maneja la carta.
type TipoProducto string

const (
	TipoCombinacion TipoProducto = "combinacion" // menú del día
	TipoEspecial    TipoProducto = "especial"    // plato a la carta
)

// EsTipoProductoValido reporta si el tipo corresponde a una línea conocida.
func EsTipoProductoValido(tipo TipoProducto) bool {
	return tipo == TipoCombinacion || tipo == TipoEspecial
}

// OrdenActiva es la orden abierta sobre una mesa. Vive mientras la mesa
// está ocupada y se cierra al cobrar.
type OrdenActiva struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	RestauranteID uint        `gorm:"index;not null" json:"restaurante_id"`
	MesaID        uint        `gorm:"index;not null" json:"mesa_id"`
	Total         float64     `gorm:"type:decimal(12,2);not null;default:0.00" json:"total"`
	Cobrada       bool        `gorm:"not null;default:false" json:"cobrada"`
	CobradaAt     *time.Time  `json:"cobrada_at,omitempty"`
	Items         []OrdenItem `gorm:"foreignKey:OrdenID" json:"items"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (OrdenActiva) TableName() string { return "ordenes_activas" }

// CalcularTotal suma cantidad x precio unitario sobre todos los items.
func (o *OrdenActiva) CalcularTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Cantidad) * item.PrecioUnitario
	}
	return total
}

type OrdenItem struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	OrdenID        uint         `gorm:"index;not null" json:"orden_id"`
	Tipo           TipoProducto `gorm:"type:varchar(20);not null" json:"tipo"`
	Nombre         string       `gorm:"type:varchar(100)" json:"nombre"`
	Cantidad       int          `gorm:"not null" json:"cantidad"`
	PrecioUnitario float64      `gorm:"type:decimal(12,2);not null" json:"precio_unitario"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
}

func (OrdenItem) TableName() string { return "orden_items" }
