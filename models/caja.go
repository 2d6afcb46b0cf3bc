package models

import "time"

// CajaSesion es una sesión de caja: el registro acotado en el tiempo de la
// operación de un cajero. A lo sumo una sesión abierta por restaurante.
type CajaSesion struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Codigo           string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"codigo"`
	RestauranteID    uint       `gorm:"index;not null" json:"restaurante_id"`
	CajeroApertura   uint       `gorm:"not null" json:"cajero_apertura"`
	CajeroCierre     *uint      `json:"cajero_cierre,omitempty"`
	MontoApertura    float64    `gorm:"type:decimal(12,2);not null" json:"monto_apertura"`
	MontoCierre      *float64   `gorm:"type:decimal(12,2)" json:"monto_cierre,omitempty"`
	AbiertaAt        time.Time  `gorm:"not null" json:"abierta_at"`
	CerradaAt        *time.Time `json:"cerrada_at,omitempty"`
	CierreAutomatico bool       `gorm:"not null;default:false" json:"cierre_automatico"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}

func (CajaSesion) TableName() string { return "caja_sesiones" }

// Abierta reporta si la sesión sigue abierta.
func (s *CajaSesion) Abierta() bool {
	return s.CerradaAt == nil
}
