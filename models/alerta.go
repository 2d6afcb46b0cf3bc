package models

import "time"

// Severidad de una alerta de seguridad.
type Severidad string

const (
	SeveridadInfo    Severidad = "info"
	SeveridadMedia   Severidad = "media"
	SeveridadAlta    Severidad = "alta"
	SeveridadCritica Severidad = "critica"
)

// AlertaSeguridad es el registro de auditoría que deja el monitor de
// inactividad y las respuestas del cajero. Es append-only salvo por el
// campo de revisión.
type AlertaSeguridad struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RestauranteID uint       `gorm:"index;not null" json:"restaurante_id"`
	CajeroID      uint       `gorm:"index;not null" json:"cajero_id"`
	TipoAlerta    string     `gorm:"type:varchar(50);not null" json:"tipo_alerta"`
	Descripcion   string     `gorm:"type:text;not null" json:"descripcion"`
	DatosContexto string     `gorm:"type:text" json:"datos_contexto,omitempty"`
	Severidad     Severidad  `gorm:"type:varchar(20);not null" json:"severidad"`
	Revisada      bool       `gorm:"not null;default:false" json:"revisada"`
	RevisadaPor   *uint      `json:"revisada_por,omitempty"`
	RevisadaAt    *time.Time `json:"revisada_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
}

func (AlertaSeguridad) TableName() string { return "alertas_seguridad" }
