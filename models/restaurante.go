package models

import "time"

// Restaurante es la unidad de multi-tenancy: cada mesa, orden, sesión de
// caja y alerta pertenece a exactamente un restaurante.
type Restaurante struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Direccion string    `gorm:"type:varchar(255)" json:"direccion,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Restaurante) TableName() string { return "restaurantes" }

// HorarioDia es la franja de atención de un día de la semana, en formato
// "HH:MM". Un día sin registro se considera cerrado.
type HorarioDia struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ConfigID  uint   `gorm:"index;not null" json:"config_id"`
	DiaSemana int    `gorm:"not null" json:"dia_semana"` // time.Weekday: 0=domingo
	Apertura  string `gorm:"type:varchar(5);not null" json:"apertura"`
	Cierre    string `gorm:"type:varchar(5);not null" json:"cierre"`
}

func (HorarioDia) TableName() string { return "horario_dias" }

// ConfiguracionHorario agrupa el horario semanal del restaurante junto con
// la política de cierre automático de caja. Es de solo lectura para el
// monitor de inactividad.
type ConfiguracionHorario struct {
	ID                     uint         `gorm:"primaryKey" json:"id"`
	RestauranteID          uint         `gorm:"uniqueIndex;not null" json:"restaurante_id"`
	Dias                   []HorarioDia `gorm:"foreignKey:ConfigID" json:"dias"`
	CierreAutomatico       bool         `gorm:"not null;default:true" json:"cierre_automatico"`
	MinutosAviso           int          `gorm:"not null;default:30" json:"minutos_aviso"`
	UmbralInactividadHoras int          `gorm:"not null;default:8" json:"umbral_inactividad_horas"`
	ZonaHoraria            string       `gorm:"type:varchar(50);not null;default:'America/Santiago'" json:"zona_horaria"`
	CreatedAt              time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time    `gorm:"not null" json:"updated_at"`
}

func (ConfiguracionHorario) TableName() string { return "configuraciones_horario" }

// HorarioPara devuelve la franja configurada para un día de la semana.
func (c *ConfiguracionHorario) HorarioPara(dia time.Weekday) (HorarioDia, bool) {
	for _, h := range c.Dias {
		if time.Weekday(h.DiaSemana) == dia {
			return h, true
		}
	}
	return HorarioDia{}, false
}
