package models

import "time"

type Usuario struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RestauranteID uint      `gorm:"index;not null" json:"restaurante_id"`
	Nombre        string    `gorm:"type:varchar(255);not null" json:"nombre"`
	Email         string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password      string    `gorm:"type:varchar(255);not null" json:"-"`
	Rol           string    `gorm:"type:varchar(50);not null" json:"rol"` // admin, cajero, mesero
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Usuario) TableName() string { return "usuarios" }
