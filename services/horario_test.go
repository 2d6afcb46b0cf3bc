package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spoonapp/spoon/models"
)

// configDiurna atiende lunes a viernes de 10:00 a 22:00.
func configDiurna() *models.ConfiguracionHorario {
	cfg := &models.ConfiguracionHorario{}
	for d := int(time.Monday); d <= int(time.Friday); d++ {
		cfg.Dias = append(cfg.Dias, models.HorarioDia{DiaSemana: d, Apertura: "10:00", Cierre: "22:00"})
	}
	return cfg
}

// configNocturna abre viernes y sábado de 18:00 a 02:00.
func configNocturna() *models.ConfiguracionHorario {
	return &models.ConfiguracionHorario{Dias: []models.HorarioDia{
		{DiaSemana: int(time.Friday), Apertura: "18:00", Cierre: "02:00"},
		{DiaSemana: int(time.Saturday), Apertura: "18:00", Cierre: "02:00"},
	}}
}

// 2025-06-02 es lunes.
func lunes(hora, minuto int) time.Time {
	return time.Date(2025, 6, 2, hora, minuto, 0, 0, time.UTC)
}

func sabado(hora, minuto int) time.Time {
	return time.Date(2025, 6, 7, hora, minuto, 0, 0, time.UTC)
}

func domingo(hora, minuto int) time.Time {
	return time.Date(2025, 6, 8, hora, minuto, 0, 0, time.UTC)
}

func TestDentroDeHorarioDiurno(t *testing.T) {
	cfg := configDiurna()

	assert.False(t, DentroDeHorario(cfg, lunes(9, 59)))
	assert.True(t, DentroDeHorario(cfg, lunes(10, 0)))
	assert.True(t, DentroDeHorario(cfg, lunes(15, 30)))
	assert.False(t, DentroDeHorario(cfg, lunes(22, 0)))
	assert.False(t, DentroDeHorario(cfg, lunes(23, 45)))
}

func TestDentroDeHorarioDiaSinFranja(t *testing.T) {
	cfg := configDiurna()
	// Domingo no está configurado: cerrado a toda hora.
	assert.False(t, DentroDeHorario(cfg, domingo(12, 0)))
	assert.False(t, DentroDeHorario(cfg, domingo(0, 0)))
}

func TestDentroDeHorarioNocturno(t *testing.T) {
	cfg := configNocturna()

	assert.False(t, DentroDeHorario(cfg, sabado(17, 59)))
	assert.True(t, DentroDeHorario(cfg, sabado(18, 0)))
	assert.True(t, DentroDeHorario(cfg, sabado(23, 30)))
	// Madrugada del sábado: la franja del día cruza medianoche.
	assert.True(t, DentroDeHorario(cfg, sabado(1, 30)))
	assert.False(t, DentroDeHorario(cfg, sabado(2, 0)))
	assert.False(t, DentroDeHorario(cfg, sabado(5, 0)))
}

func TestMinutosDesdeCierre(t *testing.T) {
	cfg := configDiurna()

	assert.Equal(t, 0, MinutosDesdeCierre(cfg, lunes(15, 0)))
	assert.Equal(t, 30, MinutosDesdeCierre(cfg, lunes(22, 30)))
	assert.Equal(t, 119, MinutosDesdeCierre(cfg, lunes(23, 59)))
	assert.Equal(t, 0, MinutosDesdeCierre(cfg, domingo(23, 0)))

	nocturna := configNocturna()
	assert.Equal(t, 0, MinutosDesdeCierre(nocturna, sabado(1, 0)))
	assert.Equal(t, 60, MinutosDesdeCierre(nocturna, sabado(3, 0)))
}

func TestProximaApertura(t *testing.T) {
	cfg := configDiurna()

	// Lunes antes de abrir: abre hoy a las 10:00.
	proxima := ProximaApertura(cfg, lunes(8, 0))
	assert.NotNil(t, proxima)
	assert.Equal(t, lunes(10, 0), *proxima)

	// Lunes con la apertura ya pasada: salta al martes.
	proxima = ProximaApertura(cfg, lunes(11, 0))
	assert.NotNil(t, proxima)
	assert.Equal(t, time.Tuesday, proxima.Weekday())
	assert.Equal(t, 10, proxima.Hour())

	// Sábado sin franja: la próxima es el lunes.
	proxima = ProximaApertura(cfg, sabado(12, 0))
	assert.NotNil(t, proxima)
	assert.Equal(t, time.Monday, proxima.Weekday())

	// Sin ningún día configurado no hay próxima apertura.
	assert.Nil(t, ProximaApertura(&models.ConfiguracionHorario{}, lunes(8, 0)))
}

func TestDentroDeHorarioConfigNil(t *testing.T) {
	assert.False(t, DentroDeHorario(nil, lunes(12, 0)))
	assert.Equal(t, 0, MinutosDesdeCierre(nil, lunes(12, 0)))
	assert.Nil(t, ProximaApertura(nil, lunes(12, 0)))
}

func TestUbicacionDe(t *testing.T) {
	assert.Equal(t, time.UTC, UbicacionDe(nil))
	assert.Equal(t, time.UTC, UbicacionDe(&models.ConfiguracionHorario{ZonaHoraria: "Zona/Inexistente"}))

	loc := UbicacionDe(&models.ConfiguracionHorario{ZonaHoraria: "America/Santiago"})
	assert.Equal(t, "America/Santiago", loc.String())
}
