package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/spoonapp/spoon/models"
)

const minutosPorDia = 24 * 60

// codificarHora convierte "HH:MM" a minutos desde medianoche. Un formato
// inválido devuelve -1 y el día se trata como cerrado.
func codificarHora(hhmm string) int {
	partes := strings.Split(hhmm, ":")
	if len(partes) != 2 {
		return -1
	}
	h, err1 := strconv.Atoi(partes[0])
	m, err2 := strconv.Atoi(partes[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// franjaDelDia devuelve apertura y cierre normalizados para el día de t.
// En horarios nocturnos (cierre numéricamente menor que la apertura) el
// cierre se corre más allá de medianoche para que la comparación cruce
// el cambio de día.
func franjaDelDia(cfg *models.ConfiguracionHorario, t time.Time) (apertura, cierre int, ok bool) {
	dia, existe := cfg.HorarioPara(t.Weekday())
	if !existe {
		return 0, 0, false
	}
	apertura = codificarHora(dia.Apertura)
	cierre = codificarHora(dia.Cierre)
	if apertura < 0 || cierre < 0 {
		return 0, 0, false
	}
	if cierre <= apertura {
		cierre += minutosPorDia
	}
	return apertura, cierre, true
}

// DentroDeHorario indica si t cae dentro del horario de atención. Un día
// sin franja configurada cuenta como cerrado sin importar la hora.
func DentroDeHorario(cfg *models.ConfiguracionHorario, t time.Time) bool {
	if cfg == nil {
		return false
	}
	apertura, cierre, ok := franjaDelDia(cfg, t)
	if !ok {
		return false
	}
	ahora := t.Hour()*60 + t.Minute()
	if ahora < apertura && cierre > minutosPorDia {
		// Madrugada de un horario nocturno: la franja abierta viene del
		// día anterior.
		ahora += minutosPorDia
	}
	return ahora >= apertura && ahora < cierre
}

// MinutosDesdeCierre devuelve cuántos minutos pasaron desde el cierre del
// día, o 0 si el restaurante sigue abierto o el día no está configurado.
func MinutosDesdeCierre(cfg *models.ConfiguracionHorario, t time.Time) int {
	if cfg == nil {
		return 0
	}
	apertura, cierre, ok := franjaDelDia(cfg, t)
	if !ok {
		return 0
	}
	ahora := t.Hour()*60 + t.Minute()
	if ahora < apertura && cierre > minutosPorDia {
		ahora += minutosPorDia
	}
	if ahora >= cierre {
		return ahora - cierre
	}
	return 0
}

// ProximaApertura busca el siguiente instante de apertura dentro de los
// próximos 7 días. El día actual se salta si su apertura ya pasó. Devuelve
// nil si ningún día de la semana tiene franja configurada.
func ProximaApertura(cfg *models.ConfiguracionHorario, desde time.Time) *time.Time {
	if cfg == nil {
		return nil
	}
	for d := 0; d <= 7; d++ {
		fecha := desde.AddDate(0, 0, d)
		dia, existe := cfg.HorarioPara(fecha.Weekday())
		if !existe {
			continue
		}
		apertura := codificarHora(dia.Apertura)
		if apertura < 0 {
			continue
		}
		instante := time.Date(fecha.Year(), fecha.Month(), fecha.Day(),
			apertura/60, apertura%60, 0, 0, desde.Location())
		if d == 0 && !instante.After(desde) {
			continue
		}
		return &instante
	}
	return nil
}

// UbicacionDe resuelve la zona horaria configurada, con UTC como respaldo
// si el nombre no carga.
func UbicacionDe(cfg *models.ConfiguracionHorario) *time.Location {
	if cfg == nil || cfg.ZonaHoraria == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(cfg.ZonaHoraria)
	if err != nil {
		return time.UTC
	}
	return loc
}
