package utils

import (
	"fmt"
	"strings"
)

// FormatearMoneda formatea un monto en pesos con separador de miles y sin
// decimales. Ejemplo: 15000 -> "$15.000".
func FormatearMoneda(monto int64) string {
	negativo := monto < 0
	if negativo {
		monto = -monto
	}

	digitos := fmt.Sprintf("%d", monto)
	var partes []string
	for i := len(digitos); i > 0; i -= 3 {
		inicio := i - 3
		if inicio < 0 {
			inicio = 0
		}
		partes = append([]string{digitos[inicio:i]}, partes...)
	}

	formateado := "$" + strings.Join(partes, ".")
	if negativo {
		return "-" + formateado
	}
	return formateado
}

// FormatearTiempoOcupacion muestra minutos de ocupación como "45m",
// "1h" o "1h 30m". Un valor nil (mesa sin ocupación) se muestra como "-".
func FormatearTiempoOcupacion(minutos *int) string {
	if minutos == nil {
		return "-"
	}
	m := *minutos
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	horas := m / 60
	resto := m % 60
	if resto == 0 {
		return fmt.Sprintf("%dh", horas)
	}
	return fmt.Sprintf("%dh %dm", horas, resto)
}

// FormatearNombreMesa arma el nombre visible de una mesa. Con nombre
// personalizado: "VIP Terraza (#5)"; sin él (o solo espacios): "Mesa 5".
func FormatearNombreMesa(numero int, nombre string) string {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return fmt.Sprintf("Mesa %d", numero)
	}
	return fmt.Sprintf("%s (#%d)", nombre, numero)
}

// FormatearCapacidad muestra la capacidad de una mesa.
func FormatearCapacidad(capacidad int) string {
	if capacidad == 1 {
		return "1 persona"
	}
	return fmt.Sprintf("%d personas", capacidad)
}

// FormatearDuracionInactividad describe una duración de inactividad en
// horas y minutos para los mensajes de alerta.
func FormatearDuracionInactividad(minutos int) string {
	if minutos < 60 {
		return fmt.Sprintf("%d minutos", minutos)
	}
	horas := minutos / 60
	resto := minutos % 60
	if resto == 0 {
		if horas == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", horas)
	}
	if horas == 1 {
		return fmt.Sprintf("1 hora %d minutos", resto)
	}
	return fmt.Sprintf("%d horas %d minutos", horas, resto)
}
