// Package validators agrupa las validaciones puras de entrada del POS.
// Todas acumulan la lista completa de violaciones en lugar de cortar en la
// primera, porque la UI muestra el listado entero al operador.
package validators

import (
	"fmt"
	"strings"

	"github.com/spoonapp/spoon/models"
)

// Límites de configuración de mesas y reservas.
const (
	CapacidadMinima     = 1
	CapacidadMaxima     = 20
	LargoMaximoNombre   = 50
	LargoMaximoCliente  = 100
	LargoMaximoTelefono = 20
	LargoMaximoHora     = 50
)

// Mensajes de validación. ErrZonaRequerida existe en la tabla de mensajes
// pero ninguna validación lo emite hoy; ver DESIGN.md.
const (
	ErrNumeroMesaInvalido  = "Número de mesa inválido"
	ErrSinProductos        = "Debe seleccionar al menos un producto"
	ErrCapacidadFueraRango = "La capacidad debe estar entre 1 y 20 personas"
	ErrNombreMuyLargo      = "El nombre no puede superar los 50 caracteres"
	ErrZonaRequerida       = "La zona es requerida"
	ErrClienteRequerido    = "El nombre del cliente es requerido"
	ErrClienteMuyLargo     = "El nombre del cliente no puede superar los 100 caracteres"
	ErrTelefonoMuyLargo    = "El teléfono no puede superar los 20 caracteres"
	ErrHoraMuyLarga        = "La hora de reserva no puede superar los 50 caracteres"
)

// ResultadoValidacion acumula el veredicto y todos los errores encontrados.
type ResultadoValidacion struct {
	Valido  bool     `json:"valido"`
	Errores []string `json:"errores"`
}

func resultado(errores []string) ResultadoValidacion {
	return ResultadoValidacion{Valido: len(errores) == 0, Errores: errores}
}

// ValidarConfiguracionMesa valida los datos de alta o edición de una mesa.
func ValidarConfiguracionMesa(numero int, nombre, zona string, capacidad int) ResultadoValidacion {
	var errores []string

	if numero < 1 {
		errores = append(errores, ErrNumeroMesaInvalido)
	}
	if capacidad < CapacidadMinima || capacidad > CapacidadMaxima {
		errores = append(errores, ErrCapacidadFueraRango)
	}
	if len([]rune(nombre)) > LargoMaximoNombre {
		errores = append(errores, ErrNombreMuyLargo)
	}

	return resultado(errores)
}

// ItemOrden es la forma mínima de un item que llega desde el POS para
// crear una orden.
type ItemOrden struct {
	Tipo           models.TipoProducto `json:"tipo"`
	Cantidad       int                 `json:"cantidad"`
	PrecioUnitario float64             `json:"precio_unitario"`
}

// ValidarCrearOrden valida la creación de una orden completa. Los errores
// por item llevan el índice 1-based para que el operador ubique la línea.
func ValidarCrearOrden(numeroMesa int, items []ItemOrden) ResultadoValidacion {
	var errores []string

	if numeroMesa < 1 {
		errores = append(errores, ErrNumeroMesaInvalido)
	}
	if len(items) == 0 {
		errores = append(errores, ErrSinProductos)
	}
	for i, item := range items {
		pos := i + 1
		if !models.EsTipoProductoValido(item.Tipo) {
			errores = append(errores, fmt.Sprintf("Producto %d: tipo de producto desconocido", pos))
		}
		if item.Cantidad < 1 {
			errores = append(errores, fmt.Sprintf("Producto %d: la cantidad debe ser al menos 1", pos))
		}
		if item.PrecioUnitario < 0 {
			errores = append(errores, fmt.Sprintf("Producto %d: el precio no puede ser negativo", pos))
		}
	}

	return resultado(errores)
}

// ValidarReserva valida los datos de una reserva de mesa.
func ValidarReserva(nombreCliente, telefono, hora string) ResultadoValidacion {
	var errores []string

	if strings.TrimSpace(nombreCliente) == "" {
		errores = append(errores, ErrClienteRequerido)
	}
	if len([]rune(nombreCliente)) > LargoMaximoCliente {
		errores = append(errores, ErrClienteMuyLargo)
	}
	if len([]rune(telefono)) > LargoMaximoTelefono {
		errores = append(errores, ErrTelefonoMuyLargo)
	}
	if len([]rune(hora)) > LargoMaximoHora {
		errores = append(errores, ErrHoraMuyLarga)
	}

	return resultado(errores)
}
