package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spoonapp/spoon/models"
)

func TestValidarConfiguracionMesaValida(t *testing.T) {
	res := ValidarConfiguracionMesa(1, "Mesa Test", "Principal", 4)
	assert.True(t, res.Valido)
	assert.Empty(t, res.Errores)
}

func TestValidarConfiguracionMesaCapacidadFueraDeRango(t *testing.T) {
	res := ValidarConfiguracionMesa(1, "Mesa Test", "Principal", 25)
	assert.False(t, res.Valido)
	assert.Contains(t, res.Errores, ErrCapacidadFueraRango)

	res = ValidarConfiguracionMesa(1, "Mesa Test", "Principal", 0)
	assert.False(t, res.Valido)
	assert.Contains(t, res.Errores, ErrCapacidadFueraRango)
}

func TestValidarConfiguracionMesaZonaVaciaNoFalla(t *testing.T) {
	// La zona es conceptualmente requerida pero la validación nunca la
	// exige; se conserva ese comportamiento.
	res := ValidarConfiguracionMesa(1, "Mesa Test", "", 4)
	assert.True(t, res.Valido)
}

func TestValidarConfiguracionMesaAcumulaErrores(t *testing.T) {
	res := ValidarConfiguracionMesa(0, strings.Repeat("x", 51), "", 30)
	assert.False(t, res.Valido)
	assert.Len(t, res.Errores, 3)
	assert.Contains(t, res.Errores, ErrNumeroMesaInvalido)
	assert.Contains(t, res.Errores, ErrCapacidadFueraRango)
	assert.Contains(t, res.Errores, ErrNombreMuyLargo)
}

func TestValidarCrearOrdenMesaYSinItems(t *testing.T) {
	res := ValidarCrearOrden(0, nil)
	assert.False(t, res.Valido)
	assert.Contains(t, res.Errores, ErrNumeroMesaInvalido)
	assert.Contains(t, res.Errores, ErrSinProductos)
}

func TestValidarCrearOrdenItemsInvalidos(t *testing.T) {
	res := ValidarCrearOrden(3, []ItemOrden{
		{Tipo: models.TipoCombinacion, Cantidad: 1, PrecioUnitario: 5000},
		{Tipo: models.TipoProducto("postre"), Cantidad: 0, PrecioUnitario: -100},
	})
	assert.False(t, res.Valido)
	assert.Len(t, res.Errores, 3)
	// Los errores del segundo item llevan el índice 1-based.
	for _, e := range res.Errores {
		assert.True(t, strings.HasPrefix(e, "Producto 2:"), "mensaje inesperado: %s", e)
	}
}

func TestValidarCrearOrdenValida(t *testing.T) {
	res := ValidarCrearOrden(5, []ItemOrden{
		{Tipo: models.TipoCombinacion, Cantidad: 2, PrecioUnitario: 7500},
		{Tipo: models.TipoEspecial, Cantidad: 1, PrecioUnitario: 0},
	})
	assert.True(t, res.Valido)
}

func TestValidarReserva(t *testing.T) {
	res := ValidarReserva("Ana Pérez", "+56911112222", "20:30")
	assert.True(t, res.Valido)

	res = ValidarReserva("", "", "")
	assert.False(t, res.Valido)
	assert.Contains(t, res.Errores, ErrClienteRequerido)

	res = ValidarReserva(strings.Repeat("a", 101), strings.Repeat("1", 21), strings.Repeat("h", 51))
	assert.False(t, res.Valido)
	assert.Len(t, res.Errores, 3)
}
