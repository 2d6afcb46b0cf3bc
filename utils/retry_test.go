package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReintentarExitoInmediato(t *testing.T) {
	llamadas := 0
	err := Reintentar(func() error {
		llamadas++
		return nil
	}, OpcionesReintentoPorDefecto())

	assert.NoError(t, err)
	assert.Equal(t, 1, llamadas)
}

func TestReintentarRecuperaTrasFallo(t *testing.T) {
	llamadas := 0
	err := Reintentar(func() error {
		llamadas++
		if llamadas < 3 {
			return errors.New("transitorio")
		}
		return nil
	}, OpcionesReintento{MaxIntentos: 5, DemoraBase: time.Millisecond})

	assert.NoError(t, err)
	assert.Equal(t, 3, llamadas)
}

func TestReintentarAgotaIntentos(t *testing.T) {
	permanente := errors.New("permanente")
	llamadas := 0
	err := Reintentar(func() error {
		llamadas++
		return permanente
	}, OpcionesReintento{MaxIntentos: 3, DemoraBase: time.Millisecond})

	assert.ErrorIs(t, err, permanente)
	assert.Equal(t, 3, llamadas)
}
