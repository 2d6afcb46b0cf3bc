package utils

import (
	"math/rand"
	"time"
)

// OpcionesReintento configura el backoff exponencial de Reintentar.
type OpcionesReintento struct {
	MaxIntentos  int
	DemoraBase   time.Duration
	DemoraMaxima time.Duration
	ConJitter    bool
}

// OpcionesReintentoPorDefecto: 3 intentos partiendo de 500ms, tope 10s.
func OpcionesReintentoPorDefecto() OpcionesReintento {
	return OpcionesReintento{
		MaxIntentos:  3,
		DemoraBase:   500 * time.Millisecond,
		DemoraMaxima: 10 * time.Second,
		ConJitter:    true,
	}
}

// Reintentar ejecuta fn hasta que tenga éxito o se agoten los intentos,
// duplicando la espera entre intentos. Devuelve el último error. Las
// escrituras de auditoría del monitor no lo usan: ahí un fallo se reporta
// al llamador sin reintentos.
func Reintentar(fn func() error, opts OpcionesReintento) error {
	if opts.MaxIntentos < 1 {
		opts.MaxIntentos = 1
	}

	var err error
	demora := opts.DemoraBase
	for intento := 1; intento <= opts.MaxIntentos; intento++ {
		if err = fn(); err == nil {
			return nil
		}
		if intento == opts.MaxIntentos {
			break
		}

		espera := demora
		if opts.ConJitter {
			espera += time.Duration(rand.Int63n(int64(demora)/2 + 1))
		}
		if opts.DemoraMaxima > 0 && espera > opts.DemoraMaxima {
			espera = opts.DemoraMaxima
		}
		time.Sleep(espera)

		demora *= 2
		if opts.DemoraMaxima > 0 && demora > opts.DemoraMaxima {
			demora = opts.DemoraMaxima
		}
	}
	return err
}
