package controllers

import "errors"

var (
	ErrNoPermission     = errors.New("no tiene permisos para esta operación")
	ErrTransicionEstado = errors.New("transición de estado no permitida")
	ErrOrdenPendiente   = errors.New("la mesa tiene una orden activa sin cobrar; debe cobrarse antes de liberarla")
	ErrCajaYaAbierta    = errors.New("ya existe una sesión de caja abierta para este restaurante")
	ErrSinCajaAbierta   = errors.New("no hay una sesión de caja abierta")
)
