package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrBusinessNotFound = errors.New("negocio no encontrado")
	ErrSubdomainTaken   = errors.New("el subdominio ya está en uso")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrOutOfRange       = errors.New("valor fuera de rango")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrTokenNotFound    = errors.New("token de cancelación desconocido")
	ErrAlreadyCancelled = errors.New("la cita ya fue cancelada")
)
