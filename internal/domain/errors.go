package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrProjectLocked      = errors.New("proyecto bloqueado")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrInvalidToken       = errors.New("código QR inválido")
	ErrReturnNotDue       = errors.New("la fecha de retorno aún no llega")
	ErrGeofenceViolation  = errors.New("fuera del perímetro del sitio")
	ErrOpenSession        = errors.New("ya existe una sesión de asistencia abierta")
	ErrNoOpenSession      = errors.New("no hay sesión de asistencia abierta")
)
