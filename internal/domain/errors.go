package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrAccessDenied       = errors.New("acceso denegado")
	ErrValidation         = errors.New("regla de negocio violada")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// ValidationError describe una violación de regla de negocio con detalle a nivel de campo
// (franja horaria inválida, par de roles no permitido, organización distinta, etc.).
// Envuelve ErrValidation para que los handlers puedan mapearla con errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación fallida en %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError indica solapamiento de citas. Lleva los IDs de las citas en conflicto
// para que el caller pueda ofrecer "elige otro horario". Envuelve ErrConflict.
type ConflictError struct {
	AppointmentIDs []string
}

func (e *ConflictError) Error() string {
	return "la cita se solapa con: " + strings.Join(e.AppointmentIDs, ", ")
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
