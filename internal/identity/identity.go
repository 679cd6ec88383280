// Package identity abstrae el alta de usuarios del portal de dueños.
package identity

import (
	"context"
	"errors"
)

var (
	// ErrEmailInUse indica que ya existe una cuenta con ese email.
	ErrEmailInUse = errors.New("identity: email already in use")
	// ErrWeakPassword indica que el password no cumple el mínimo (6 caracteres).
	ErrWeakPassword = errors.New("identity: password too weak")
)

// Provider crea cuentas en el backend de identidad.
type Provider interface {
	// CreateUser da de alta la cuenta y devuelve su uid.
	CreateUser(ctx context.Context, email, password string) (string, error)
}
