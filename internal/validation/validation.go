// Package validation reúne las validaciones de entrada de la consola.
package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

// siteKey: alfanumérico ASCII, sin guiones ni espacios (termina en URLs y
// document IDs de Firestore).
var siteKeyRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// MinPasswordLen es el mínimo que acepta el backend de identidad.
const MinPasswordLen = 6

// ValidSiteKey reporta si la key es usable como identificador de tienda.
func ValidSiteKey(key string) bool {
	return siteKeyRe.MatchString(key)
}

// ValidEmail reporta si el string es una dirección parseable.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// ValidPassword reporta si el password cumple el mínimo de longitud.
func ValidPassword(pw string) bool {
	return len(pw) >= MinPasswordLen
}
