// Package mail compone y despacha los correos de credenciales.
//
// El Composer arma el documento MIME crudo (texto + QR adjunto) y el Sender lo
// entrega por el backend configurado (Gmail API u SMTP). Los errores de entrega
// no se reintentan: el caller ve el fallo inmediato.
package mail

import "context"

// Sender is the interface that all delivery backends implement.
// This abstraction allows swapping providers (Gmail API, SMTP) without
// changing business logic, y permite fakes en tests.
type Sender interface {
	// Send entrega un mensaje ya compuesto. msg.Raw es el documento MIME
	// completo; msg.RawWebSafe es su forma base64 web-safe (formato "raw"
	// de la Gmail API). Cada backend usa la representación que necesita.
	Send(ctx context.Context, msg *Message) error
}
