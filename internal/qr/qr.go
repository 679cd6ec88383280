// Package qr genera códigos QR como PNG en base64 para adjuntar en correos.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultWidth es el ancho en píxeles usado por la consola (igual que el portal).
const DefaultWidth = 240

// Encoder genera un PNG base64 (sin prefijo data-URI) a partir de un URL.
// Determinístico para un mismo input y versión del encoder.
type Encoder struct {
	// Width en píxeles del PNG generado. Si es <= 0 se usa DefaultWidth.
	Width int
}

// New crea un Encoder con el ancho dado.
func New(width int) *Encoder {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Encoder{Width: width}
}

// EncodePNG genera el PNG crudo del QR para el URL dado.
func (e *Encoder) EncodePNG(url string) ([]byte, error) {
	w := e.Width
	if w <= 0 {
		w = DefaultWidth
	}
	png, err := qrcode.Encode(url, qrcode.Medium, w)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return png, nil
}

// EncodeBase64 genera el QR y lo retorna como base64 estándar, listo para
// incrustar como parte MIME. No incluye el prefijo "data:image/png;base64,".
func (e *Encoder) EncodeBase64(url string) (string, error) {
	png, err := e.EncodePNG(url)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
