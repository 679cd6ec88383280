package mail

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// AttachmentFilename es el nombre del PNG adjunto con el QR.
const AttachmentFilename = "customer-qr.png"

// Message es el correo ya compuesto, efímero y por-request: se construye,
// se envía y se descarta. No se persiste.
type Message struct {
	To      string
	Subject string

	// Raw es el documento RFC 2822 completo (CRLF, multipart/mixed).
	Raw string
	// RawWebSafe es Raw en base64 con alfabeto web-safe y sin padding,
	// el formato "raw" que exige la Gmail API.
	RawWebSafe string
}

// Composer arma mensajes multipart/mixed con cuerpo de texto + PNG adjunto.
type Composer struct {
	// SenderName es el display name del remitente (ej: "Xenovant").
	SenderName string
	// SenderEmail es la dirección del remitente.
	SenderEmail string

	// now permite fijar el reloj en tests (boundary determinístico).
	now func() time.Time
}

// NewComposer crea un Composer para el remitente dado.
func NewComposer(senderName, senderEmail string) *Composer {
	return &Composer{SenderName: senderName, SenderEmail: senderEmail, now: time.Now}
}

// Compose construye el mensaje: exactamente dos partes MIME.
//
//  1. text/plain charset UTF-8, transfer encoding 7bit
//  2. image/png en base64, Content-Disposition attachment
//
// El boundary se deriva del timestamp para que sea único por mensaje y no
// colisione con el contenido del cuerpo.
func (c *Composer) Compose(to, subject, textBody, pngBase64 string) (*Message, error) {
	if strings.TrimSpace(to) == "" {
		return nil, fmt.Errorf("compose: destinatario vacío")
	}

	now := c.now
	if now == nil {
		now = time.Now
	}
	boundary := fmt.Sprintf("mail-boundary-%d", now().UnixMilli())

	// Subject en RFC 2047 (base64 UTF-8); necesario para asuntos no-ASCII.
	encodedSubject := fmt.Sprintf("=?UTF-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(subject)))

	from := c.SenderEmail
	if c.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", c.SenderName, c.SenderEmail)
	}

	lines := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", encodedSubject),
		"MIME-Version: 1.0",
		fmt.Sprintf(`Content-Type: multipart/mixed; boundary="%s"`, boundary),
		"",
		fmt.Sprintf("--%s", boundary),
		`Content-Type: text/plain; charset="UTF-8"`,
		"Content-Transfer-Encoding: 7bit",
		"",
		textBody,
		"",
		fmt.Sprintf("--%s", boundary),
		"Content-Type: image/png",
		"Content-Transfer-Encoding: base64",
		fmt.Sprintf(`Content-Disposition: attachment; filename="%s"`, AttachmentFilename),
		"",
		pngBase64,
		"",
		fmt.Sprintf("--%s--", boundary),
	}

	raw := strings.Join(lines, "\r\n")

	return &Message{
		To:      to,
		Subject: subject,
		Raw:     raw,
		// RawURLEncoding aplica exactamente la transformación requerida:
		// + -> -, / -> _, sin '=' de relleno.
		RawWebSafe: base64.RawURLEncoding.EncodeToString([]byte(raw)),
	}, nil
}
