package mail

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"

	gomail "github.com/go-mail/mail"

	"github.com/dropDatabas3/cordely/internal/observability/logger"
)

// SMTPSender implementa Sender usando SMTP. Backend alternativo para entornos
// sin cuenta Gmail (on-premise, staging con MailHog, etc.).
type SMTPSender struct {
	Host               string
	Port               int
	From               string
	User               string
	Pass               string
	TLSMode            string // "auto" | "starttls" | "ssl" | "none"
	InsecureSkipVerify bool
}

// NewSMTPSender crea un nuevo SMTPSender con los parámetros dados.
func NewSMTPSender(host string, port int, from, user, pass string) *SMTPSender {
	return &SMTPSender{
		Host:    host,
		Port:    port,
		From:    from,
		User:    user,
		Pass:    pass,
		TLSMode: "auto",
	}
}

// Send entrega el mensaje por SMTP. El documento crudo ya viene compuesto por
// el Composer; acá solo se re-arma para el dialer de go-mail (texto + adjunto).
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	log := logger.From(ctx).With(
		logger.Component("SMTPSender"),
		logger.String("host", s.Host),
		logger.Int("port", s.Port),
		logger.Recipient(msg.To),
	)

	parsed, err := parseComposed(msg.Raw)
	if err != nil {
		return fmt.Errorf("smtp: mensaje mal compuesto: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", parsed.text)

	png, err := base64.StdEncoding.DecodeString(parsed.attachmentB64)
	if err != nil {
		return fmt.Errorf("smtp: adjunto inválido: %w", err)
	}
	m.Attach(AttachmentFilename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(png)
		return err
	}))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         s.Host,
		InsecureSkipVerify: s.InsecureSkipVerify, // solo dev
	}

	switch s.TLSMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.TLSConfig = &tls.Config{InsecureSkipVerify: s.InsecureSkipVerify}
	default:
		// "auto"/"starttls": go-mail negocia STARTTLS si corresponde
	}

	if err := d.DialAndSend(m); err != nil {
		log.Error("smtp send failed", logger.Err(err))
		return fmt.Errorf("smtp send: %w", err)
	}

	log.Info("email sent successfully")
	return nil
}
