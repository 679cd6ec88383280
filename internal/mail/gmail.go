package mail

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/dropDatabas3/cordely/internal/observability/logger"
)

// GmailConfig son las credenciales OAuth2 para enviar por la Gmail API.
// El refresh token es de larga vida; el access token se obtiene implícito
// vía el TokenSource.
type GmailConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	RefreshToken string
}

// GmailSender implementa Sender usando la Gmail API (users.messages.send).
type GmailSender struct {
	cfg GmailConfig
}

// NewGmailSender crea un GmailSender con las credenciales dadas.
func NewGmailSender(cfg GmailConfig) (*GmailSender, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, fmt.Errorf("gmail: faltan credenciales OAuth2 (client id/secret, refresh token)")
	}
	return &GmailSender{cfg: cfg}, nil
}

// Send entrega el mensaje crudo para la cuenta autenticada ("me").
// Cada request construye su propio cliente: no hay estado compartido entre
// envíos concurrentes.
func (s *GmailSender) Send(ctx context.Context, msg *Message) error {
	log := logger.From(ctx).With(
		logger.Component("GmailSender"),
		logger.Recipient(msg.To),
	)

	ocfg := &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		RedirectURL:  s.cfg.RedirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	ts := ocfg.TokenSource(ctx, &oauth2.Token{RefreshToken: s.cfg.RefreshToken})

	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		log.Error("gmail client init failed", logger.Err(err))
		return fmt.Errorf("gmail service: %w", err)
	}

	_, err = svc.Users.Messages.Send("me", &gmail.Message{Raw: msg.RawWebSafe}).Context(ctx).Do()
	if err != nil {
		log.Error("gmail send failed", logger.Err(err))
		return fmt.Errorf("gmail send: %w", err)
	}

	log.Info("email sent successfully")
	return nil
}
