// Package services contiene la lógica de negocio de la consola.
// Los controllers traducen HTTP <-> servicio; acá no entra net/http.
package services

import (
	"context"
	"net/url"
	"strings"

	apperrors "github.com/dropDatabas3/cordely/internal/http/errors"

	"github.com/dropDatabas3/cordely/internal/http/dto"
	"github.com/dropDatabas3/cordely/internal/mail"
	"github.com/dropDatabas3/cordely/internal/metrics"
	"github.com/dropDatabas3/cordely/internal/observability/logger"
	"github.com/dropDatabas3/cordely/internal/qr"
)

// CredentialsSubject es el asunto del correo de credenciales.
const CredentialsSubject = "ログイン情報のご案内"

// CredentialsService orquesta el envío de credenciales: QR → MIME → dispatch.
// Sin retries ni persistencia; todo el estado es por-request.
type CredentialsService struct {
	encoder  *qr.Encoder
	composer *mail.Composer
	sender   mail.Sender

	customersBaseURL string
	ownersBaseURL    string
}

// NewCredentialsService arma el servicio con sus colaboradores.
func NewCredentialsService(enc *qr.Encoder, comp *mail.Composer, sender mail.Sender, customersBaseURL, ownersBaseURL string) *CredentialsService {
	return &CredentialsService{
		encoder:          enc,
		composer:         comp,
		sender:           sender,
		customersBaseURL: customersBaseURL,
		ownersBaseURL:    ownersBaseURL,
	}
}

// escapeQueryComponent escapa un valor para query string al estilo
// encodeURIComponent de JS: espacio como %20, nunca como "+". Los portales
// parsean el siteKey con URLSearchParams, que no decodifica "+" a espacio.
func escapeQueryComponent(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// ResolveTargetURL aplica la precedencia del URL de clientes:
// customerUrl explícito (trimmed) > base?siteKey=<key> > base.
func (s *CredentialsService) ResolveTargetURL(customerURL, siteKey string) string {
	if u := strings.TrimSpace(customerURL); u != "" {
		return u
	}
	if siteKey != "" {
		return s.customersBaseURL + "?siteKey=" + escapeQueryComponent(siteKey)
	}
	return s.customersBaseURL
}

// buildBody arma el cuerpo en japonés del correo de credenciales.
// El texto es el que ya reciben los dueños; no traducir ni reordenar.
func (s *CredentialsService) buildBody(email, password, customerURL string) string {
	lines := []string{
		"以下のログイン情報をご利用ください。",
		"",
		"顧客用URL: " + customerURL,
		"店舗用URL: " + s.ownersBaseURL,
		"",
		"メールアドレス: " + email,
		"初回ログインパスワード: " + password,
		"",
		"※顧客用URLのQRコードを添付しています。店頭掲示などにお使いください。",
	}
	return strings.Join(lines, "\n")
}

// Send ejecuta el flujo completo. Errores:
//   - ErrMissingFields si faltan email o password
//   - ErrEncodingFailed si el QR no se pudo generar
//   - ErrDispatchFailed si la composición o el envío fallan
func (s *CredentialsService) Send(ctx context.Context, req dto.SendCredentialsRequest) error {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return apperrors.ErrMissingFields
	}

	targetURL := s.ResolveTargetURL(req.CustomerURL, req.SiteKey)
	log := logger.From(ctx).With(
		logger.Component("credentials"),
		logger.Recipient(req.Email),
		logger.SiteKey(req.SiteKey),
	)

	qrBase64, err := s.encoder.EncodeBase64(targetURL)
	if err != nil {
		metrics.CredentialsFailed.WithLabelValues("encode").Inc()
		log.Error("fallo generando QR", logger.Err(err))
		return apperrors.ErrEncodingFailed.WithCause(err)
	}

	body := s.buildBody(req.Email, req.Password, targetURL)
	msg, err := s.composer.Compose(req.Email, CredentialsSubject, body, qrBase64)
	if err != nil {
		metrics.CredentialsFailed.WithLabelValues("compose").Inc()
		log.Error("fallo componiendo MIME", logger.Err(err))
		return apperrors.ErrDispatchFailed.WithCause(err)
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		metrics.CredentialsFailed.WithLabelValues("dispatch").Inc()
		log.Error("fallo enviando correo", logger.Err(err))
		return apperrors.ErrDispatchFailed.WithCause(err)
	}

	metrics.CredentialsSent.Inc()
	log.Info("credenciales enviadas")
	return nil
}
