package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/dropDatabas3/cordely/internal/http/errors"

	"github.com/dropDatabas3/cordely/internal/http/dto"
	"github.com/dropDatabas3/cordely/internal/mail"
	"github.com/dropDatabas3/cordely/internal/qr"
)

// fakeSender captura el mensaje en vez de enviarlo.
type fakeSender struct {
	sent []*mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

const (
	testCustomersBase = "https://cordely-customers.vercel.app"
	testOwnersBase    = "https://cordely-owners.vercel.app"
)

func newTestCredentialsService(sender mail.Sender) *CredentialsService {
	return NewCredentialsService(
		qr.New(240),
		mail.NewComposer("Xenovant", "noreply@example.com"),
		sender,
		testCustomersBase,
		testOwnersBase,
	)
}

func TestResolveTargetURL_Fallback(t *testing.T) {
	svc := newTestCredentialsService(&fakeSender{})
	got := svc.ResolveTargetURL("", "")
	require.Equal(t, testCustomersBase, got)
}

func TestResolveTargetURL_SiteKey(t *testing.T) {
	svc := newTestCredentialsService(&fakeSender{})

	got := svc.ResolveTargetURL("", "tienda01")
	require.Equal(t, testCustomersBase+"?siteKey=tienda01", got)

	// escapado estilo encodeURIComponent: espacio como %20, nunca "+"
	got = svc.ResolveTargetURL("", "key con espacios")
	require.Equal(t, testCustomersBase+"?siteKey=key%20con%20espacios", got)
	require.NotContains(t, got, "+")
}

func TestResolveTargetURL_ExplicitWins(t *testing.T) {
	svc := newTestCredentialsService(&fakeSender{})

	got := svc.ResolveTargetURL("  https://custom.example.com/x  ", "ignorada")
	require.Equal(t, "https://custom.example.com/x", got)

	// whitespace puro no cuenta como explícito
	got = svc.ResolveTargetURL("   ", "clave")
	require.Equal(t, testCustomersBase+"?siteKey=clave", got)
}

func TestSend_MissingFields(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestCredentialsService(sender)

	for _, req := range []dto.SendCredentialsRequest{
		{Email: "", Password: "secret"},
		{Email: "a@b.c", Password: ""},
		{Email: "  ", Password: "  "},
	} {
		err := svc.Send(context.Background(), req)
		require.ErrorIs(t, err, apperrors.ErrMissingFields)
	}
	// la validación corta antes de tocar el sender
	require.Empty(t, sender.sent)
}

func TestSend_Success(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestCredentialsService(sender)

	err := svc.Send(context.Background(), dto.SendCredentialsRequest{
		Email:    "owner@example.com",
		Password: "initpass",
		SiteKey:  "tienda01",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	require.Equal(t, "owner@example.com", msg.To)
	require.Equal(t, CredentialsSubject, msg.Subject)

	// el cuerpo incluye el URL derivado del siteKey y las credenciales
	require.Contains(t, msg.Raw, "?siteKey=tienda01")
	require.Contains(t, msg.Raw, "owner@example.com")
	require.Contains(t, msg.Raw, "initpass")
	require.Contains(t, msg.Raw, testOwnersBase)
}

func TestSend_EncodingFailure(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestCredentialsService(sender)

	// un URL más largo que la capacidad máxima de un QR hace fallar la generación
	err := svc.Send(context.Background(), dto.SendCredentialsRequest{
		Email:       "owner@example.com",
		Password:    "initpass",
		CustomerURL: "https://x.example/?q=" + strings.Repeat("a", 3000),
	})
	require.ErrorIs(t, err, apperrors.ErrEncodingFailed)
	require.Empty(t, sender.sent)
}

func TestSend_DispatchFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("gmail: boom")}
	svc := newTestCredentialsService(sender)

	err := svc.Send(context.Background(), dto.SendCredentialsRequest{
		Email:    "owner@example.com",
		Password: "initpass",
	})
	require.ErrorIs(t, err, apperrors.ErrDispatchFailed)
}

func TestBuildBody_Lines(t *testing.T) {
	svc := newTestCredentialsService(&fakeSender{})
	body := svc.buildBody("owner@example.com", "pw123456", "https://x.example/y")

	lines := strings.Split(body, "\n")
	require.Equal(t, "以下のログイン情報をご利用ください。", lines[0])
	require.Contains(t, body, "顧客用URL: https://x.example/y")
	require.Contains(t, body, "店舗用URL: "+testOwnersBase)
	require.Contains(t, body, "メールアドレス: owner@example.com")
	require.Contains(t, body, "初回ログインパスワード: pw123456")
}
