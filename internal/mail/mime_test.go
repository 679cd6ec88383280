package mail

import (
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
	"time"
)

func fixedComposer() *Composer {
	c := NewComposer("Xenovant", "noreply@example.com")
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c
}

func TestCompose_Headers(t *testing.T) {
	c := fixedComposer()
	msg, err := c.Compose("owner@example.com", "ログイン情報のご案内", "hola", "cGll")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	m, err := mail.ReadMessage(strings.NewReader(msg.Raw))
	if err != nil {
		t.Fatalf("raw no parsea como RFC 2822: %v", err)
	}

	if got := m.Header.Get("From"); got != "Xenovant <noreply@example.com>" {
		t.Fatalf("From = %q", got)
	}
	if got := m.Header.Get("To"); got != "owner@example.com" {
		t.Fatalf("To = %q", got)
	}
	if got := m.Header.Get("MIME-Version"); got != "1.0" {
		t.Fatalf("MIME-Version = %q", got)
	}

	// Subject en RFC 2047 base64 UTF-8
	wantSubject := fmt.Sprintf("=?UTF-8?B?%s?=",
		base64.StdEncoding.EncodeToString([]byte("ログイン情報のご案内")))
	if got := m.Header.Get("Subject"); got != wantSubject {
		t.Fatalf("Subject = %q, want %q", got, wantSubject)
	}

	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(m.Header.Get("Subject"))
	if err != nil || decoded != "ログイン情報のご案内" {
		t.Fatalf("subject decodificado = %q (err %v)", decoded, err)
	}
}

func TestCompose_TwoParts(t *testing.T) {
	c := fixedComposer()
	msg, err := c.Compose("owner@example.com", "subj", "cuerpo de prueba", "QkFTRTY0")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	m, err := mail.ReadMessage(strings.NewReader(msg.Raw))
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	mediaType, params, err := mime.ParseMediaType(m.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("content-type: %v", err)
	}
	if mediaType != "multipart/mixed" {
		t.Fatalf("mediaType = %q", mediaType)
	}
	if want := "mail-boundary-1700000000000"; params["boundary"] != want {
		t.Fatalf("boundary = %q, want %q", params["boundary"], want)
	}

	mr := multipart.NewReader(m.Body, params["boundary"])

	// parte 1: texto
	p1, err := mr.NextPart()
	if err != nil {
		t.Fatalf("part 1: %v", err)
	}
	if ct := p1.Header.Get("Content-Type"); ct != `text/plain; charset="UTF-8"` {
		t.Fatalf("part 1 content-type = %q", ct)
	}
	if te := p1.Header.Get("Content-Transfer-Encoding"); te != "7bit" {
		t.Fatalf("part 1 transfer-encoding = %q", te)
	}

	// parte 2: PNG adjunto
	p2, err := mr.NextPart()
	if err != nil {
		t.Fatalf("part 2: %v", err)
	}
	if ct := p2.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("part 2 content-type = %q", ct)
	}
	if cd := p2.Header.Get("Content-Disposition"); cd != `attachment; filename="customer-qr.png"` {
		t.Fatalf("part 2 disposition = %q", cd)
	}

	// no hay tercera parte
	if _, err := mr.NextPart(); err == nil {
		t.Fatal("se esperaban exactamente dos partes")
	}
}

func TestCompose_CRLFOnly(t *testing.T) {
	c := fixedComposer()
	msg, err := c.Compose("a@b.c", "s", "linea", "eA==")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	// todo \n del documento debe venir precedido de \r (el cuerpo interno usa \n
	// del caller; acá el cuerpo es una sola línea)
	for i, ch := range msg.Raw {
		if ch == '\n' && (i == 0 || msg.Raw[i-1] != '\r') {
			t.Fatalf("LF sin CR en offset %d", i)
		}
	}
}

func TestCompose_WebSafeRoundTrip(t *testing.T) {
	c := fixedComposer()
	msg, err := c.Compose("a@b.c", "s", "cuerpo+con/simbolos que fuerzan + y /", strings.Repeat("QUJD", 50))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if strings.ContainsAny(msg.RawWebSafe, "+/=") {
		t.Fatalf("RawWebSafe contiene caracteres no web-safe: %q", msg.RawWebSafe)
	}
	decoded, err := base64.RawURLEncoding.DecodeString(msg.RawWebSafe)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != msg.Raw {
		t.Fatal("round-trip web-safe no reproduce el documento original")
	}
}

func TestCompose_EmptyRecipient(t *testing.T) {
	c := fixedComposer()
	if _, err := c.Compose("   ", "s", "b", "eA=="); err == nil {
		t.Fatal("se esperaba error con destinatario vacío")
	}
}

func TestParseComposed(t *testing.T) {
	c := fixedComposer()
	msg, err := c.Compose("a@b.c", "s", "hola mundo", "cGxhY2Vob2xkZXI=")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	parts, err := parseComposed(msg.Raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parts.text != "hola mundo" {
		t.Fatalf("text = %q", parts.text)
	}
	if parts.attachmentB64 != "cGxhY2Vob2xkZXI=" {
		t.Fatalf("attachment = %q", parts.attachmentB64)
	}
}
