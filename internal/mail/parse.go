package mail

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	netmail "net/mail"
	"strings"
)

// composedParts es la vista des-armada de un mensaje compuesto.
type composedParts struct {
	text          string
	attachmentB64 string
}

// parseComposed des-arma el documento crudo generado por el Composer.
// Lo usa el backend SMTP (go-mail arma su propio MIME) y los tests.
func parseComposed(raw string) (*composedParts, error) {
	m, err := netmail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}

	mediaType, params, err := mime.ParseMediaType(m.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("content-type inesperado: %s", mediaType)
	}

	out := &composedParts{}
	mr := multipart.NewReader(m.Body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(p)
		if err != nil {
			return nil, err
		}
		ct := p.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(ct, "text/plain"):
			out.text = strings.TrimRight(string(body), "\r\n")
		case strings.HasPrefix(ct, "image/png"):
			out.attachmentB64 = strings.TrimSpace(string(body))
		}
	}

	if out.text == "" && out.attachmentB64 == "" {
		return nil, fmt.Errorf("mensaje sin partes reconocibles")
	}
	return out, nil
}
