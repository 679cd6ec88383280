// Package jpform normaliza datos de formularios japoneses: códigos postales,
// teléfonos y lookup de dirección por código postal (zipcloud).
package jpform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

var digitsRe = regexp.MustCompile(`\D`)

// FormatPostalCode normaliza "1234567" a "123-4567". Si la entrada ya tiene
// guión o no tiene 7 dígitos se devuelve tal cual vino (trim aplicado).
func FormatPostalCode(code string) string {
	code = strings.TrimSpace(code)
	digits := digitsRe.ReplaceAllString(code, "")
	if len(digits) == 7 {
		return digits[:3] + "-" + digits[3:]
	}
	return code
}

// FormatPhone normaliza un teléfono japonés a formato nacional con guiones
// ("09012345678" → "090-1234-5678"). Entradas no parseables vuelven sin tocar.
func FormatPhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	num, err := phonenumbers.Parse(raw, "JP")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.NATIONAL)
}

// Address es el resultado del lookup por código postal.
type Address struct {
	Prefecture string
	City       string
	Town       string
}

// String arma la dirección concatenada al estilo japonés.
func (a Address) String() string {
	return a.Prefecture + a.City + a.Town
}

// AddressLookup resuelve un código postal a dirección.
type AddressLookup interface {
	Lookup(ctx context.Context, postalCode string) (*Address, error)
}

// zipcloud expone GET https://zipcloud.ibsnet.co.jp/api/search?zipcode=NNNNNNN
const zipcloudEndpoint = "https://zipcloud.ibsnet.co.jp/api/search"

// ZipcloudLookup implementa AddressLookup contra la API pública de zipcloud.
type ZipcloudLookup struct {
	client *http.Client
}

func NewZipcloudLookup() *ZipcloudLookup {
	return &ZipcloudLookup{client: &http.Client{Timeout: 5 * time.Second}}
}

func (z *ZipcloudLookup) Lookup(ctx context.Context, postalCode string) (*Address, error) {
	digits := digitsRe.ReplaceAllString(postalCode, "")
	if len(digits) != 7 {
		return nil, fmt.Errorf("jpform: código postal inválido: %q", postalCode)
	}

	u := zipcloudEndpoint + "?zipcode=" + url.QueryEscape(digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := z.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jpform: zipcloud: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jpform: zipcloud status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Address1 string `json:"address1"`
			Address2 string `json:"address2"`
			Address3 string `json:"address3"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("jpform: sin resultados para %s", digits)
	}
	r := body.Results[0]
	return &Address{Prefecture: r.Address1, City: r.Address2, Town: r.Address3}, nil
}
