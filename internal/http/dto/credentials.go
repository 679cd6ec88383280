// Package dto define los request/response JSON de la API.
package dto

// SendCredentialsRequest es el body de POST /api/send-credentials.
// customerUrl explícito le gana al derivado por siteKey.
type SendCredentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CustomerURL string `json:"customerUrl,omitempty"`
	SiteKey     string `json:"siteKey,omitempty"`
}

// SendCredentialsResponse es la respuesta de éxito.
type SendCredentialsResponse struct {
	OK bool `json:"ok"`
}
