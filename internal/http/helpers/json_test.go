package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type payload struct {
	Name string `json:"name"`
}

func TestReadJSON_OK(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"taro"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var p payload
	if !ReadJSON(rec, req, &p) {
		t.Fatalf("ReadJSON falló: body=%s", rec.Body.String())
	}
	if p.Name != "taro" {
		t.Fatalf("Name = %q", p.Name)
	}
}

func TestReadJSON_WrongContentType(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"taro"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	var p payload
	if ReadJSON(rec, req, &p) {
		t.Fatal("ReadJSON aceptó Content-Type no JSON")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if body["code"] != "BAD_REQUEST" {
		t.Fatalf("code = %q", body["code"])
	}
}

func TestReadJSON_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var p payload
	if ReadJSON(rec, req, &p) {
		t.Fatal("ReadJSON aceptó JSON malformado")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if body["code"] != "INVALID_JSON" {
		t.Fatalf("code = %q", body["code"])
	}
}

func TestReadJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var p payload
	if !ReadJSON(rec, req, &p) {
		t.Fatal("ReadJSON rechazó body vacío (EOF debe tolerarse)")
	}
}
