package validation

import "testing"

func TestValidSiteKey(t *testing.T) {
	valids := []string{"a", "tienda01", "ABC123", "0"}
	for _, v := range valids {
		if !ValidSiteKey(v) {
			t.Fatalf("expected valid: %q", v)
		}
	}

	invalids := []string{"", "con espacio", "con-guion", "bajo_guion", "日本語", "a/b", "a.b"}
	for _, v := range invalids {
		if ValidSiteKey(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valids := []string{"a@b.co", "owner+tag@example.com"}
	for _, v := range valids {
		if !ValidEmail(v) {
			t.Fatalf("expected valid: %q", v)
		}
	}

	invalids := []string{"", "  ", "sinarroba", "Nombre <a@b.co>", "a@"}
	for _, v := range invalids {
		if ValidEmail(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}

func TestValidPassword(t *testing.T) {
	if ValidPassword("12345") {
		t.Fatal("5 chars debería ser inválido")
	}
	if !ValidPassword("123456") {
		t.Fatal("6 chars debería ser válido")
	}
}
