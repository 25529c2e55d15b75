package logger

import "testing"

func TestMaskAuthorization(t *testing.T) {
	got := MaskAuthorization("Bearer abcdef1234")
	want := "Bearer ****1234"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskDocument(t *testing.T) {
	got := MaskDocument("123.456.789-00")
	want := "****00"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskJSONHidesSignerIdentity(t *testing.T) {
	input := map[string]any{
		"password":   "hunter2",
		"signer_cpf": "12345678900",
		"nested": map[string]any{
			"access_token": "tok_12345678",
		},
	}
	masked := MaskJSON(input)
	if masked["password"] != "****ter2" {
		t.Fatalf("expected masked password, got %v", masked["password"])
	}
	if masked["signer_cpf"] != "****8900" {
		t.Fatalf("expected masked cpf, got %v", masked["signer_cpf"])
	}
	nested, ok := masked["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map")
	}
	if nested["access_token"] != "****5678" {
		t.Fatalf("expected masked token, got %v", nested["access_token"])
	}
}
