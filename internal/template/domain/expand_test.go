package domain

import "testing"

func TestExpandSubstitutesBoundTokens(t *testing.T) {
	got := Expand("Olá {{CLIENTE_NOME}}", Bindings{VarClientName: "Maria"})
	if got != "Olá Maria" {
		t.Fatalf("expected %q, got %q", "Olá Maria", got)
	}
}

func TestExpandLeavesUnboundTokensVerbatim(t *testing.T) {
	content := "Grupo {{GRUPO_NOME}}, cota {{COTA_NUMERO}}"
	got := Expand(content, Bindings{VarGroupName: "Imóveis 12"})
	want := "Grupo Imóveis 12, cota {{COTA_NUMERO}}"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExpandIgnoresUnknownTokens(t *testing.T) {
	content := "Valor {{VALOR_TOTAL}} para {{CLIENTE_NOME}}"
	got := Expand(content, Bindings{
		VarClientName: "João",
		"VALOR_TOTAL": "R$ 50.000,00",
	})
	want := "Valor {{VALOR_TOTAL}} para João"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExpandReplacesEveryOccurrence(t *testing.T) {
	content := "{{CLIENTE_NOME}} e {{CLIENTE_NOME}}"
	got := Expand(content, Bindings{VarClientName: "Ana"})
	if got != "Ana e Ana" {
		t.Fatalf("expected both occurrences replaced, got %q", got)
	}
}

func TestExpandWithoutBindings(t *testing.T) {
	content := "Olá {{CLIENTE_NOME}}"
	if got := Expand(content, nil); got != content {
		t.Fatalf("expected content untouched, got %q", got)
	}
}
