package domain

import "testing"

func TestExtractSlots(t *testing.T) {
	content := `Contrato firmado entre as partes.

[SIGNATURE id="a1" name="Maria Silva" cpf="12345678900"]

Testemunha:

[SIGNATURE id="b2" name="João Souza" cpf="98765432100"]`

	refs := ExtractSlots(content)
	if len(refs) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(refs))
	}
	if refs[0].SlotID != "a1" || refs[0].SignerName != "Maria Silva" || refs[0].SignerCPF != "12345678900" {
		t.Errorf("unexpected first ref: %+v", refs[0])
	}
	if refs[1].SlotID != "b2" || refs[1].SignerName != "João Souza" {
		t.Errorf("unexpected second ref: %+v", refs[1])
	}
}

func TestExtractSlotsSkipsTokenWithoutID(t *testing.T) {
	content := `[SIGNATURE name="Sem ID" cpf="111"] [SIGNATURE id="ok" name="Com ID" cpf=""]`

	refs := ExtractSlots(content)
	if len(refs) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(refs))
	}
	if refs[0].SlotID != "ok" {
		t.Errorf("unexpected ref: %+v", refs[0])
	}
}

func TestExtractSlotsDedupesByID(t *testing.T) {
	content := `[SIGNATURE id="dup" name="Primeira" cpf="1"] texto [SIGNATURE id="dup" name="Segunda" cpf="2"]`

	refs := ExtractSlots(content)
	if len(refs) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(refs))
	}
	if refs[0].SignerName != "Primeira" {
		t.Errorf("expected first occurrence to win, got %+v", refs[0])
	}
}

func TestExtractSlotsAttributeOrderIrrelevant(t *testing.T) {
	refs := ExtractSlots(`[SIGNATURE cpf="123" id="x9" name="Fora de Ordem"]`)
	if len(refs) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(refs))
	}
	if refs[0].SlotID != "x9" || refs[0].SignerCPF != "123" {
		t.Errorf("unexpected ref: %+v", refs[0])
	}
}

func TestExtractSlotsEmptyContent(t *testing.T) {
	if refs := ExtractSlots("sem placeholders aqui"); len(refs) != 0 {
		t.Fatalf("expected no slots, got %d", len(refs))
	}
}

func TestBuildTokenRoundTrip(t *testing.T) {
	ref := SlotRef{SlotID: "s1", SignerName: "Maria", SignerCPF: "12345678900"}

	refs := ExtractSlots("prefixo " + BuildToken(ref) + " sufixo")
	if len(refs) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(refs))
	}
	if refs[0] != ref {
		t.Errorf("round trip mismatch: got %+v want %+v", refs[0], ref)
	}
}
