package render

import (
	"strings"
	"testing"
	"time"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
)

func TestRenderPendingFromTokenOnly(t *testing.T) {
	r := NewHTMLRenderer()
	content := `Assinam: [SIGNATURE id="s1" name="Maria" cpf="12345678900"]`

	out := r.Render(content, nil)

	if strings.Contains(out, "[SIGNATURE") {
		t.Fatalf("token left in output: %s", out)
	}
	for _, want := range []string{"signature-pending", `data-slot-id="s1"`, "Maria", "123.456.789-00", "Aguardando assinatura"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSignedSlot(t *testing.T) {
	r := NewHTMLRenderer()
	signedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	slots := []domain.SignatureSlot{{
		SlotID:     "s1",
		SignerName: "Maria Silva",
		SignerCPF:  "12345678900",
		Status:     domain.SlotSigned,
		ImageURL:   "http://localhost/files/signatures/s1.png",
		SignedAt:   &signedAt,
	}}

	out := r.Render(`[SIGNATURE id="s1" name="Maria" cpf="12345678900"]`, slots)

	for _, want := range []string{"signature-signed", "signatures/s1.png", "Maria Silva", "Assinado em 14/03/2026 10:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Aguardando") {
		t.Errorf("signed slot rendered as pending:\n%s", out)
	}
}

func TestRenderSlotRecordOverridesToken(t *testing.T) {
	r := NewHTMLRenderer()
	slots := []domain.SignatureSlot{{
		SlotID:     "s1",
		SignerName: "Nome Corrigido",
		SignerCPF:  "98765432100",
		Status:     domain.SlotPending,
	}}

	out := r.Render(`[SIGNATURE id="s1" name="Nome Antigo" cpf="11111111111"]`, slots)

	if !strings.Contains(out, "Nome Corrigido") || strings.Contains(out, "Nome Antigo") {
		t.Errorf("slot record should take precedence over token attributes:\n%s", out)
	}
}

func TestRenderDuplicateTokensCollapse(t *testing.T) {
	r := NewHTMLRenderer()
	content := `[SIGNATURE id="dup" name="Uma" cpf="1"] meio [SIGNATURE id="dup" name="Uma" cpf="1"]`

	out := r.Render(content, nil)

	if got := strings.Count(out, `data-slot-id="dup"`); got != 1 {
		t.Errorf("expected exactly 1 block for duplicated slot id, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, " meio ") {
		t.Errorf("surrounding text lost:\n%s", out)
	}
}

func TestRenderLeavesMalformedTokenAndSurroundingText(t *testing.T) {
	r := NewHTMLRenderer()
	content := `<p>Cláusula primeira.</p> [SIGNATURE name="sem id"] <p>Cláusula segunda.</p>`

	out := r.Render(content, nil)

	for _, want := range []string{"<p>Cláusula primeira.</p>", `[SIGNATURE name="sem id"]`, "<p>Cláusula segunda.</p>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEscapesSignerName(t *testing.T) {
	r := NewHTMLRenderer()

	out := r.Render(`[SIGNATURE id="s1" name="<script>x</script>" cpf=""]`, nil)

	if strings.Contains(out, "<script>") {
		t.Errorf("signer name not escaped:\n%s", out)
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := NewHTMLRenderer()
	content := `[SIGNATURE id="a" name="A" cpf="1"] [SIGNATURE id="b" name="B" cpf="2"]`
	slots := []domain.SignatureSlot{{SlotID: "b", SignerName: "B", Status: domain.SlotPending}}

	first := r.Render(content, slots)
	for i := 0; i < 5; i++ {
		if got := r.Render(content, slots); got != first {
			t.Fatalf("render is not deterministic")
		}
	}
}
