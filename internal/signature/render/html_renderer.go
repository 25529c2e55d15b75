package render

import (
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
)

var tokenPattern = regexp.MustCompile(`\[SIGNATURE\s+[^\]]*\]`)

var blockTemplates = template.Must(template.New("signature").Parse(`
{{- define "pending" -}}
<div class="signature-block signature-pending" data-slot-id="{{.SlotID}}">
  <div class="signature-line"></div>
  <p class="signature-name">{{.SignerName}}</p>
  {{if .SignerDoc}}<p class="signature-doc">CPF: {{.SignerDoc}}</p>{{end}}
  <p class="signature-status">Aguardando assinatura</p>
</div>
{{- end -}}
{{- define "signed" -}}
<div class="signature-block signature-signed" data-slot-id="{{.SlotID}}">
  <img class="signature-image" src="{{.ImageURL}}" alt="Assinatura de {{.SignerName}}"/>
  <p class="signature-name">{{.SignerName}}</p>
  {{if .SignerDoc}}<p class="signature-doc">CPF: {{.SignerDoc}}</p>{{end}}
  <p class="signature-status">Assinado em {{.SignedAt}}</p>
</div>
{{- end -}}`))

type blockData struct {
	SlotID     string
	SignerName string
	SignerDoc  string
	ImageURL   string
	SignedAt   string
}

// HTMLRenderer produces print-ready signature blocks. Slot records take
// precedence over token attributes; a token with no backing record
// renders as a pending block built from the token alone, so a removed
// signature falls back cleanly.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer { return &HTMLRenderer{} }

func (r *HTMLRenderer) Render(content string, slots []domain.SignatureSlot) string {
	byID := make(map[string]domain.SignatureSlot, len(slots))
	for _, slot := range slots {
		byID[slot.SlotID] = slot
	}

	rendered := map[string]bool{}
	return tokenPattern.ReplaceAllStringFunc(content, func(token string) string {
		ref, ok := parseTokenRef(token)
		if !ok {
			// Not a recognizable placeholder; leave the text alone.
			return token
		}
		if rendered[ref.SlotID] {
			// A slot signs once; repeated tokens collapse to nothing.
			return ""
		}
		rendered[ref.SlotID] = true

		if slot, found := byID[ref.SlotID]; found {
			return renderSlot(slot)
		}
		return renderBlock("pending", blockData{
			SlotID:     ref.SlotID,
			SignerName: ref.SignerName,
			SignerDoc:  domain.FormatDocument(ref.SignerCPF),
		})
	})
}

func renderSlot(slot domain.SignatureSlot) string {
	data := blockData{
		SlotID:     slot.SlotID,
		SignerName: slot.SignerName,
		SignerDoc:  domain.FormatDocument(slot.SignerCPF),
		ImageURL:   slot.ImageURL,
	}
	if slot.Status == domain.SlotSigned {
		if slot.SignedAt != nil {
			data.SignedAt = slot.SignedAt.In(time.UTC).Format("02/01/2006 15:04")
		}
		return renderBlock("signed", data)
	}
	return renderBlock("pending", data)
}

func renderBlock(name string, data blockData) string {
	var b strings.Builder
	if err := blockTemplates.ExecuteTemplate(&b, name, data); err != nil {
		// The templates are static and the data is plain strings; this
		// cannot fail at runtime.
		return ""
	}
	return b.String()
}

func parseTokenRef(token string) (domain.SlotRef, bool) {
	refs := domain.ExtractSlots(token)
	if len(refs) != 1 {
		return domain.SlotRef{}, false
	}
	return refs[0], true
}
