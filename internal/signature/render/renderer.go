package render

import (
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
)

// Renderer swaps signature tokens in contract content for visual blocks.
// Implementations are pure: same content and slots in, same output out,
// with no database or clock access.
type Renderer interface {
	Render(content string, slots []domain.SignatureSlot) string
}
