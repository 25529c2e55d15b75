package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Signature placeholders travel inside contract content as bracketed
// tokens, for example:
//
//	[SIGNATURE id="a1b2" name="Maria Silva" cpf="12345678900"]
//
// The token is the wire format: content is stored with tokens intact and
// they are only swapped for visual blocks at render time, so edits to the
// surrounding text never lose signing state.
var (
	tokenPattern = regexp.MustCompile(`\[SIGNATURE\s+[^\]]*\]`)
	attrPattern  = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

// ExtractSlots scans content for signature tokens and returns one SlotRef
// per distinct slot id, in order of first appearance. Tokens without an id
// attribute are skipped; a repeated id keeps the attributes of its first
// occurrence.
func ExtractSlots(content string) []SlotRef {
	var (
		refs []SlotRef
		seen = map[string]bool{}
	)
	for _, token := range tokenPattern.FindAllString(content, -1) {
		ref, ok := parseToken(token)
		if !ok || seen[ref.SlotID] {
			continue
		}
		seen[ref.SlotID] = true
		refs = append(refs, ref)
	}
	return refs
}

// BuildToken renders a SlotRef back into its token form. Quotes in
// attribute values are dropped since the token grammar cannot carry them.
func BuildToken(ref SlotRef) string {
	return fmt.Sprintf(`[SIGNATURE id=%q name=%q cpf=%q]`,
		stripQuotes(ref.SlotID), stripQuotes(ref.SignerName), stripQuotes(ref.SignerCPF))
}

func parseToken(token string) (SlotRef, bool) {
	var ref SlotRef
	for _, m := range attrPattern.FindAllStringSubmatch(token, -1) {
		switch m[1] {
		case "id":
			ref.SlotID = m[2]
		case "name":
			ref.SignerName = m[2]
		case "cpf":
			ref.SignerCPF = m[2]
		}
	}
	if strings.TrimSpace(ref.SlotID) == "" {
		return SlotRef{}, false
	}
	return ref, true
}

func stripQuotes(v string) string {
	return strings.ReplaceAll(v, `"`, "")
}
