package domain

import "strings"

// FormatDocument renders a bare digit string as a CPF (123.456.789-00) or
// CNPJ (12.345.678/0001-00). Anything that is not exactly 11 or 14 digits
// comes back unchanged.
func FormatDocument(raw string) string {
	digits := digitsOnly(raw)
	switch len(digits) {
	case 11:
		return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
	case 14:
		return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:14]
	default:
		return raw
	}
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
