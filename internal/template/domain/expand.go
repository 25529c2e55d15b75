package domain

import "strings"

// Bindings maps variable names (without braces) to their literal values.
type Bindings map[string]string

// Variable tokens recognized by Expand. The token text is part of the
// persisted template format and must not change.
const (
	VarClientName    = "CLIENTE_NOME"
	VarClientEmail   = "CLIENTE_EMAIL"
	VarClientPhone   = "CLIENTE_TELEFONE"
	VarClientCpfCnpj = "CLIENTE_CPF_CNPJ"
	VarClientAddress = "CLIENTE_ENDERECO"
	VarGroupName     = "GRUPO_NOME"
	VarGroupDesc     = "GRUPO_DESCRICAO"
	VarQuotaNumber   = "COTA_NUMERO"
	VarTableName     = "TABELA_NOME"
	VarTablePercent  = "TABELA_PERCENTUAL"
	VarTableDetails  = "TABELA_DETALHES"
	VarCurrentDate   = "DATA_ATUAL"
)

// KnownVariables lists every token Expand will substitute.
var KnownVariables = []string{
	VarClientName,
	VarClientEmail,
	VarClientPhone,
	VarClientCpfCnpj,
	VarClientAddress,
	VarGroupName,
	VarGroupDesc,
	VarQuotaNumber,
	VarTableName,
	VarTablePercent,
	VarTableDetails,
	VarCurrentDate,
}

// Expand substitutes every bound occurrence of {{VARIABLE}} in content.
// Tokens without a binding, and tokens outside the known set, are left
// verbatim. Tokens do not nest, so substitution order is irrelevant.
func Expand(content string, bindings Bindings) string {
	if content == "" || len(bindings) == 0 {
		return content
	}

	pairs := make([]string, 0, 2*len(KnownVariables))
	for _, name := range KnownVariables {
		value, ok := bindings[name]
		if !ok {
			continue
		}
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	if len(pairs) == 0 {
		return content
	}
	return strings.NewReplacer(pairs...).Replace(content)
}
