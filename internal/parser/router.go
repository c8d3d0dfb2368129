package parser

import "strings"

// route pairs a predicate over the (sender, subject) envelope with the
// parser to run when it matches. Routes are tried in order, most specific
// first, so adding a bank or format is a table change, not new control flow.
type route struct {
	name  string
	match func(from, subject string) bool
	parse Func
}

var routes = []route{
	// Layer 1: exact sender plus subject format.
	{
		name: "bancochile_cargo_en_cuenta",
		match: func(from, subject string) bool {
			return from == "enviodigital@bancochile.cl" && strings.Contains(subject, "cargo en cuenta")
		},
		parse: ParseBancoChileCargo,
	},
	{
		name: "bancochile_transferencia",
		match: func(from, subject string) bool {
			return from == "enviodigital@bancochile.cl" && strings.Contains(subject, "transferencia")
		},
		parse: ParseBancoChileTransferencia,
	},
	// Layer 2: sender domain.
	{
		name: "bancochile_domain",
		match: func(from, _ string) bool {
			return strings.Contains(from, "bancochile") || strings.Contains(from, "banco.de.chile")
		},
		parse: ParseBancoChileCargo,
	},
	{
		name: "bancoestado_domain",
		match: func(from, _ string) bool {
			return strings.Contains(from, "bancoestado") || strings.Contains(from, "banco.estado")
		},
		parse: ParseBancoEstado,
	},
	{
		name: "santander_domain",
		match: func(from, _ string) bool {
			return strings.Contains(from, "santander")
		},
		parse: ParseSantander,
	},
	// Layer 3: subject keywords.
	{
		name: "bancochile_subject",
		match: func(_, subject string) bool {
			return strings.Contains(subject, "cargo en cuenta") ||
				strings.Contains(subject, "banco de chile") ||
				strings.Contains(subject, "compra por")
		},
		parse: ParseBancoChileCargo,
	},
	{
		name: "bancochile_transfer_subject",
		match: func(_, subject string) bool {
			return strings.Contains(subject, "transferencia de fondos")
		},
		parse: ParseBancoChileTransferencia,
	},
	{
		name: "bancoestado_subject",
		match: func(_, subject string) bool {
			return strings.Contains(subject, "banco estado") || strings.Contains(subject, "transferencia")
		},
		parse: ParseBancoEstado,
	},
	{
		name: "santander_subject",
		match: func(_, subject string) bool {
			return strings.Contains(subject, "santander")
		},
		parse: ParseSantander,
	},
}

// Route selects the bank-format parser for an email envelope and runs it.
// Matching is case-insensitive; when no route matches, the Banco de Chile
// purchase parser runs as the default since it is the most common format.
func Route(fromEmail, subject, bodyPlain string) Draft {
	from := strings.ToLower(fromEmail)
	subj := strings.ToLower(subject)

	for _, r := range routes {
		if r.match(from, subj) {
			return r.parse(bodyPlain)
		}
	}
	return ParseBancoChileCargo(bodyPlain)
}
