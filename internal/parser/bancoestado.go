package parser

import "regexp"

var (
	// "Estimado Juan Perez", at most two capitalized words
	estadoNamePattern = regexp.MustCompile(`(?m)^Estimado\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)

	// "por $45.690" or "monto de $100.000"
	estadoAmountPattern = regexp.MustCompile(`(?i)(?:por|monto de)\s+\$([\d.,]+)`)

	// "cuenta corriente ***1234"
	estadoAccountPattern = regexp.MustCompile(`(?i)cuenta\s+(?:corriente\s*)?\*{3}(\d{4})`)

	// "en FALABELLA el"
	estadoMerchantPattern = regexp.MustCompile(`(?i)en\s+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\d\s.*]*?)\s+el\b`)

	// "el día 20/02/2026 a las 14:30"
	estadoDatePattern = regexp.MustCompile(`(?i)el\s+d[ií]a\s+(\d{2}/\d{2}/\d{4})\s+a\s+las\s+(\d{1,2}:\d{2})`)
)

// ParseBancoEstado parses the Banco Estado transaction notification.
func ParseBancoEstado(bodyPlain string) Draft {
	result := newDraft(BankBancoEstado, EmailTypeNotification)
	if bodyPlain == "" {
		return result
	}

	result.CustomerName = matchGroup(estadoNamePattern, bodyPlain)
	result.Amount = matchAmount(estadoAmountPattern, bodyPlain)
	result.AccountLast4 = matchGroup(estadoAccountPattern, bodyPlain)
	result.Merchant = matchGroup(estadoMerchantPattern, bodyPlain)

	if m := estadoDatePattern.FindStringSubmatch(bodyPlain); m != nil {
		result.TransactionDate = slashDateTime(m[1], m[2])
	}

	return result
}
