package parser

import "regexp"

var (
	// "Estimado Juan Perez" — two or more capitalized words
	santanderNamePattern = regexp.MustCompile(`Estimado\s+([A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+)+)`)

	// "de $50.000" or "monto $75.990"
	santanderAmountPattern = regexp.MustCompile(`(?i)(?:de|monto)\s+\$([\d.,]+)`)

	// "Tarjeta **1234" or "Cuenta **5678"
	santanderAccountPattern = regexp.MustCompile(`(?i)(?:tarjeta|cuenta)\s+\*{2}(\d{4})`)

	// "en COPEC LAS CONDES el"
	santanderMerchantPattern = regexp.MustCompile(`(?i)en\s+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\d\s.*]*?)\s+el\b`)

	// "20/02/2026 16:00 hrs"
	santanderDatePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+(\d{1,2}:\d{2})\s*hrs`)
)

// ParseSantander parses the Santander Chile transaction notification.
func ParseSantander(bodyPlain string) Draft {
	result := newDraft(BankSantander, EmailTypeNotification)
	if bodyPlain == "" {
		return result
	}

	result.CustomerName = matchGroup(santanderNamePattern, bodyPlain)
	result.Amount = matchAmount(santanderAmountPattern, bodyPlain)
	result.AccountLast4 = matchGroup(santanderAccountPattern, bodyPlain)
	result.Merchant = matchGroup(santanderMerchantPattern, bodyPlain)

	if m := santanderDatePattern.FindStringSubmatch(bodyPlain); m != nil {
		result.TransactionDate = slashDateTime(m[1], m[2])
	}

	return result
}
