package parser

import (
	"fmt"
	"regexp"
	"strconv"
)

// Banco de Chile sends two distinct notification formats: "Cargo en Cuenta"
// for purchases charged against an account, and "Transferencia de Fondos"
// for outgoing transfers. They share almost no layout, so each gets its own
// parser.

var (
	// "Banco de Chile\n\nJorge Luis Epunan Hernandez: compra por ..."
	chileNamePattern = regexp.MustCompile(`(?m)^Banco de Chile\s*\n\n([^:\n]+):`)

	// "compra por $4.380" or a tabular "Monto\n$4.380" block
	chileAmountPattern      = regexp.MustCompile(`(?i)compra por \$([\d.,]+)`)
	chileAmountTablePattern = regexp.MustCompile(`(?i)Monto\s*:?\s*\$\s*([\d.,]+)`)

	// "Cuenta ****5150", "Cuenta ***5150" or "Cuenta FAN 269725150"
	chileAccountPattern    = regexp.MustCompile(`(?i)Cuenta\s*\*{3,4}(\d{4})`)
	chileAccountFANPattern = regexp.MustCompile(`(?i)Cuenta\s+FAN\s+(\d+)`)

	// "en TOTTUS LOS DOMINI el", "en MERPAGO*ARTICULOS el"
	chileMerchantPattern = regexp.MustCompile(`(?i)en\s+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\d\s.*]*?)\s+el\b`)

	// "el 20/02/2026 16:10"
	chileDatePattern = regexp.MustCompile(`(?i)el\s+(\d{2}/\d{2}/\d{4})\s+(\d{1,2}:\d{2})`)

	// tabular 12-hour form: "18-02-2026, 4:40:00 p. m."
	chileDate12hPattern = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4}),?\s+(\d{1,2}):(\d{2}):(\d{2})\s*([ap])\.?\s*m\.?`)
)

// ParseBancoChileCargo parses the "Cargo en Cuenta" purchase notification.
func ParseBancoChileCargo(bodyPlain string) Draft {
	result := newDraft(BankBancoChile, EmailTypeCargoEnCuenta)
	if bodyPlain == "" {
		return result
	}

	result.CustomerName = matchGroup(chileNamePattern, bodyPlain)

	result.Amount = matchAmount(chileAmountPattern, bodyPlain)
	if result.Amount == nil {
		result.Amount = matchAmount(chileAmountTablePattern, bodyPlain)
	}

	result.AccountLast4 = matchGroup(chileAccountPattern, bodyPlain)
	if result.AccountLast4 == nil {
		if fan := matchGroup(chileAccountFANPattern, bodyPlain); fan != nil {
			result.AccountLast4 = lastFour(*fan)
		}
	}

	result.Merchant = matchGroup(chileMerchantPattern, bodyPlain)

	if m := chileDatePattern.FindStringSubmatch(bodyPlain); m != nil {
		result.TransactionDate = slashDateTime(m[1], m[2])
	} else if m := chileDate12hPattern.FindStringSubmatch(bodyPlain); m != nil {
		result.TransactionDate = assemble12hDate(m)
	}

	return result
}

var (
	// "Estimado(a) Jorge Epunan:"
	transferNamePattern = regexp.MustCompile(`(?i)Estimado\(a\)\s+([^:\n,]+)`)

	// "has realizado una transferencia de fondos a Maria Soto el día ..."
	transferRecipientPattern = regexp.MustCompile(`(?i)transferencia de fondos a\s+([^.,\n]+?)(?:\s+el\s|[.,\n]|$)`)

	// "Monto\n$150.000" (the label and value may sit on separate lines)
	transferAmountPattern = regexp.MustCompile(`(?i)Monto\s*:?\s*\$\s*([\d.,]+)`)

	// "Cuenta N° 269725150" or "Cuenta\n269725150"; only the tail is kept
	transferAccountPattern = regexp.MustCompile(`(?i)Cuenta\s*(?:N[°º]\s*)?:?\s*(\d{5,})`)

	// "el día 20 de febrero de 2026"
	transferProseDatePattern = regexp.MustCompile(`(?i)el\s+d[ií]a\s+(\d{1,2})\s+de\s+([a-záéíóúñ]+)\s+de\s+(\d{4})`)

	// alternate block form: "Fecha\n20/02/2026 16:10"
	transferFechaPattern = regexp.MustCompile(`(?i)Fecha\s*:?\s*\n\s*(\d{2}/\d{2}/\d{4})(?:\s+(\d{1,2}:\d{2}))?`)

	// "Banco\nBanco Santander" names the recipient's intermediary bank
	transferBankPattern = regexp.MustCompile(`(?m)^Banco[ \t]*\n[ \t]*([^\n]+)`)
)

// ParseBancoChileTransferencia parses the "Transferencia de Fondos"
// notification. The recipient of the transfer is stored as the merchant:
// downstream both answer "who received the money".
func ParseBancoChileTransferencia(bodyPlain string) Draft {
	result := newDraft(BankBancoChile, EmailTypeTransferenciaFondos)
	if bodyPlain == "" {
		return result
	}

	result.CustomerName = matchGroup(transferNamePattern, bodyPlain)
	result.Merchant = matchGroup(transferRecipientPattern, bodyPlain)
	result.Amount = matchAmount(transferAmountPattern, bodyPlain)

	if acct := matchGroup(transferAccountPattern, bodyPlain); acct != nil {
		result.AccountLast4 = lastFour(*acct)
	}

	if m := transferProseDatePattern.FindStringSubmatch(bodyPlain); m != nil {
		result.TransactionDate = proseDate(m[1], m[2], m[3])
	} else if m := transferFechaPattern.FindStringSubmatch(bodyPlain); m != nil {
		clock := m[2]
		if clock == "" {
			clock = "0:00"
		}
		result.TransactionDate = slashDateTime(m[1], clock)
	}

	// A funds transfer can name the receiving bank explicitly; that wins
	// over the parser default.
	if bank := matchGroup(transferBankPattern, bodyPlain); bank != nil {
		result.SenderBank = bank
	}

	return result
}

// assemble12hDate converts the captured 12-hour tabular date groups
// (day, month, year, hour, minute, second, a/p marker) to ISO-8601.
func assemble12hDate(m []string) *string {
	hour, err := strconv.Atoi(m[4])
	if err != nil {
		return nil
	}
	hour = clock12To24(hour, m[7])
	return strPtr(fmt.Sprintf("%s-%s-%sT%02d:%s:%s-03:00", m[3], m[2], m[1], hour, m[5], m[6]))
}
