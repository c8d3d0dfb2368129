package categorizer

import (
	"fmt"
	"strings"

	"gastonauta/internal/models"
)

// maxBodyChars bounds how much of the email body is sent to the completion
// service.
const maxBodyChars = 2000

// BuildSystemPrompt enumerates the live categories for the completion
// service. The category list is always built from the store, never
// hardcoded, so user-created categories are immediately usable.
func BuildSystemPrompt(categories []models.Category) string {
	var b strings.Builder
	b.WriteString("Eres un asistente de categorización de gastos bancarios chilenos.\n")
	b.WriteString("Analiza el siguiente mensaje de transacción bancaria y determina la categoría más apropiada.\n\n")
	b.WriteString("Categorías disponibles:\n")

	for _, cat := range categories {
		b.WriteString("- " + cat.Name)
		if cat.Description != nil && *cat.Description != "" {
			b.WriteString(": " + *cat.Description)
		}
		if len(cat.Keywords) > 0 {
			b.WriteString(" (ejemplos: " + strings.Join(cat.Keywords, ", ") + ")")
		}
		b.WriteString("\n")
	}

	b.WriteString("\nResponde SOLO con el nombre de la categoría en español, sin puntuación adicional.\n")
	b.WriteString("Ejemplo de respuesta válida: \"Supermercado\"")
	return b.String()
}

// BuildUserPrompt packs the transaction context: merchant, amount and the
// leading slice of the email body.
func BuildUserPrompt(bodyPlain string, merchant *string, amount *float64) string {
	merchantText := "Unknown"
	if merchant != nil && *merchant != "" {
		merchantText = *merchant
	}

	amountText := "Unknown"
	if amount != nil {
		amountText = "$" + FormatCLP(*amount)
	}

	body := bodyPlain
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}

	return fmt.Sprintf(`
Transaction Details:
- Merchant/Store: %s
- Amount: %s
- Email Content:
%s

Determine the category:`, merchantText, amountText, body)
}

// FormatCLP renders an amount the Chilean way: integer pesos with dots as
// thousands separators.
func FormatCLP(amount float64) string {
	digits := fmt.Sprintf("%.0f", amount)

	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
