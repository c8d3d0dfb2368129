package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gastonauta/internal/categorizer"
	"gastonauta/internal/models"
	"gastonauta/pkg/config"

	"go.uber.org/zap"
)

const resendEndpoint = "https://api.resend.com/emails"

// Notifier sends a short summary email after each ingestion through the
// Resend API. It is strictly fire-and-forget: a missing API key or
// recipient disables it, and send failures are logged, never propagated.
type Notifier struct {
	cfg        *config.ResendConfig
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewNotifier(cfg *config.ResendConfig, logger *zap.Logger) *Notifier {
	return &Notifier{
		cfg:      cfg,
		endpoint: resendEndpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Enabled reports whether notification credentials are configured.
func (n *Notifier) Enabled() bool {
	return n.cfg.APIKey != "" && n.cfg.ToEmail != ""
}

// NotifySuccess summarizes a stored transaction: type, merchant, amount,
// bank, date, and category when one was resolved.
func (n *Notifier) NotifySuccess(ctx context.Context, tx *models.Transaction, res *categorizer.Result) {
	if !n.Enabled() {
		return
	}

	merchant := strValue(tx.Merchant, "sin comercio")
	subject := "✅ Email guardado exitosamente - " + merchant

	var b strings.Builder
	fmt.Fprintf(&b, "Tipo: %s\n", strValue(tx.EmailType, "desconocido"))
	fmt.Fprintf(&b, "Comercio/Destinatario: %s\n", merchant)
	if tx.Amount != nil {
		fmt.Fprintf(&b, "Monto: $%s\n", categorizer.FormatCLP(*tx.Amount))
	}
	fmt.Fprintf(&b, "Banco: %s\n", strValue(tx.SenderBank, "desconocido"))
	fmt.Fprintf(&b, "Fecha: %s\n", strValue(tx.TransactionDate, "desconocida"))
	if res != nil {
		fmt.Fprintf(&b, "Categoría: %s (%s, %.2f)\n", res.Category, res.Model, res.Confidence)
	}

	n.send(ctx, subject, b.String())
}

// NotifyFailure reports an ingestion that could not be stored.
func (n *Notifier) NotifyFailure(ctx context.Context, messageID, errText string) {
	if !n.Enabled() {
		return
	}

	body := fmt.Sprintf("Message ID: %s\nError: %s\n", messageID, errText)
	n.send(ctx, "❌ Error al guardar email", body)
}

func (n *Notifier) send(ctx context.Context, subject, text string) {
	payload, err := json.Marshal(map[string]any{
		"from":    n.cfg.FromEmail,
		"to":      []string{n.cfg.ToEmail},
		"subject": subject,
		"text":    text,
	})
	if err != nil {
		n.logger.Error("Failed to marshal notification", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		n.logger.Error("Failed to create notification request", zap.Error(err))
		return
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Error("Failed to send notification", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		n.logger.Error("Notification rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
	}
}

func strValue(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
