package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SanketJawali/tinker-store-api/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// Sender delivers transactional mail. Callers treat delivery as best-effort;
// an order must never fail because its confirmation email did.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, to, customerName string, order *models.Order) error
}

// Resend sends through the Resend HTTP API.
type Resend struct {
	apiKey string
	from   string
	client *http.Client
	log    *logrus.Logger
}

func NewResend(apiKey, from string, log *logrus.Logger) *Resend {
	return &Resend{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Resend) SendOrderConfirmation(ctx context.Context, to, customerName string, order *models.Order) error {
	if m.apiKey == "" {
		return fmt.Errorf("no email service configured")
	}

	body, err := json.Marshal(resendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: fmt.Sprintf("Order Confirmation - #%d", order.ID),
		HTML:    orderConfirmationHTML(customerName, order),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
	}

	m.log.WithFields(logrus.Fields{"to": to, "order_id": order.ID}).Info("order confirmation email sent")
	return nil
}

func orderConfirmationHTML(customerName string, order *models.Order) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<h1>Thank you for your order, %s!</h1>", customerName)
	fmt.Fprintf(&buf, "<p>Order <strong>#%d</strong> has been received.</p>", order.ID)
	buf.WriteString("<ul>")
	for _, item := range order.Items {
		fmt.Fprintf(&buf, "<li>Product %d &times; %d — %s</li>", item.ProductID, item.Quantity, formatAmount(item.PriceAtPurchase*item.Quantity))
	}
	buf.WriteString("</ul>")
	fmt.Fprintf(&buf, "<p>Total: <strong>%s</strong></p>", formatAmount(order.TotalAmount))
	return buf.String()
}

// formatAmount renders minor currency units as a decimal string.
func formatAmount(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
