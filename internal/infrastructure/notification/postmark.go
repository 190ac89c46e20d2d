package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookhaven/backend/internal/domain/order"
	"github.com/bookhaven/backend/internal/infrastructure/config"
	"github.com/keighl/postmark"
	"go.uber.org/zap"
)

// Ensure PostmarkNotifier implements OrderNotifier
var _ OrderNotifier = (*PostmarkNotifier)(nil)

// postmarkSender is the subset of the Postmark client used here,
// extracted so tests can substitute a fake.
type postmarkSender interface {
	SendEmail(email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkNotifier sends transactional email through Postmark
type PostmarkNotifier struct {
	client      postmarkSender
	fromAddress string
	fromName    string
	logger      *zap.Logger
}

// NewPostmarkNotifier creates a new PostmarkNotifier from configuration
func NewPostmarkNotifier(cfg *config.EmailConfig, logger *zap.Logger) (*PostmarkNotifier, error) {
	if cfg == nil {
		return nil, errors.New("email configuration is required")
	}
	if cfg.ServerToken == "" {
		return nil, errors.New("postmark server token is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PostmarkNotifier{
		client:      postmark.NewClient(cfg.ServerToken, ""),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		logger:      logger,
	}, nil
}

// SendOrderConfirmation sends the order confirmation email
func (n *PostmarkNotifier) SendOrderConfirmation(_ context.Context, event *order.OrderPlacedEvent) error {
	if event == nil {
		return errors.New("order placed event is required")
	}
	if event.CustomerEmail == "" {
		return errors.New("customer email is required")
	}

	subject := fmt.Sprintf("Your Book Haven order #%s is confirmed", event.OrderNumber)
	htmlBody := buildConfirmationHTML(event)
	textBody := buildConfirmationText(event)

	from := n.fromAddress
	if n.fromName != "" {
		from = fmt.Sprintf("%s <%s>", n.fromName, n.fromAddress)
	}

	_, err := n.client.SendEmail(postmark.Email{
		From:     from,
		To:       event.CustomerEmail,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	n.logger.Info("Order confirmation sent",
		zap.String("order_number", event.OrderNumber),
		zap.String("recipient", event.CustomerEmail))
	return nil
}

// buildConfirmationHTML renders the HTML body of the confirmation email
func buildConfirmationHTML(event *order.OrderPlacedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", event.CustomerName)
	fmt.Fprintf(&b, "<p>Thanks for your order! Order <strong>#%s</strong> has been placed.</p>", event.OrderNumber)
	b.WriteString("<table><tr><th>Title</th><th>Qty</th><th>Price</th></tr>")
	for _, item := range event.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>$%s</td></tr>",
			item.Title, item.Quantity, item.Price.StringFixed(2))
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>Total: <strong>$%s</strong></p>", event.TotalAmount.StringFixed(2))
	b.WriteString("<p>Happy reading,<br>The Book Haven team</p>")
	return b.String()
}

// buildConfirmationText renders the plain text body of the confirmation email
func buildConfirmationText(event *order.OrderPlacedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", event.CustomerName)
	fmt.Fprintf(&b, "Thanks for your order! Order #%s has been placed.\n\n", event.OrderNumber)
	for _, item := range event.Items {
		fmt.Fprintf(&b, "  %dx %s - $%s\n", item.Quantity, item.Title, item.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n\nHappy reading,\nThe Book Haven team\n", event.TotalAmount.StringFixed(2))
	return b.String()
}
