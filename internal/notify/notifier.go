package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/nuttybakers/bakery-core/internal/contact"
)

// Notifier delivers contact form notifications.
type Notifier interface {
	ContactReceived(ctx context.Context, m *contact.Message) error
}

// Config contains SMTP connection options. These map to the smtp
// section of config.yaml.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string

	// From is the sender address on outgoing mail.
	From string

	// AdminTo receives the new-enquiry alerts.
	AdminTo string
}

// SMTPNotifier implements Notifier over plain SMTP with AUTH.
type SMTPNotifier struct {
	cfg Config
	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a notifier from config.
func NewSMTPNotifier(cfg Config) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

// ContactReceived sends the admin alert and the customer confirmation.
// Both are attempted; the first failure is returned.
func (n *SMTPNotifier) ContactReceived(_ context.Context, m *contact.Message) error {
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	adminMsg := buildMessage(n.cfg.From, n.cfg.AdminTo,
		fmt.Sprintf("New enquiry from %s (%s)", m.Name, m.Occasion),
		adminBody(m))
	if err := n.send(addr, auth, n.cfg.From, []string{n.cfg.AdminTo}, adminMsg); err != nil {
		return fmt.Errorf("sending admin alert: %w", err)
	}

	customerMsg := buildMessage(n.cfg.From, m.Email,
		"We received your enquiry",
		customerBody(m))
	if err := n.send(addr, auth, n.cfg.From, []string{m.Email}, customerMsg); err != nil {
		return fmt.Errorf("sending customer confirmation: %w", err)
	}

	return nil
}

// buildMessage assembles an RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func adminBody(m *contact.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact enquiry %s\r\n\r\n", m.ID)
	fmt.Fprintf(&b, "Name:     %s\r\n", m.Name)
	fmt.Fprintf(&b, "Email:    %s\r\n", m.Email)
	if m.Phone != "" {
		fmt.Fprintf(&b, "Phone:    %s\r\n", m.Phone)
	}
	fmt.Fprintf(&b, "Occasion: %s\r\n", m.Occasion)
	if m.EventDate != nil {
		fmt.Fprintf(&b, "Event:    %s\r\n", m.EventDate.Format("2 January 2006"))
	}
	fmt.Fprintf(&b, "\r\n%s\r\n", m.Message)
	return b.String()
}

func customerBody(m *contact.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", m.Name)
	b.WriteString("Thanks for getting in touch! We've received your enquiry and will reply within one working day.\r\n\r\n")
	b.WriteString("Your message:\r\n")
	fmt.Fprintf(&b, "%s\r\n\r\n", m.Message)
	b.WriteString("The Nutty Bakers\r\n")
	return b.String()
}

// Noop is a Notifier that silently discards everything; used when SMTP
// is disabled and in tests.
type Noop struct{}

// ContactReceived does nothing.
func (Noop) ContactReceived(context.Context, *contact.Message) error { return nil }
