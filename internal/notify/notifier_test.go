package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/nuttybakers/bakery-core/internal/contact"
)

type sentMail struct {
	from string
	to   []string
	msg  string
}

func testMessage() *contact.Message {
	eventDate := time.Date(2027, 6, 12, 0, 0, 0, 0, time.UTC)
	return &contact.Message{
		ID:        "msg-abc12345",
		Name:      "Jordan Lee",
		Email:     "jordan@example.com",
		Phone:     "07700 900123",
		Occasion:  "Wedding",
		EventDate: &eventDate,
		Message:   "Looking for a three tier cake.",
	}
}

func TestContactReceived_SendsBoth(t *testing.T) {
	var sent []sentMail

	n := NewSMTPNotifier(Config{
		Host:    "mail.example.com",
		Port:    587,
		From:    "noreply@nuttybakers.example",
		AdminTo: "orders@nuttybakers.example",
	})
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if addr != "mail.example.com:587" {
			t.Errorf("addr = %q", addr)
		}
		sent = append(sent, sentMail{from: from, to: to, msg: string(msg)})
		return nil
	}

	if err := n.ContactReceived(context.Background(), testMessage()); err != nil {
		t.Fatalf("ContactReceived() error = %v", err)
	}

	if len(sent) != 2 {
		t.Fatalf("sent %d mails, want 2 (admin alert + customer confirmation)", len(sent))
	}

	admin := sent[0]
	if admin.to[0] != "orders@nuttybakers.example" {
		t.Errorf("admin alert to = %v", admin.to)
	}
	for _, want := range []string{"Jordan Lee", "jordan@example.com", "Wedding", "12 June 2027", "three tier cake"} {
		if !strings.Contains(admin.msg, want) {
			t.Errorf("admin alert missing %q", want)
		}
	}

	customer := sent[1]
	if customer.to[0] != "jordan@example.com" {
		t.Errorf("confirmation to = %v", customer.to)
	}
	if !strings.Contains(customer.msg, "Hi Jordan Lee") {
		t.Error("confirmation should greet the customer by name")
	}
}

func TestContactReceived_SendFailure(t *testing.T) {
	n := NewSMTPNotifier(Config{Host: "mail.example.com", Port: 587})
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	if err := n.ContactReceived(context.Background(), testMessage()); err == nil {
		t.Error("ContactReceived() should surface the send failure")
	}
}

func TestNoop(t *testing.T) {
	if err := (Noop{}).ContactReceived(context.Background(), testMessage()); err != nil {
		t.Errorf("Noop.ContactReceived() error = %v", err)
	}
}
