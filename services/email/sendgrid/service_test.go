package sendgridmail

import (
	"net/mail"
	"testing"

	"github.com/trezcool/missingwork/core"
)

func TestService_prepare(t *testing.T) {
	svc := NewService(&core.Config{AppName: "Missing Work", DefaultFromEmail: "noreply@school.test"}, nil).(*service)

	m := svc.prepare(core.EmailMessage{
		To:          []mail.Address{{Name: "John Doe", Address: "john@x.com"}},
		Subject:     "Missing homework: Fractions",
		TextContent: "hello",
	})

	if m.From.Address != "noreply@school.test" {
		t.Errorf("From = %v", m.From)
	}
	if len(m.Personalizations) != 1 || len(m.Personalizations[0].To) != 1 {
		t.Fatalf("Personalizations = %+v", m.Personalizations)
	}
	if got := m.Personalizations[0].Subject; got != "[Missing Work] Missing homework: Fractions" {
		t.Errorf("Subject = %q", got)
	}
	if len(m.Content) != 1 || m.Content[0].Type != "text/plain" {
		t.Errorf("Content = %+v", m.Content)
	}
}
