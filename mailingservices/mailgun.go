package mailingservices

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/verisponsor/verisponsor/config"
)

// Mailgun wraps the mailgun client used for transactional mail.
type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init(c *config.Config) {
	m.Client = mailgun.NewMailgun(c.MgDomain, c.MailgunApiKey)
	m.From = c.MgEmailFrom
}

func (m *Mailgun) send(recipient, subject, body string) (string, error) {
	message := m.Client.NewMessage(m.From, subject, body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	return id, err
}

func (m *Mailgun) SendWelcomeMessage(recipient, name string) (string, error) {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to VeriSponsor! Complete your profile to start connecting with partners.\n", name)
	return m.send(recipient, "Welcome to VeriSponsor", body)
}

func (m *Mailgun) SendResetPasswordMessage(recipient, resetLink string) (string, error) {
	body := fmt.Sprintf("A password reset was requested for your account.\n\nReset it here: %s\n\nThe link expires in one hour. If you didn't request this, ignore this mail.\n", resetLink)
	return m.send(recipient, "Reset your VeriSponsor password", body)
}
