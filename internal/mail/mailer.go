package mail

import (
	"crypto/tls"
	"fmt"

	"github.com/dajohi/goemail"
)

// Mailer sends transactional email. A nil Mailer (no SMTP configured)
// disables sending, which keeps local development working without a relay.
type Mailer interface {
	SendVerificationCode(to, code string) error
	SendPasswordReset(to, token string) error
}

type client struct {
	smtp        *goemail.SMTP
	mailAddress string
	mailName    string
}

// NewClient connects to the SMTP relay described by the URL
// (smtp[s]://user:pass@host:port). An empty URL returns a disabled mailer.
func NewClient(smtpURL, mailAddress, mailName string, skipVerify bool) (Mailer, error) {
	if smtpURL == "" {
		return &client{}, nil
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: skipVerify, //nolint:gosec
	}
	smtp, err := goemail.NewSMTP(smtpURL, tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &client{
		smtp:        smtp,
		mailAddress: mailAddress,
		mailName:    mailName,
	}, nil
}

func (c *client) send(to, subject, body string) error {
	if c.smtp == nil {
		return nil
	}
	msg := goemail.NewMessage(c.mailAddress, subject, body)
	msg.SetName(c.mailName)
	msg.AddTo(to)
	return c.smtp.Send(msg)
}

// SendVerificationCode emails the 6-character email verification code.
func (c *client) SendVerificationCode(to, code string) error {
	body := fmt.Sprintf("Your verification code is %s\r\n\r\n"+
		"It expires in 24 hours. If you did not request this, ignore this email.\r\n", code)
	return c.send(to, "Verify your email address", body)
}

// SendPasswordReset emails the single-use password reset token.
func (c *client) SendPasswordReset(to, token string) error {
	body := fmt.Sprintf("Use this token to reset your password: %s\r\n\r\n"+
		"It expires in 1 hour and can be used once.\r\n", token)
	return c.send(to, "Password reset requested", body)
}
