package libs

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"gopkg.in/gomail.v2"
)

var mailLayout = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #1d4ed8; text-align: center; margin-bottom: 30px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">News Portal</div>
        <h2 style="color: #333;">{{.Title}}</h2>
        <p>Hello {{.Name}},</p>
        <p>{{.Body}}</p>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
`))

type mailContent struct {
	Title string
	Name  string
	Body  string
}

// Mailer sends account notifications over SMTP.
type Mailer struct {
	from   string
	send   func(...*gomail.Message) error
	logger *slog.Logger
}

func NewMailer(host string, port int, user, pass, from string, logger *slog.Logger) *Mailer {
	dialer := gomail.NewDialer(host, port, user, pass)
	if from == "" {
		from = user
	}
	return &Mailer{from: from, send: dialer.DialAndSend, logger: logger}
}

func newMailerWithSender(from string, sender gomail.Sender, logger *slog.Logger) *Mailer {
	return &Mailer{
		from:   from,
		send:   func(m ...*gomail.Message) error { return gomail.Send(sender, m...) },
		logger: logger,
	}
}

func (m *Mailer) SendWelcome(ctx context.Context, email, fullName string) error {
	return m.deliver(ctx, email, "Welcome to News Portal", mailContent{
		Title: "Welcome aboard",
		Name:  fullName,
		Body:  "Your account has been created. You can now sign in and start writing.",
	})
}

func (m *Mailer) SendPasswordChanged(ctx context.Context, email, fullName string) error {
	return m.deliver(ctx, email, "Your password was changed", mailContent{
		Title: "Password changed",
		Name:  fullName,
		Body:  "The password for your account was just changed. If this was not you, contact an administrator immediately.",
	})
}

func (m *Mailer) deliver(ctx context.Context, to, subject string, content mailContent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := mailLayout.Execute(&body, content); err != nil {
		return fmt.Errorf("render mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	if err := m.send(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	m.logger.Debug("mail sent", "to", to, "subject", subject)
	return nil
}
