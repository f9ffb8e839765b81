// Package mailer delivers the account verification email over SMTP.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/pixelvault/auth-service/config"
	"go.uber.org/zap"
)

var verificationTemplate = template.Must(template.New("verification").Parse(`<html>
<body>
    <p>Hi {{.Name}},</p>
    <p>Please verify your email by clicking the link below:</p>
    <p><a href="{{.VerificationLink}}">Verify Email</a></p>
    <p>If you did not create an account, you can safely ignore this message.</p>
</body>
</html>
`))

type SMTPMailer struct {
	host        string
	port        int
	username    string
	password    string
	frontendURL string
	logger      *zap.Logger
}

func NewSMTPMailer(cfg *config.Config, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		frontendURL: cfg.FrontendURL,
		logger:      logger.Named("mailer"),
	}
}

func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	msg, err := buildVerificationMessage(m.username, to, name, m.frontendURL, token)
	if err != nil {
		return err
	}

	if err := m.send(to, msg); err != nil {
		return err
	}

	m.logger.Info("verification email sent", zap.String("to", to))

	return nil
}

func (m *SMTPMailer) send(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := client.Mail(m.username); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func buildVerificationMessage(from, to, name, frontendURL, token string) ([]byte, error) {
	var body bytes.Buffer
	data := struct {
		Name             string
		VerificationLink string
	}{
		Name:             name,
		VerificationLink: fmt.Sprintf("%s/verify-email?token=%s", frontendURL, token),
	}
	if err := verificationTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: Verify Your Email\r\n")
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}
