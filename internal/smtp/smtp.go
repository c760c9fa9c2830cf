// Package smtp is the one-shot outbound mail submission collaborator.
package smtp

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"mailtui/internal/config"
	"mailtui/internal/email"
)

// Submit builds a plain-text message and sends it in a single SMTP
// session. This is the whole outbound surface the reader needs.
func Submit(cfg config.Config, to, subject, body string) error {
	msg, err := email.BuildMessage(email.ComposeInput{
		From:    cfg.Auth.Username,
		To:      []string{to},
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}
	return Send(cfg, cfg.Auth.Username, []string{to}, msg)
}

// Send delivers a prebuilt message to the given recipients.
func Send(cfg config.Config, from string, recipients []string, msg []byte) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients provided")
	}

	c, err := dial(cfg)
	if err != nil {
		return err
	}
	defer c.Quit()

	auth := smtp.PlainAuth("", cfg.Auth.Username, cfg.Auth.Password, cfg.SMTP.Host)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range recipients {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.Quit()
}

func dial(cfg config.Config) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	host := cfg.SMTP.Host

	if cfg.SMTP.TLS {
		tlsConfig := &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
		}
		conn, err := tls.DialWithDialer(&net.Dialer{Timeout: 30 * time.Second}, "tcp", addr, tlsConfig)
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, host)
	}

	c, err := smtp.Dial(addr)
	if err != nil {
		return nil, err
	}
	if cfg.SMTP.StartTLS {
		tlsConfig := &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
		}
		if err := c.StartTLS(tlsConfig); err != nil {
			_ = c.Quit()
			return nil, err
		}
	}
	return c, nil
}
