// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package mail provides the outbound email collaborator used by account workflows.

Password resets, password changes, and email changes all notify the affected
user. The domain services depend only on the [Mailer] interface; delivery is
an infrastructure detail selected at startup.

Implementations:

  - SMTPMailer: Real delivery over authenticated SMTP.
  - LogMailer: Development/test delivery into the structured log.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer is the delivery contract for user notifications.
type Mailer interface {

	/*
		Send delivers a single plain-text message.

		Parameters:
		  - context: context.Context
		  - subject: string
		  - body: string
		  - from: string (Display sender, e.g. "Blog administration <no-reply@...>")
		  - to: string (Recipient address)

		Returns:
		  - error: Delivery failures
	*/
	Send(context context.Context, subject, body, from, to string) error
}

// # SMTP Delivery

// SMTPMailer delivers messages through an authenticated SMTP relay.
type SMTPMailer struct {
	host string
	port string
	auth smtp.Auth
}

// NewSMTPMailer constructs an [SMTPMailer].
// Auth is plain-text and therefore requires a TLS-capable relay.
func NewSMTPMailer(host, port, username, password string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{host: host, port: port, auth: auth}
}

// Send implements [Mailer] over SMTP.
func (mailer *SMTPMailer) Send(context context.Context, subject, body, from, to string) error {

	// Honor caller cancellation before opening the connection
	if err := context.Err(); err != nil {
		return fmt.Errorf("mail: send aborted: %w", err)
	}

	message := buildMessage(subject, body, from, to)
	addr := mailer.host + ":" + mailer.port

	if err := smtp.SendMail(addr, mailer.auth, envelopeAddress(from), []string{to}, message); err != nil {
		return fmt.Errorf("mail: smtp send failed: %w", err)
	}

	return nil
}

// # Development Delivery

// LogMailer writes messages to the structured log instead of sending them.
// It is the default when no SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements [Mailer] by logging the message.
func (mailer *LogMailer) Send(context context.Context, subject, body, from, to string) error {
	mailer.logger.InfoContext(context, "mail_delivered_to_log",
		slog.String("subject", subject),
		slog.String("from", from),
		slog.String("to", to),
		slog.Int("body_bytes", len(body)),
	)
	return nil
}

// # Helpers

// buildMessage assembles a minimal RFC 5322 plain-text message.
func buildMessage(subject, body, from, to string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// envelopeAddress strips an optional display name from a sender string.
func envelopeAddress(from string) string {
	if open := strings.LastIndex(from, "<"); open != -1 {
		if close := strings.LastIndex(from, ">"); close > open {
			return from[open+1 : close]
		}
	}
	return from
}
