package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"sync"

	"clicknet/internal/config"
	"clicknet/internal/middleware"
	"clicknet/internal/observability"
)

// Mailer sends transactional email. Delivery failures are reported to the
// caller, but callers treat email as best effort: a failed welcome or
// notification mail never fails the originating request.
type Mailer interface {
	SendWelcome(toEmail, toName string) error
	SendCommentNotification(toEmail, toName, commenterName, postSnippet string) error
}

// SMTPMailer delivers mail over plain SMTP with AUTH when credentials are
// configured.
type SMTPMailer struct {
	host      string
	port      string
	username  string
	password  string
	from      string
	fromName  string
	clientURL string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUser,
		password:  cfg.SMTPPass,
		from:      cfg.EmailFrom,
		fromName:  cfg.EmailName,
		clientURL: cfg.ClientURL,
	}
}

func (m *SMTPMailer) SendWelcome(toEmail, toName string) error {
	subject := "Welcome to ClickNet"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWelcome to ClickNet! Your account is ready.\r\n\r\nSet up your profile, find photographers near you, and start sharing your work: %s\r\n\r\nThe ClickNet Team\r\n",
		toName, m.clientURL,
	)
	return m.send("welcome", toEmail, toName, subject, body)
}

func (m *SMTPMailer) SendCommentNotification(toEmail, toName, commenterName, postSnippet string) error {
	subject := fmt.Sprintf("%s commented on your post", commenterName)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n%s commented on your post:\r\n\r\n  %q\r\n\r\nSee the conversation: %s\r\n\r\nThe ClickNet Team\r\n",
		toName, commenterName, snippet(postSnippet), m.clientURL,
	)
	return m.send("comment", toEmail, toName, subject, body)
}

func (m *SMTPMailer) send(template, toEmail, toName, subject, body string) error {
	if m.host == "" {
		middleware.Logger.Debug("smtp not configured, skipping email",
			"template", template, "to", toEmail)
		return nil
	}

	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s <%s>", toName, toEmail),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{toEmail}, []byte(msg)); err != nil {
		observability.EmailsSent.WithLabelValues(template, "error").Inc()
		return fmt.Errorf("sending %s email: %w", template, err)
	}
	observability.EmailsSent.WithLabelValues(template, "ok").Inc()
	return nil
}

func snippet(s string) string {
	const max = 80
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// RecordingMailer captures sent mail in memory. Used by tests.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []RecordedMail
}

type RecordedMail struct {
	Template string
	To       string
	Detail   string
}

func (r *RecordingMailer) SendWelcome(toEmail, toName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, RecordedMail{Template: "welcome", To: toEmail, Detail: toName})
	return nil
}

func (r *RecordingMailer) SendCommentNotification(toEmail, toName, commenterName, postSnippet string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, RecordedMail{Template: "comment", To: toEmail, Detail: commenterName})
	return nil
}

func (r *RecordingMailer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Sent)
}
