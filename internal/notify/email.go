package notify

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"carbon_netzero/internal/models"
)

// EmailConfig configures SMTP delivery.
type EmailConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	DefaultTo   string
	Departments map[string]string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailSender mails alerts to the department's manager.
type EmailSender struct {
	cfg      EmailConfig
	brand    Branding
	sendMail sendMailFunc
}

// NewEmailSender returns nil when no SMTP host is configured.
func NewEmailSender(cfg EmailConfig, brand Branding) *EmailSender {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	cfg.Departments = lowerKeys(cfg.Departments)
	return &EmailSender{cfg: cfg, brand: brand, sendMail: smtp.SendMail}
}

func (s *EmailSender) Name() string { return "email" }

// Send delivers a. net/smtp has no context support, so ctx is only checked
// before dialing.
func (s *EmailSender) Send(ctx context.Context, a models.EmissionAlert) error {
	to := recipient(s.cfg.Departments, a.Department, s.cfg.DefaultTo)
	if to == "" {
		return fmt.Errorf("%w: no email recipient for department %q", ErrSkipped, a.Department)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err := s.sendMail(addr, auth, s.cfg.From, []string{to}, s.message(to, a)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

func (s *EmailSender) message(to string, a models.EmissionAlert) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", emailSubject(a, s.brand)))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(emailBody(a, s.brand), "\n", "\r\n"))
	return []byte(b.String())
}
