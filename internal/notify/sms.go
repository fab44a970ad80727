package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"carbon_netzero/internal/models"
)

const defaultTwilioURL = "https://api.twilio.com"

var e164 = regexp.MustCompile(`^\+\d{7,15}$`)

// SMSConfig configures Twilio delivery.
type SMSConfig struct {
	AccountSID  string
	AuthToken   string
	From        string
	DefaultTo   string
	BaseURL     string
	Departments map[string]string
}

// SMSSender texts alerts through Twilio's Messages REST resource.
type SMSSender struct {
	cfg    SMSConfig
	brand  Branding
	client *http.Client
}

// NewSMSSender returns nil when Twilio credentials are missing.
func NewSMSSender(cfg SMSConfig, brand Branding, client *http.Client) *SMSSender {
	cfg.AccountSID = strings.TrimSpace(cfg.AccountSID)
	cfg.AuthToken = strings.TrimSpace(cfg.AuthToken)
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil
	}
	cfg.From = strings.TrimSpace(cfg.From)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTwilioURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Departments = lowerKeys(cfg.Departments)
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SMSSender{cfg: cfg, brand: brand, client: client}
}

func (s *SMSSender) Name() string { return "sms" }

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Send posts one message. Both numbers must be E.164.
func (s *SMSSender) Send(ctx context.Context, a models.EmissionAlert) error {
	to := recipient(s.cfg.Departments, a.Department, s.cfg.DefaultTo)
	if to == "" {
		return fmt.Errorf("%w: no phone recipient for department %q", ErrSkipped, a.Department)
	}
	if !e164.MatchString(s.cfg.From) || !e164.MatchString(to) {
		return fmt.Errorf("%w: numbers must be E.164 (from valid=%t, to valid=%t)",
			ErrSkipped, e164.MatchString(s.cfg.From), e164.MatchString(to))
	}

	form := url.Values{}
	form.Set("From", s.cfg.From)
	form.Set("To", to)
	form.Set("Body", smsBody(a, s.brand))

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.cfg.BaseURL, url.PathEscape(s.cfg.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		var te twilioError
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(body, &te) == nil && te.Message != "" {
			return fmt.Errorf("twilio status %d (code %d): %s", resp.StatusCode, te.Code, te.Message)
		}
		return fmt.Errorf("twilio status %d", resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
