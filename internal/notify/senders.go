package notify

import (
	"net/http"

	"carbon_netzero/internal/logger"
)

// BuildSenders returns the senders whose channel is configured, warning
// about each one left out.
func BuildSenders(log *logger.Logger, brand Branding, email EmailConfig, sms SMSConfig, client *http.Client) []Sender {
	log = logger.OrNop(log)
	var out []Sender
	if s := NewEmailSender(email, brand); s != nil {
		out = append(out, s)
	} else {
		log.Warnw("alert channel disabled", "channel", "email", "reason", "smtp host not set")
	}
	if s := NewSMSSender(sms, brand, client); s != nil {
		out = append(out, s)
	} else {
		log.Warnw("alert channel disabled", "channel", "sms", "reason", "twilio credentials not set")
	}
	return out
}
