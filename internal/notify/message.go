package notify

import (
	"fmt"
	"strings"
	"time"

	"carbon_netzero/internal/models"
)

// Branding is the organization-specific text added to every alert.
type Branding struct {
	OrgName      string
	DashboardURL string
}

func (b Branding) org() string {
	if b.OrgName == "" {
		return "Your Organization"
	}
	return b.OrgName
}

func alertTime(a models.EmissionAlert) string {
	ts := a.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.UTC().Format(time.RFC1123)
}

func emailSubject(a models.EmissionAlert, b Branding) string {
	return fmt.Sprintf("High Emission Alert (%s): %s exceeded %.6f kg CO₂e", b.org(), a.Department, a.Value)
}

func emailBody(a models.EmissionAlert, b Branding) string {
	var sb strings.Builder
	sb.WriteString("High Emission Alert\n\n")
	fmt.Fprintf(&sb, "Organization: %s\n", b.org())
	fmt.Fprintf(&sb, "Department: %s\n", a.Department)
	fmt.Fprintf(&sb, "Scope: %d\n", a.Scope)
	fmt.Fprintf(&sb, "Emission: %.6f kg CO2e\n", a.Value)
	if a.Threshold > 0 {
		fmt.Fprintf(&sb, "Threshold: %.6f kg CO2e\n", a.Threshold)
	}
	fmt.Fprintf(&sb, "Timestamp: %s\n", alertTime(a))
	if b.DashboardURL != "" {
		fmt.Fprintf(&sb, "Dashboard: %s\n", b.DashboardURL)
	}
	sb.WriteString("\nThis is an automated alert. Please investigate the source and take corrective actions.\n")
	return sb.String()
}

func smsBody(a models.EmissionAlert, b Branding) string {
	return fmt.Sprintf("High Emission Alert (%s):\nDept: %s\nScope: %d\nCO2: %.6f kg\nTime: %s",
		b.org(), a.Department, a.Scope, a.Value, alertTime(a))
}

// recipient resolves department against a lower-cased map, then def.
func recipient(departments map[string]string, department, def string) string {
	if to := strings.TrimSpace(departments[strings.ToLower(department)]); to != "" {
		return to
	}
	return strings.TrimSpace(def)
}

func lowerKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}
