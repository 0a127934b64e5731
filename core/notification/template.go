package notification

import (
	"fmt"
	"html"
	"strings"

	models "safety_hub/core/api/models/mongodb"
)

// Template các message gửi đi, tham số hóa theo title, code, location và deep link
// Nội dung user-facing viết tiếng Hà Lan theo ngôn ngữ của ứng dụng

// severityLabels map severity sang nhãn hiển thị
var severityLabels = map[string]string{
	models.SeverityLow:      "Laag",
	models.SeverityMedium:   "Gemiddeld",
	models.SeverityHigh:     "Hoog",
	models.SeverityCritical: "Kritiek",
}

// SeverityLabel trả về nhãn hiển thị của severity, fallback về giá trị gốc
func SeverityLabel(severity string) string {
	if label, ok := severityLabels[severity]; ok {
		return label
	}
	return severity
}

// IncidentURL build deep link tới trang chi tiết incident từ base URL của ứng dụng
func IncidentURL(baseURL string, incident models.Incident) string {
	return fmt.Sprintf("%s/incidenten/%s", strings.TrimRight(baseURL, "/"), incident.ID.Hex())
}

// BuildEmailSubject build subject của email thông báo
func BuildEmailSubject(incident models.Incident) string {
	return fmt.Sprintf("[%s] Nieuwe melding: %s", incident.Code, incident.Title)
}

// BuildEmailHTML build body HTML của email thông báo
func BuildEmailHTML(incident models.Incident, baseURL string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<h2>Nieuwe veiligheidsmelding: %s</h2>", html.EscapeString(incident.Title)))
	b.WriteString("<table style='border-collapse:collapse;'>")
	b.WriteString(fmt.Sprintf("<tr><td style='padding:4px 12px 4px 0;'><b>Meldingsnummer</b></td><td>%s</td></tr>", html.EscapeString(incident.Code)))
	b.WriteString(fmt.Sprintf("<tr><td style='padding:4px 12px 4px 0;'><b>Ernst</b></td><td>%s</td></tr>", html.EscapeString(SeverityLabel(incident.Severity))))
	if incident.Location != "" {
		b.WriteString(fmt.Sprintf("<tr><td style='padding:4px 12px 4px 0;'><b>Locatie</b></td><td>%s</td></tr>", html.EscapeString(incident.Location)))
	}
	b.WriteString("</table>")
	b.WriteString(fmt.Sprintf(
		"<p><a href='%s' style='display:inline-block;padding:10px 20px;text-decoration:none;border-radius:5px;background-color:#007bff;color:#fff;'>Bekijk melding</a></p>",
		IncidentURL(baseURL, incident)))

	return b.String()
}

// BuildEmailText build body plain text của email thông báo
func BuildEmailText(incident models.Incident, baseURL string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Nieuwe veiligheidsmelding: %s\n", incident.Title))
	b.WriteString(fmt.Sprintf("Meldingsnummer: %s\n", incident.Code))
	b.WriteString(fmt.Sprintf("Ernst: %s\n", SeverityLabel(incident.Severity)))
	if incident.Location != "" {
		b.WriteString(fmt.Sprintf("Locatie: %s\n", incident.Location))
	}
	b.WriteString(fmt.Sprintf("\nBekijk de melding: %s\n", IncidentURL(baseURL, incident)))

	return b.String()
}

// BuildWhatsAppMessage build text message gửi qua WhatsApp
func BuildWhatsAppMessage(incident models.Incident, baseURL string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🚨 Nieuwe melding %s: %s\n", incident.Code, incident.Title))
	b.WriteString(fmt.Sprintf("Ernst: %s\n", SeverityLabel(incident.Severity)))
	if incident.Location != "" {
		b.WriteString(fmt.Sprintf("Locatie: %s\n", incident.Location))
	}
	b.WriteString(IncidentURL(baseURL, incident))

	return b.String()
}

// BuildInAppTitle build title của notification in-app
func BuildInAppTitle(incident models.Incident) string {
	return fmt.Sprintf("Nieuwe melding: %s", incident.Title)
}

// BuildInAppMessage build message của notification in-app
func BuildInAppMessage(incident models.Incident) string {
	msg := fmt.Sprintf("Melding %s (%s)", incident.Code, SeverityLabel(incident.Severity))
	if incident.Location != "" {
		msg += " - " + incident.Location
	}
	return msg
}
