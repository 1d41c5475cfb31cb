package email

import (
	"bytes"
	"html/template"
	texttemplate "text/template"
)

// AppointmentEmailData fills the appointment confirmation template.
type AppointmentEmailData struct {
	To               string
	ClinicName       string
	PatientName      string
	ProfessionalName string
	Specialty        string
	Date             string
	Time             string
	Reason           string
}

var appointmentText = texttemplate.Must(texttemplate.New("appointment.txt").Parse(`Hola {{.PatientName}},

Su turno en {{.ClinicName}} quedó agendado.

Fecha: {{.Date}}
Hora: {{.Time}}
Profesional: {{.ProfessionalName}}{{if .Specialty}} ({{.Specialty}}){{end}}
{{- if .Reason}}
Motivo: {{.Reason}}{{end}}

Si no puede asistir, por favor avísenos con anticipación.

{{.ClinicName}}
`))

var appointmentHTML = template.Must(template.New("appointment.html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #1f2937; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hola {{.PatientName}},</h2>
    <p>Su turno en <strong>{{.ClinicName}}</strong> quedó agendado.</p>
    <table style="margin: 20px 0; background-color: #f3f4f6; padding: 16px; border-radius: 6px;">
        <tr><td>Fecha</td><td><strong>{{.Date}}</strong></td></tr>
        <tr><td>Hora</td><td><strong>{{.Time}}</strong></td></tr>
        <tr><td>Profesional</td><td>{{.ProfessionalName}}{{if .Specialty}} ({{.Specialty}}){{end}}</td></tr>
        {{if .Reason}}<tr><td>Motivo</td><td>{{.Reason}}</td></tr>{{end}}
    </table>
    <p style="color: #6b7280; font-size: 14px;">Si no puede asistir, por favor avísenos con anticipación.</p>
</body>
</html>`))

// BuildAppointmentEmail renders the appointment confirmation message.
func BuildAppointmentEmail(data AppointmentEmailData) (Message, error) {
	var text, html bytes.Buffer
	if err := appointmentText.Execute(&text, data); err != nil {
		return Message{}, err
	}
	if err := appointmentHTML.Execute(&html, data); err != nil {
		return Message{}, err
	}
	return Message{
		To:       []string{data.To},
		Subject:  "Confirmación de turno - " + data.ClinicName,
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
