package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// ContactEmailData holds the data for contact form emails.
// Values are rendered through html/template and are escaped on output.
type ContactEmailData struct {
	FirstName    string
	LastName     string
	Email        string
	Company      string // Row omitted when empty
	SubjectLabel string
	Message      string
}

// MailtoAttr renders the href with entity escaping. A plain {{.Email}} inside
// href would be percent-encoded as a URL instead.
func (d ContactEmailData) MailtoAttr() template.HTMLAttr {
	return template.HTMLAttr(`href="mailto:` + template.HTMLEscapeString(d.Email) + `"`)
}

// contactEmailTemplate is the HTML body of a contact form email
const contactEmailTemplate = `
<h2>New contact form submission</h2>
<table style="border-collapse:collapse;width:100%;max-width:600px;">
  <tr><td style="padding:8px;font-weight:bold;border-bottom:1px solid #eee;">Name</td><td style="padding:8px;border-bottom:1px solid #eee;">{{.FirstName}} {{.LastName}}</td></tr>
  <tr><td style="padding:8px;font-weight:bold;border-bottom:1px solid #eee;">Email</td><td style="padding:8px;border-bottom:1px solid #eee;"><a {{.MailtoAttr}}>{{.Email}}</a></td></tr>
  {{- if .Company}}
  <tr><td style="padding:8px;font-weight:bold;border-bottom:1px solid #eee;">Company</td><td style="padding:8px;border-bottom:1px solid #eee;">{{.Company}}</td></tr>
  {{- end}}
  <tr><td style="padding:8px;font-weight:bold;border-bottom:1px solid #eee;">Subject</td><td style="padding:8px;border-bottom:1px solid #eee;">{{.SubjectLabel}}</td></tr>
  <tr><td style="padding:8px;font-weight:bold;vertical-align:top;">Message</td><td style="padding:8px;white-space:pre-wrap;">{{.Message}}</td></tr>
</table>
`

var contactTmpl = template.Must(template.New("contact").Parse(contactEmailTemplate))

// RenderContactEmail executes the contact template
func RenderContactEmail(data ContactEmailData) (string, error) {
	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}
