// Package templates provides email template components
package templates

import (
	"bytes"
	"html/template"
	"log"
)

type ButtonProps struct {
	Text            string
	URL             string
	BackgroundColor string
	TextColor       string
}

type buttonTemplateData struct {
	BackgroundColor string
	URL             string
	TextColor       string
	Text            string
}

// RSVPConfirmationProps carries the data for the guest-facing RSVP
// confirmation email.
type RSVPConfirmationProps struct {
	GuestName     string
	EventTitle    string
	EventDate     string
	EventTime     string
	Location      string
	Status        string
	PlusOnes      int
	InvitationURL string
}

// Compiled templates for email components
var (
	buttonTemplate = template.Must(template.New("emailButton").Parse(`
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" class="btn btn-primary" style="border-collapse: separate; mso-table-lspace: 0pt; mso-table-rspace: 0pt; box-sizing: border-box; width: 100%; min-width: 100%;" width="100%">
      <tbody>
        <tr>
          <td align="left" style="font-family: Helvetica, sans-serif; font-size: 16px; vertical-align: top; padding-bottom: 16px;" valign="top">
            <table role="presentation" border="0" cellpadding="0" cellspacing="0" style="border-collapse: separate; mso-table-lspace: 0pt; mso-table-rspace: 0pt; width: auto;">
              <tbody>
                <tr>
                  <td style="font-family: Helvetica, sans-serif; font-size: 16px; vertical-align: top; border-radius: 4px; text-align: center; background-color: {{.BackgroundColor}};" valign="top" align="center" bgcolor="{{.BackgroundColor}}">
                    <a href="{{.URL}}" target="_blank" style="border: solid 2px {{.BackgroundColor}}; border-radius: 4px; box-sizing: border-box; cursor: pointer; display: inline-block; font-size: 16px; font-weight: bold; margin: 0; padding: 12px 24px; text-decoration: none; background-color: {{.BackgroundColor}}; border-color: {{.BackgroundColor}}; color: {{.TextColor}};">{{.Text}}</a>
                  </td>
                </tr>
              </tbody>
            </table>
          </td>
        </tr>
      </tbody>
    </table>`))

	rsvpConfirmationTemplate = template.Must(template.New("rsvpConfirmation").Parse(`
    <p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">Hi {{.GuestName}},</p>
    {{if .Attending}}
    <p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">We've received your RSVP for <strong>{{.EventTitle}}</strong> &mdash; you're in!</p>
    {{else}}
    <p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">We've received your RSVP for <strong>{{.EventTitle}}</strong>. We're sorry you can't make it.</p>
    {{end}}
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" style="border-collapse: separate; width: 100%; margin-bottom: 16px;">
      <tbody>
        {{if .EventDate}}
        <tr>
          <td style="font-family: Helvetica, sans-serif; font-size: 16px; padding: 4px 12px 4px 0; color: #9a9ea6;">When</td>
          <td style="font-family: Helvetica, sans-serif; font-size: 16px; padding: 4px 0;">{{.EventDate}}{{if .EventTime}} at {{.EventTime}}{{end}}</td>
        </tr>
        {{end}}
        {{if .Location}}
        <tr>
          <td style="font-family: Helvetica, sans-serif; font-size: 16px; padding: 4px 12px 4px 0; color: #9a9ea6;">Where</td>
          <td style="font-family: Helvetica, sans-serif; font-size: 16px; padding: 4px 0;">{{.Location}}</td>
        </tr>
        {{end}}
        {{if .PlusOnes}}
        <tr>
          <td style="font-family: Helvetica, sans-serif; font-size: 16px; padding: 4px 12px 4px 0; color: #9a9ea6;">Guests</td>
          <td style="font-family: Helvetica, sans-serif; font-size: 16px; padding: 4px 0;">you +{{.PlusOnes}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>`))
)

type rsvpConfirmationData struct {
	GuestName  string
	EventTitle string
	EventDate  string
	EventTime  string
	Location   string
	Attending  bool
	PlusOnes   int
}

func GetButton(props ButtonProps) string {
	backgroundColor := props.BackgroundColor
	if backgroundColor == "" {
		backgroundColor = "#c9a227"
	}

	textColor := props.TextColor
	if textColor == "" {
		textColor = "#ffffff"
	}

	templateData := buttonTemplateData{
		BackgroundColor: backgroundColor,
		URL:             props.URL,
		TextColor:       textColor,
		Text:            props.Text,
	}

	var buf bytes.Buffer
	if err := buttonTemplate.Execute(&buf, templateData); err != nil {
		log.Printf("Error executing email button template: %v", err)
		return ""
	}
	return buf.String()
}

// GetRSVPConfirmationContent composes the body of the RSVP confirmation
// email: the greeting, the event summary table, and a link back to the
// invitation page.
func GetRSVPConfirmationContent(props RSVPConfirmationProps) string {
	name := props.GuestName
	if name == "" {
		name = "there"
	}

	templateData := rsvpConfirmationData{
		GuestName:  name,
		EventTitle: props.EventTitle,
		EventDate:  props.EventDate,
		EventTime:  props.EventTime,
		Location:   props.Location,
		Attending:  props.Status == "attending",
		PlusOnes:   props.PlusOnes,
	}

	var buf bytes.Buffer
	if err := rsvpConfirmationTemplate.Execute(&buf, templateData); err != nil {
		log.Printf("Error executing RSVP confirmation template: %v", err)
		return ""
	}

	content := buf.String()
	if props.InvitationURL != "" {
		content += GetButton(ButtonProps{
			Text: "View invitation",
			URL:  props.InvitationURL,
		})
	}
	return content
}
