package render

import (
	"bytes"
	"html/template"
)

// Email-client-safe markup: tables and inline styles only. Escaping is
// handled by html/template for every interpolated field.
var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Travel Itinerary</title>
</head>
<body style="margin: 0; padding: 0; background-color: #f5f5f5; font-family: Arial, sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" border="0" style="background-color: #f5f5f5; padding: 20px;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" border="0" style="background-color: white; border-radius: 8px; overflow: hidden;">
        <tr>
          <td style="background-color: #62BBC1; padding: 30px; text-align: center;">
            <h1 style="margin: 0; color: white; font-size: 28px;">Your Travel Itinerary</h1>
            <p style="margin: 10px 0 0 0; color: white; font-size: 14px;">Reference Code: <strong>{{.Code}}</strong></p>
          </td>
        </tr>
        <tr>
          <td style="padding: 30px; background-color: #f8f9fa; border-left: 4px solid #62BBC1;">
            {{if .CustomMessage}}<p style="margin: 0 0 15px 0; color: #333; font-size: 16px; line-height: 1.6;">{{.CustomMessage}}</p>
            {{else}}<p style="margin: 0 0 15px 0; color: #333; font-size: 16px; line-height: 1.6;">Dear {{.Participants}},</p>
            <p style="margin: 0 0 15px 0; color: #333; font-size: 15px; line-height: 1.6;">Your complete travel itinerary for <strong>{{.Title}}</strong> is ready. This document contains all essential details including flights, accommodation, site visits, and important contact information.</p>
            <p style="margin: 0; color: #333; font-size: 15px; line-height: 1.6;">Have a safe and productive journey!</p>
            {{end}}<p style="margin: 15px 0 0 0; color: #666; font-size: 14px;"><strong>Best regards,</strong><br/>Wayfare Travel Team</p>
          </td>
        </tr>
        <tr>
          <td style="padding: 30px;">
            <h2 style="margin: 0 0 20px 0; color: #333; font-size: 22px; border-bottom: 2px solid #62BBC1; padding-bottom: 10px;">{{.Title}}</h2>
            <table width="100%" cellpadding="8" cellspacing="0" border="0" style="margin-bottom: 20px;">
              <tr><td style="color: #666; font-size: 14px; width: 150px;"><strong>Travelers:</strong></td><td style="color: #333; font-size: 14px;">{{.Participants}}</td></tr>
              <tr><td style="color: #666; font-size: 14px;"><strong>Purpose:</strong></td><td style="color: #333; font-size: 14px;">{{.Purpose}}</td></tr>
              <tr><td style="color: #666; font-size: 14px;"><strong>Dates:</strong></td><td style="color: #333; font-size: 14px;">{{.StartDate}} to {{.EndDate}}</td></tr>
              <tr><td style="color: #666; font-size: 14px;"><strong>Contact:</strong></td><td style="color: #333; font-size: 14px;">{{.Phones}}</td></tr>
            </table>
            <div style="text-align: center; margin: 30px 0;">
              <a href="{{.LookupURL}}" style="display: inline-block; background-color: #62BBC1; color: white; padding: 15px 40px; text-decoration: none; border-radius: 6px; font-size: 16px; font-weight: bold;">View Full Itinerary Online</a>
              <p style="margin: 10px 0 0 0; color: #666; font-size: 12px;">Or visit: {{.LookupURL}}</p>
            </div>
          </td>
        </tr>
        {{if .Flights}}<tr>
          <td style="padding: 0 30px 20px 30px;">
            <h3 style="margin: 0 0 15px 0; color: #333; font-size: 18px;">✈️ Flight Schedule</h3>
            <table width="100%" cellpadding="10" cellspacing="0" border="0" style="background-color: #f8f9fa; border-radius: 6px;">
              {{range .Flights}}<tr>
                <td style="border-bottom: 1px solid #e0e0e0;">
                  <div style="color: #333; font-size: 14px; font-weight: bold; margin-bottom: 5px;">{{.Airline}} {{.Flight}} - {{.Date}}</div>
                  <div style="color: #666; font-size: 13px; margin-bottom: 5px;">{{.From}} → {{.To}} | Dep: {{.Dep}} | Arr: {{.Arr}}</div>
                  {{if .PNR}}<div style="color: #666; font-size: 12px;">PNR: <span style="font-family: monospace; color: #62BBC1;">{{.PNR}}</span></div>{{end}}
                  {{if .ETicket}}<div style="color: #666; font-size: 12px;">E-ticket: <span style="font-family: monospace; color: #62BBC1;">{{.ETicket}}</span></div>{{end}}
                </td>
              </tr>{{end}}
            </table>
          </td>
        </tr>{{end}}
        {{if .Hotels}}<tr>
          <td style="padding: 0 30px 20px 30px;">
            <h3 style="margin: 0 0 15px 0; color: #333; font-size: 18px;">🏨 Accommodation</h3>
            <table width="100%" cellpadding="10" cellspacing="0" border="0" style="background-color: #f8f9fa; border-radius: 6px;">
              {{range .Hotels}}<tr>
                <td style="border-bottom: 1px solid #e0e0e0;">
                  <div style="color: #333; font-size: 14px; font-weight: bold; margin-bottom: 5px;">{{.Name}}</div>
                  <div style="color: #666; font-size: 13px; margin-bottom: 3px;">Check-in: {{.Checkin}} | Check-out: {{.Checkout}}</div>
                  <div style="color: #666; font-size: 13px;">{{.Address}}{{if .Phone}} | Phone: {{.Phone}}{{end}}</div>
                  {{if .Confirmation}}<div style="color: #62BBC1; font-size: 12px; margin-top: 5px;">Confirmation: {{.Confirmation}}</div>{{end}}
                </td>
              </tr>{{end}}
            </table>
          </td>
        </tr>{{end}}
        {{if .Visits}}<tr>
          <td style="padding: 0 30px 20px 30px;">
            <h3 style="margin: 0 0 15px 0; color: #333; font-size: 18px;">📍 Site Visits</h3>
            <table width="100%" cellpadding="10" cellspacing="0" border="0" style="background-color: #f8f9fa; border-radius: 6px;">
              {{range .Visits}}<tr>
                <td style="border-bottom: 1px solid #e0e0e0;">
                  <div style="color: #333; font-size: 14px; font-weight: bold; margin-bottom: 5px;">{{.Date}} - {{.Activity}}</div>
                  <div style="color: #666; font-size: 13px;">{{.Facility}} | {{.Address}}</div>
                  {{if .Transport}}<div style="color: #666; font-size: 12px; margin-top: 5px;">Transport: {{.Transport}}</div>{{end}}
                </td>
              </tr>{{end}}
            </table>
          </td>
        </tr>{{end}}
        {{if .Transport}}<tr>
          <td style="padding: 0 30px 20px 30px;">
            <h3 style="margin: 0 0 15px 0; color: #333; font-size: 18px;">🚗 Ground Transportation</h3>
            <table width="100%" cellpadding="10" cellspacing="0" border="0" style="background-color: #f8f9fa; border-radius: 6px;">
              {{range .Transport}}<tr>
                <td style="border-bottom: 1px solid #e0e0e0;">
                  <div style="color: #333; font-size: 14px; font-weight: bold; margin-bottom: 5px;">{{.Type}} - {{.Company}}</div>
                  <div style="color: #666; font-size: 13px;">Pickup: {{.PickupTime}} at {{.PickupLocation}}</div>
                  {{if .Confirmation}}<div style="color: #62BBC1; font-size: 12px; margin-top: 5px;">Confirmation: {{.Confirmation}}</div>{{end}}
                  {{if .Notes}}<div style="color: #666; font-size: 12px; margin-top: 5px; font-style: italic;">{{.Notes}}</div>{{end}}
                </td>
              </tr>{{end}}
            </table>
          </td>
        </tr>{{end}}
        {{if .Docs}}<tr>
          <td style="padding: 0 30px 20px 30px;">
            <h3 style="margin: 0 0 15px 0; color: #333; font-size: 18px;">🛂 Travel Documents</h3>
            <table width="100%" cellpadding="8" cellspacing="0" border="0" style="background-color: #f8f9fa; border-radius: 6px;">
              <tr><td style="color: #666; font-size: 13px; width: 180px;">Visa Number:</td><td style="color: #333; font-size: 13px;">{{.Docs.VisaNumber}}</td></tr>
              <tr><td style="color: #666; font-size: 13px;">Visa Expiry:</td><td style="color: #333; font-size: 13px;">{{.Docs.VisaExpiry}}</td></tr>
              <tr><td style="color: #666; font-size: 13px;">Insurance Policy:</td><td style="color: #333; font-size: 13px;">{{.Docs.InsurancePolicy}}</td></tr>
              <tr><td style="color: #666; font-size: 13px;">Insurance Provider:</td><td style="color: #333; font-size: 13px;">{{.Docs.InsuranceProvider}}</td></tr>
              <tr><td style="color: #666; font-size: 13px;">Emergency Contact:</td><td style="color: #333; font-size: 13px;">{{.Docs.EmergencyContact}}</td></tr>
            </table>
          </td>
        </tr>{{end}}
        {{if .Files}}<tr>
          <td style="padding: 0 30px 20px 30px;">
            <h3 style="margin: 0 0 15px 0; color: #333; font-size: 18px;">📎 Attached Documents</h3>
            <table width="100%" cellpadding="8" cellspacing="0" border="0" style="background-color: #f8f9fa; border-radius: 6px;">
              {{range .Files}}<tr>
                <td style="padding: 12px 0; border-bottom: 1px solid #e0e0e0;">
                  <a href="{{.URL}}" style="color: #62BBC1; text-decoration: none; font-size: 14px; font-weight: 600;">📄 {{.Name}}</a>
                  <div style="color: #666; font-size: 11px; margin-top: 4px;">{{if .Size}}{{.Size}} • {{end}}Click to download</div>
                </td>
              </tr>{{end}}
            </table>
          </td>
        </tr>{{end}}
        <tr>
          <td style="background-color: #f8f9fa; padding: 30px; text-align: center; border-top: 1px solid #e0e0e0;">
            <p style="margin: 0 0 10px 0; color: #666; font-size: 12px;">This itinerary was sent by <strong>Wayfare</strong></p>
            <p style="margin: 0; color: #999; font-size: 11px;">For questions or changes, please contact your travel coordinator.</p>
          </td>
        </tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
`))

// Email renders the mail-client HTML body for a normalized model.
func Email(m Model) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
