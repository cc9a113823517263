package render

import (
	"bytes"
	"html/template"
)

// Print layout: a plain A4-friendly page. Same conditional sections as
// the email target, driven by the same Model.
var printTmpl = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Itinerary {{.Code}}</title>
  <style>
    body { font-family: Arial, sans-serif; color: #222; margin: 24px; }
    h1 { font-size: 22px; margin: 0; }
    h2 { font-size: 16px; border-bottom: 2px solid #62BBC1; padding-bottom: 4px; margin-top: 24px; }
    table { width: 100%; border-collapse: collapse; margin-top: 8px; }
    th { text-align: left; font-size: 12px; color: #666; border-bottom: 1px solid #ccc; padding: 4px 6px; }
    td { font-size: 13px; padding: 4px 6px; border-bottom: 1px solid #eee; vertical-align: top; }
    .meta td { border: none; padding: 2px 6px; }
    .code { color: #62BBC1; font-weight: bold; }
    .footer { margin-top: 32px; font-size: 11px; color: #999; text-align: center; }
    @media print { body { margin: 0; } }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>Reference Code: <span class="code">{{.Code}}</span>{{if .TripTag}} · {{.TripTag}}{{end}}</p>

  <h2>Trip Summary</h2>
  <table class="meta">
    <tr><td width="160">Travelers</td><td>{{.Participants}}</td></tr>
    <tr><td>Purpose</td><td>{{.Purpose}}</td></tr>
    {{if .Factory}}<tr><td>Factory</td><td>{{.Factory}}</td></tr>{{end}}
    <tr><td>Dates</td><td>{{.StartDate}} to {{.EndDate}}</td></tr>
    <tr><td>Contact</td><td>{{.Phones}}</td></tr>
  </table>

  {{if .Flights}}
  <h2>Flight Schedule</h2>
  <table>
    <tr><th>Date</th><th>Flight</th><th>Route</th><th>Dep</th><th>Arr</th><th>PNR / E-ticket</th></tr>
    {{range .Flights}}<tr>
      <td>{{.Date}}</td>
      <td>{{.Airline}} {{.Flight}}</td>
      <td>{{.From}} → {{.To}}</td>
      <td>{{.Dep}}</td>
      <td>{{.Arr}}</td>
      <td>{{.PNR}}{{if .ETicket}} / {{.ETicket}}{{end}}</td>
    </tr>{{end}}
  </table>
  {{end}}

  {{if .Hotels}}
  <h2>Accommodation</h2>
  <table>
    <tr><th>Hotel</th><th>Check-in</th><th>Check-out</th><th>Address</th><th>Confirmation</th></tr>
    {{range .Hotels}}<tr>
      <td>{{.Name}}{{if .Phone}}<br/>{{.Phone}}{{end}}</td>
      <td>{{.Checkin}}</td>
      <td>{{.Checkout}}</td>
      <td>{{.Address}}</td>
      <td>{{.Confirmation}}</td>
    </tr>{{end}}
  </table>
  {{end}}

  {{if .Visits}}
  <h2>Site Visits</h2>
  <table>
    <tr><th>Date</th><th>Activity</th><th>Facility</th><th>Address</th><th>Transport</th></tr>
    {{range .Visits}}<tr>
      <td>{{.Date}}</td>
      <td>{{.Activity}}</td>
      <td>{{.Facility}}</td>
      <td>{{.Address}}</td>
      <td>{{.Transport}}</td>
    </tr>{{end}}
  </table>
  {{end}}

  {{if .Transport}}
  <h2>Ground Transportation</h2>
  <table>
    <tr><th>Type</th><th>Company</th><th>Pickup</th><th>Location</th><th>Notes</th></tr>
    {{range .Transport}}<tr>
      <td>{{.Type}}</td>
      <td>{{.Company}}</td>
      <td>{{.PickupTime}}</td>
      <td>{{.PickupLocation}}</td>
      <td>{{.Notes}}{{if .Confirmation}}{{if .Notes}} · {{end}}Conf: {{.Confirmation}}{{end}}</td>
    </tr>{{end}}
  </table>
  {{end}}

  {{if .Docs}}
  <h2>Travel Documents</h2>
  <table class="meta">
    <tr><td width="160">Visa Number</td><td>{{.Docs.VisaNumber}}</td></tr>
    <tr><td>Visa Expiry</td><td>{{.Docs.VisaExpiry}}</td></tr>
    <tr><td>Insurance Policy</td><td>{{.Docs.InsurancePolicy}}</td></tr>
    <tr><td>Insurance Provider</td><td>{{.Docs.InsuranceProvider}}</td></tr>
    <tr><td>Emergency Contact</td><td>{{.Docs.EmergencyContact}}</td></tr>
  </table>
  {{end}}

  {{if .Files}}
  <h2>Attached Files</h2>
  <table>
    <tr><th>File</th><th>Size</th></tr>
    {{range .Files}}<tr><td><a href="{{.URL}}">{{.Name}}</a></td><td>{{.Size}}</td></tr>{{end}}
  </table>
  {{end}}

  <div class="footer">Generated at {{.GeneratedAt}} · {{.LookupURL}}</div>
</body>
</html>
`))

// Print renders the printable page for a normalized model.
func Print(m Model) (string, error) {
	var buf bytes.Buffer
	if err := printTmpl.Execute(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
