package service

import (
	"bytes"
	"fmt"
	"html/template"

	"flavor-heaven/notify-svc/internal/domain"
)

const emailTemplates = `
{{define "order_restaurant"}}<h2>New Order - Flavor Heaven</h2>
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p><strong>Order:</strong> {{.OrderNumber}} ({{.OrderType}}, {{.PaymentMethod}})</p>
  <p><strong>Customer:</strong> {{.Customer.Name}} · {{.Customer.Phone}} · {{.Customer.Email}}</p>
  {{if eq .OrderType "delivery"}}<p><strong>Deliver to:</strong> {{.Customer.Address}}, {{.Customer.City}} {{.Customer.Zip}}</p>{{end}}
  {{if .Customer.PickupTime}}<p><strong>Pickup time:</strong> {{.Customer.PickupTime}}</p>{{end}}
  <table>
    {{range .Items}}<tr><td>{{.Quantity}} × {{.Name}}</td><td>${{money (lineTotal .)}}</td></tr>{{end}}
  </table>
  {{if .SpecialInstructions}}<p><strong>Special Instructions:</strong> {{.SpecialInstructions}}</p>{{end}}
  <p><strong>Total:</strong> ${{money .Total}}</p>
</div>{{end}}

{{define "order_customer"}}<h2>Order Confirmed - Flavor Heaven</h2>
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Dear {{.Customer.Name}},</p>
  <p>Thank you for your order! Your order number is <strong>{{.OrderNumber}}</strong>.</p>
  <table>
    {{range .Items}}<tr><td>{{.Quantity}} × {{.Name}}</td><td>${{money (lineTotal .)}}</td></tr>{{end}}
  </table>
  <p>Subtotal: ${{money .Subtotal}}<br>Tax: ${{money .Tax}}{{if .DeliveryFee}}<br>Delivery Fee: ${{money .DeliveryFee}}{{end}}</p>
  <p><strong>Total: ${{money .Total}}</strong></p>
  <p>Best regards,<br>The Flavor Heaven Team</p>
</div>{{end}}

{{define "reservation_restaurant"}}<h2>New Reservation - Flavor Heaven</h2>
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h3>Reservation Details:</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Date:</strong> {{.Date}}</p>
  <p><strong>Time:</strong> {{.Time}}</p>
  <p><strong>Number of Guests:</strong> {{.Guests}}</p>
  {{if .SpecialRequests}}<p><strong>Special Requests:</strong> {{.SpecialRequests}}</p>{{end}}
  <div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #d35400; margin: 10px 0;">
    <p><strong>Status:</strong> {{.Status}}</p>
    <p><strong>Reservation ID:</strong> #{{.ID}}</p>
  </div>
</div>{{end}}

{{define "reservation_customer"}}<h2>Reservation Confirmed - Flavor Heaven</h2>
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Dear {{.Name}},</p>
  <p>Thank you for choosing Flavor Heaven! Your reservation has been confirmed.</p>
  <div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #e53e3e; margin: 10px 0;">
    <p><strong>Date:</strong> {{.Date}}</p>
    <p><strong>Time:</strong> {{.Time}}</p>
    <p><strong>Number of Guests:</strong> {{.Guests}}</p>
    <p><strong>Reservation ID:</strong> #{{.ID}}</p>
    {{if .SpecialRequests}}<p><strong>Special Requests:</strong> {{.SpecialRequests}}</p>{{end}}
  </div>
  <p>If you need to make any changes to your reservation, please contact us at least 2 hours before your scheduled time.</p>
  <p>Best regards,<br>The Flavor Heaven Team</p>
</div>{{end}}

{{define "contact_restaurant"}}<h1>New Contact Form Submission</h1>
<p>Name: {{.Name}}</p>
<p>Email: {{.Email}}</p>
<p>Phone: {{.Phone}}</p>
<p>Subject: {{.Subject}}</p>
<p>Message: {{.Message}}</p>
{{if .Rating}}<p>Rating: {{.Rating}}</p>{{end}}{{end}}

{{define "contact_customer"}}<h1>Thank you for contacting us!</h1>
<p>Dear {{.Name}},</p>
<p>We have received your message and will get back to you soon.</p>
<p>Your message: {{.Message}}</p>{{end}}
`

var templates = template.Must(template.New("emails").Funcs(template.FuncMap{
	"money":     func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"lineTotal": func(l domain.OrderLine) float64 { return l.Price * float64(l.Quantity) },
}).Parse(emailTemplates))

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Emails renders the restaurant notice and the customer confirmation for an
// event. The restaurant notice is skipped when restaurant is empty.
func Emails(ev domain.EventMessage, restaurant string) ([]domain.Email, error) {
	type draft struct {
		to, subject, tmpl string
		data              interface{}
	}
	var drafts []draft

	switch ev.Type {
	case domain.EventOrderPlaced:
		o := ev.Order
		drafts = []draft{
			{restaurant, fmt.Sprintf("New Order: %s - %s", o.OrderNumber, o.Customer.Name), "order_restaurant", o},
			{o.Customer.Email, "Order Confirmed - Flavor Heaven", "order_customer", o},
		}
	case domain.EventReservationCreated:
		r := ev.Reservation
		drafts = []draft{
			{restaurant, fmt.Sprintf("New Reservation: %s - %s at %s", r.Name, r.Date, r.Time), "reservation_restaurant", r},
			{r.Email, "Reservation Confirmed - Flavor Heaven", "reservation_customer", r},
		}
	case domain.EventContactSubmitted:
		c := ev.Contact
		drafts = []draft{
			{restaurant, "New Contact Form Submission - Flavor Heaven", "contact_restaurant", c},
			{c.Email, "Contact Confirmation - Flavor Heaven", "contact_customer", c},
		}
	default:
		return nil, nil
	}

	emails := make([]domain.Email, 0, len(drafts))
	for _, d := range drafts {
		if d.to == "" {
			continue
		}
		html, err := render(d.tmpl, d.data)
		if err != nil {
			return nil, err
		}
		emails = append(emails, domain.Email{To: d.to, Subject: headerSafe(d.subject), HTML: html})
	}
	return emails, nil
}
