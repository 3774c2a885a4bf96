package libs

import (
	"bytes"
	"fmt"
	"html/template"

	"coffee-order/models"

	"gopkg.in/gomail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	dialer sender
	from   string
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	if from == "" {
		from = user
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
        <h2 style="color: #4A2B18;">Order Confirmed!</h2>
        <p>Thank you for your purchase.</p>
        <table style="width: 100%;">
            {{- range .Items}}
            <tr><td>{{.Quantity}}x {{.ProductName}}</td><td style="text-align: right;">${{.LineTotal.StringFixed 2}}</td></tr>
            {{- end}}
            <tr><td>Service fee</td><td style="text-align: right;">${{.ServiceFee.StringFixed 2}}</td></tr>
            <tr><td><strong>Total</strong></td><td style="text-align: right;"><strong>${{.Total.StringFixed 2}}</strong></td></tr>
        </table>
        <p><strong>Order:</strong> {{.Number}}</p>
        <p><strong>Ready by:</strong> {{.ReadyAt.Format "15:04"}}</p>
        <p><strong>Pickup:</strong> {{.PickupAddress}}</p>
    </div>
</body>
</html>
`))

func renderReceipt(order models.Order) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, order); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

func (s *Mailer) SendOrderReceipt(order models.Order) error {
	body, err := renderReceipt(order)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", order.Email)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation %s", order.Number))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
