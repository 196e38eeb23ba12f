package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<p>Hi {{if .CustomerName}}{{.CustomerName}}{{else}}there{{end}},</p>
<p>Thanks for your order #{{.OrderID}}: {{.Quantity}} &times; {{.ProductName}} ({{.Total}}).</p>
{{- if .PickupAt}}
<p>Pickup: <strong>{{.PickupAt}}</strong></p>
{{- end}}
{{- if .NeedsFollowUp}}
<p>Your pickup time filled up while you were paying. We will contact you to arrange another time.</p>
{{- end}}
<p>See you at the farm stand!</p>`))

type confirmationView struct {
	OrderID       int64
	CustomerName  string
	ProductName   string
	Quantity      int
	Total         string
	PickupAt      string
	NeedsFollowUp bool
}

func renderConfirmation(msg *OrderConfirmation) (string, error) {
	view := confirmationView{
		OrderID:       msg.OrderID,
		CustomerName:  msg.CustomerName,
		ProductName:   msg.ProductName,
		Quantity:      msg.Quantity,
		Total:         formatMoney(msg.TotalCents, msg.Currency),
		NeedsFollowUp: msg.NeedsFollowUp,
	}
	if msg.PickupAt != nil {
		view.PickupAt = msg.PickupAt.Format("Monday, Jan 2 at 3:04 PM")
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}

func formatMoney(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, strings.ToUpper(currency))
}
