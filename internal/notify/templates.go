package notify

import (
	"fmt"
	"strings"
	"text/template"

	"perfume-shop/internal/domain"
)

// Notification content is templated, not computed: the dispatcher renders
// fixed text with order fields slotted in. Money is formatted to two decimal
// places with the Tk prefix used by the storefront.

var confirmationEmailTmpl = template.Must(template.New("confirmation").Parse(
	`Dear {{.CustomerName}},

Thank you for shopping with {{.StoreName}}! We have received your order.

Order Number: {{.OrderNumber}}

Items:
{{range .Lines}}  {{.Name}} x{{.Quantity}} @ {{.Price}} = {{.LineTotal}}
{{end}}
Subtotal:        {{.Subtotal}}
Delivery Charge: {{.DeliveryCharge}}
Total:           {{.Total}}

Payment Method: {{.PaymentMethod}}
{{if .TransactionID}}Transaction ID: {{.TransactionID}}
{{end}}{{if .OrderNotes}}Order Notes: {{.OrderNotes}}
{{end}}
We will notify you as your order progresses. Keep your order number handy for
any queries.

{{.StoreName}}`))

var statusUpdateEmailTmpl = template.Must(template.New("status-update").Parse(
	`Dear {{.CustomerName}},

{{.StatusMessage}}

Order Number: {{.OrderNumber}}
Current Status: {{.Status}}

{{.StoreName}}`))

// statusMessages maps each lifecycle status to its customer-facing body.
// Unknown statuses deliberately fall back to a generic line instead of
// failing the dispatch.
var statusMessages = map[domain.OrderStatus]string{
	domain.StatusPending:    "Your order has been received and is awaiting confirmation.",
	domain.StatusConfirmed:  "Good news! Your order has been confirmed and will be prepared soon.",
	domain.StatusProcessing: "Your order is being processed and packed with care.",
	domain.StatusShipped:    "Your order has been shipped and is on its way to you.",
	domain.StatusDelivered:  "Your order has been delivered. We hope you love it!",
	domain.StatusCancelled:  "Your order has been cancelled. Contact us if this was unexpected.",
}

const genericStatusMessage = "Order status updated."

// StatusMessage returns the body for a status-update notification.
func StatusMessage(status domain.OrderStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return genericStatusMessage
}

func money(v float64) string {
	return fmt.Sprintf("Tk %.2f", v)
}

type emailLine struct {
	Name      string
	Quantity  int
	Price     string
	LineTotal string
}

type confirmationView struct {
	StoreName      string
	CustomerName   string
	OrderNumber    string
	Lines          []emailLine
	Subtotal       string
	DeliveryCharge string
	Total          string
	PaymentMethod  string
	TransactionID  string
	OrderNotes     string
}

func composeConfirmationEmail(storeName string, o *domain.Order) (subject, body string) {
	view := confirmationView{
		StoreName:      storeName,
		CustomerName:   customerName(o),
		OrderNumber:    o.OrderNumber,
		Subtotal:       money(o.Totals.Subtotal),
		DeliveryCharge: money(o.Totals.DeliveryCharge),
		Total:          money(o.Totals.Total),
		PaymentMethod:  o.Payment.Method.Label(),
		TransactionID:  o.Payment.TransactionID,
		OrderNotes:     o.OrderNotes,
	}
	for _, it := range o.Items {
		view.Lines = append(view.Lines, emailLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     money(it.Price),
			LineTotal: money(it.Price * float64(it.Quantity)),
		})
	}

	var b strings.Builder
	// Parse is checked by template.Must at init; Execute on a Builder with a
	// plain struct cannot fail.
	_ = confirmationEmailTmpl.Execute(&b, view)
	return fmt.Sprintf("Order Confirmation - %s", o.OrderNumber), b.String()
}

func composeStatusUpdateEmail(storeName string, o *domain.Order, status domain.OrderStatus) (subject, body string) {
	var b strings.Builder
	_ = statusUpdateEmailTmpl.Execute(&b, struct {
		StoreName     string
		CustomerName  string
		OrderNumber   string
		Status        string
		StatusMessage string
	}{
		StoreName:     storeName,
		CustomerName:  customerName(o),
		OrderNumber:   o.OrderNumber,
		Status:        string(status),
		StatusMessage: StatusMessage(status),
	})
	return fmt.Sprintf("Order Update - %s", o.OrderNumber), b.String()
}

func composeConfirmationSMS(storeName string, o *domain.Order) string {
	return fmt.Sprintf("%s: Thank you! Your order %s (%s) has been received. We will confirm it shortly.",
		storeName, o.OrderNumber, money(o.Totals.Total))
}

func composeStatusUpdateSMS(storeName string, o *domain.Order, status domain.OrderStatus) string {
	return fmt.Sprintf("%s: Order %s - %s", storeName, o.OrderNumber, StatusMessage(status))
}

func customerName(o *domain.Order) string {
	return strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName)
}
