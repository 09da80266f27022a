package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfume-shop/internal/domain"
)

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

func validPayload() *OrderPayload {
	return &OrderPayload{
		Customer: &CustomerPayload{
			FirstName: "  Ayesha ",
			LastName:  "Rahman",
			Phone:     "01712345678",
			Email:     " ayesha@example.com ",
		},
		Delivery: &DeliveryPayload{
			Address: " House 12, Road 5 ",
			City:    "Dhaka",
		},
		Payment: &PaymentPayload{Method: "cod"},
		Items: []ItemPayload{
			{ProductID: "1", Name: "Midnight Oud", Price: f(50), Quantity: n(2), Category: "woody"},
			{ProductID: "4", Name: "Citrus Veil", Price: f(30), Quantity: n(1)},
		},
		Totals: &TotalsPayload{Subtotal: 130, DeliveryCharge: 0, Total: f(130)},
	}
}

func TestValidateNormalizesValidPayload(t *testing.T) {
	order, err := Validate(validPayload())
	require.NoError(t, err)

	assert.Equal(t, "Ayesha", order.Customer.FirstName)
	assert.Equal(t, "ayesha@example.com", order.Customer.Email)
	assert.Equal(t, "House 12, Road 5", order.Delivery.Address)
	assert.Equal(t, domain.PaymentCOD, order.Payment.Method)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "woody", order.Items[0].Category)
	assert.Equal(t, "other", order.Items[1].Category, "missing category defaults to other")
	assert.Equal(t, 130.0, order.Totals.Total)
}

func TestValidateDropsEmptyOptionals(t *testing.T) {
	p := validPayload()
	p.Customer.Email = "   "
	p.Delivery.PostalCode = ""
	p.Payment.TransactionID = "  "

	order, err := Validate(p)
	require.NoError(t, err)

	assert.Empty(t, order.Customer.Email)
	assert.Empty(t, order.Delivery.PostalCode)
	assert.Empty(t, order.Payment.TransactionID)
}

func TestValidateMissingSections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*OrderPayload)
		field   string
		message string
	}{
		{"customer", func(p *OrderPayload) { p.Customer = nil }, "customer", "Customer information is required"},
		{"delivery", func(p *OrderPayload) { p.Delivery = nil }, "delivery", "Delivery information is required"},
		{"payment", func(p *OrderPayload) { p.Payment = nil }, "payment", "Payment information is required"},
		{"items nil", func(p *OrderPayload) { p.Items = nil }, "items", "At least one order item is required"},
		{"items empty", func(p *OrderPayload) { p.Items = []ItemPayload{} }, "items", "At least one order item is required"},
		{"totals", func(p *OrderPayload) { p.Totals = nil }, "totals", "Order totals are required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload()
			tc.mutate(p)

			_, err := Validate(p)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.message, verr.Message)
		})
	}
}

func TestValidateRequiredStrings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*OrderPayload)
		field  string
	}{
		{"blank first name", func(p *OrderPayload) { p.Customer.FirstName = "  " }, "customer.firstName"},
		{"blank last name", func(p *OrderPayload) { p.Customer.LastName = "" }, "customer.lastName"},
		{"blank phone", func(p *OrderPayload) { p.Customer.Phone = " " }, "customer.phone"},
		{"blank address", func(p *OrderPayload) { p.Delivery.Address = "" }, "delivery.address"},
		{"blank city", func(p *OrderPayload) { p.Delivery.City = "\t" }, "delivery.city"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload()
			tc.mutate(p)

			_, err := Validate(p)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	t.Run("unknown method rejected", func(t *testing.T) {
		p := validPayload()
		p.Payment.Method = "paypal"

		_, err := Validate(p)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "payment.method", verr.Field)
	})

	t.Run("bkash requires transaction id", func(t *testing.T) {
		p := validPayload()
		p.Payment.Method = "bkash"
		p.Payment.TransactionID = "  "

		_, err := Validate(p)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "payment.transactionId", verr.Field)
		assert.Contains(t, verr.Message, "Transaction ID")
	})

	t.Run("bkash with transaction id passes", func(t *testing.T) {
		p := validPayload()
		p.Payment.Method = "bkash"
		p.Payment.TransactionID = " 9HX2K4LMT1 "

		order, err := Validate(p)
		require.NoError(t, err)
		assert.Equal(t, "9HX2K4LMT1", order.Payment.TransactionID)
	})

	t.Run("cod without transaction id passes", func(t *testing.T) {
		p := validPayload()
		p.Payment.Method = "cod"
		p.Payment.TransactionID = ""

		_, err := Validate(p)
		require.NoError(t, err)
	})
}

func TestValidateItems(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*OrderPayload)
		field  string
	}{
		{"missing product id", func(p *OrderPayload) { p.Items[0].ProductID = "" }, "items[0].productId"},
		{"missing name", func(p *OrderPayload) { p.Items[1].Name = " " }, "items[1].name"},
		{"missing price", func(p *OrderPayload) { p.Items[0].Price = nil }, "items[0].price"},
		{"zero price", func(p *OrderPayload) { p.Items[0].Price = f(0) }, "items[0].price"},
		{"negative price", func(p *OrderPayload) { p.Items[0].Price = f(-10) }, "items[0].price"},
		{"missing quantity", func(p *OrderPayload) { p.Items[1].Quantity = nil }, "items[1].quantity"},
		{"zero quantity", func(p *OrderPayload) { p.Items[1].Quantity = n(0) }, "items[1].quantity"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload()
			tc.mutate(p)

			_, err := Validate(p)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateTotals(t *testing.T) {
	t.Run("missing total", func(t *testing.T) {
		p := validPayload()
		p.Totals.Total = nil

		_, err := Validate(p)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "totals.total", verr.Field)
	})

	t.Run("zero total", func(t *testing.T) {
		p := validPayload()
		p.Totals.Total = f(0)

		_, err := Validate(p)
		require.Error(t, err)
	})

	t.Run("total is trusted, not reconciled", func(t *testing.T) {
		// The client computed 130 from the items but submits 999. Validation
		// deliberately does not cross-check.
		p := validPayload()
		p.Totals.Total = f(999)

		order, err := Validate(p)
		require.NoError(t, err)
		assert.Equal(t, 999.0, order.Totals.Total)
	})

	t.Run("negative delivery charge rejected", func(t *testing.T) {
		p := validPayload()
		p.Totals.DeliveryCharge = -5

		_, err := Validate(p)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "totals.deliveryCharge", verr.Field)
	})
}
