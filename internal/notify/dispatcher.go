// Package notify composes and dispatches order notifications over two
// independent channels. Dispatch never fails: channel errors are captured as
// outcomes so a committed order is always returned to the caller, whatever
// the mail or SMS gateway did.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"perfume-shop/internal/domain"
	"perfume-shop/internal/infra"
)

// Outcome is one channel's result. A failed send carries the error as data.
type Outcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Result collects both channel outcomes. Email is nil when the order has no
// customer email and the channel was never attempted.
type Result struct {
	Email *Outcome `json:"email"`
	SMS   Outcome  `json:"sms"`
}

type Dispatcher struct {
	mail      infra.MailSender
	sms       infra.SMSSender
	log       *zap.Logger
	storeName string
	timeout   time.Duration
}

func NewDispatcher(mail infra.MailSender, sms infra.SMSSender, storeName string, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		mail:      mail,
		sms:       sms,
		log:       log,
		storeName: storeName,
		timeout:   timeout,
	}
}

// DispatchConfirmation sends the order-received notification. SMS always,
// email only when the customer left one.
func (d *Dispatcher) DispatchConfirmation(ctx context.Context, o *domain.Order) Result {
	subject, body := composeConfirmationEmail(d.storeName, o)
	return d.fanOut(ctx, o, subject, body, composeConfirmationSMS(d.storeName, o))
}

// DispatchStatusUpdate sends the status-change notification for newStatus.
func (d *Dispatcher) DispatchStatusUpdate(ctx context.Context, o *domain.Order, newStatus domain.OrderStatus) Result {
	subject, body := composeStatusUpdateEmail(d.storeName, o, newStatus)
	return d.fanOut(ctx, o, subject, body, composeStatusUpdateSMS(d.storeName, o, newStatus))
}

// DispatchTest sends a fixed diagnostic email to the given address.
func (d *Dispatcher) DispatchTest(ctx context.Context, email string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.mail.Send(ctx, infra.MailMessage{
		To:      email,
		Subject: "Test Email - " + d.storeName,
		Text:    "This is a test email from " + d.storeName + ". If you can read this, email delivery is working.",
	})
	if err != nil {
		d.log.Warn("test email failed", zap.String("to", email), zap.Error(err))
		return Outcome{Success: false, Error: err.Error()}
	}
	return Outcome{Success: true}
}

// fanOut attempts both channels concurrently and collects their outcomes.
// Neither channel gates the other; both finish before the result returns.
func (d *Dispatcher) fanOut(ctx context.Context, o *domain.Order, emailSubject, emailBody, smsText string) Result {
	var res Result
	g := new(errgroup.Group)

	g.Go(func() error {
		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		if err := d.sms.Send(sendCtx, o.Customer.Phone, smsText); err != nil {
			d.log.Warn("SMS notification failed",
				zap.String("orderNumber", o.OrderNumber),
				zap.Error(err))
			res.SMS = Outcome{Success: false, Error: err.Error()}
			return nil
		}
		res.SMS = Outcome{Success: true}
		return nil
	})

	if o.Customer.Email != "" {
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			err := d.mail.Send(sendCtx, infra.MailMessage{
				To:      o.Customer.Email,
				Subject: emailSubject,
				Text:    emailBody,
			})
			if err != nil {
				d.log.Warn("email notification failed",
					zap.String("orderNumber", o.OrderNumber),
					zap.Error(err))
				res.Email = &Outcome{Success: false, Error: err.Error()}
				return nil
			}
			res.Email = &Outcome{Success: true}
			return nil
		})
	}

	// The group funcs always return nil; Wait only synchronizes.
	_ = g.Wait()
	return res
}
