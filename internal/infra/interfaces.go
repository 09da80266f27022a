package infra

import "context"

type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

var _ MailSender = (*MailClient)(nil)
var _ SMSSender = (*SMSClient)(nil)
