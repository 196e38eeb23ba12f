package email

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// Sender отправка писем через Resend (resend.EmailsSvc)
type Sender interface {
	SendWithOptions(ctx context.Context, params *resend.SendEmailRequest, options *resend.SendEmailOptions) (*resend.SendEmailResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
