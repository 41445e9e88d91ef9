package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"foodbox-be/internal/logger"
)

// SMSSender delivers one-time codes out of band.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// LogSender writes codes to the application log instead of sending SMS.
// Used in development and test environments.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, phone, message string) error {
	logger.FromCtx(ctx).Info("sms (log sender)",
		zap.String("phone", phone),
		zap.String("message", message),
	)
	return nil
}

func otpMessage(code string) string {
	return fmt.Sprintf("Your verification code is %s", code)
}
