package notifier

import (
	"context"
	"log/slog"
)

// EmailNotifier forwards lifecycle event messages to the email channel.
// The actual mail dispatch is out of scope; deliveries are logged.
type EmailNotifier struct {
	logger *slog.Logger
}

// NewEmailNotifier creates an email observer.
func NewEmailNotifier(logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{logger: logger.With("component", "email-notifier")}
}

// Update delivers a single event message to the email channel.
func (n *EmailNotifier) Update(_ context.Context, message string) {
	n.logger.Info("sending email notification", "message", message)
}

// SMSNotifier forwards lifecycle event messages to the SMS channel.
type SMSNotifier struct {
	logger *slog.Logger
}

// NewSMSNotifier creates an SMS observer.
func NewSMSNotifier(logger *slog.Logger) *SMSNotifier {
	return &SMSNotifier{logger: logger.With("component", "sms-notifier")}
}

// Update delivers a single event message to the SMS channel.
func (n *SMSNotifier) Update(_ context.Context, message string) {
	n.logger.Info("sending sms notification", "message", message)
}
