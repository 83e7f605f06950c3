package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ConflictAlertEmailData holds data for the conflict alert email sent to the
// opportunity contact when a high-severity conflict is logged.
type ConflictAlertEmailData struct {
	Email           string
	OpportunityName string
	VenueName       string
	ConflictType    string
	Severity        string
	ConflictDate    time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendConflictAlert(ctx context.Context, data *ConflictAlertEmailData) error
}
