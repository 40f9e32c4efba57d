package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// DigestEventRow is one event line in the daily digest email.
type DigestEventRow struct {
	Title    string
	Time     string
	Priority string // upper-cased for display
	Kasali   string // comma-joined tags, or "None assigned"
}

// DigestEmailData holds data for the daily digest email.
type DigestEmailData struct {
	// Date is the digest day formatted for display, e.g. "Monday, January 5, 2025".
	Date string
	// ShortDate is the compact form used in the subject, e.g. "Jan 5, 2025".
	ShortDate string
	Count     int
	// Plural is "s" when Count != 1, for "N event(s) scheduled" wording.
	Plural string
	Events []DigestEventRow
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendDailyDigest(ctx context.Context, to string, data *DigestEmailData) error
}
