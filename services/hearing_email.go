package services

import (
	"fmt"
	"log"

	"court_agenda_go/config"
	"court_agenda_go/models"

	"github.com/resend/resend-go/v2"
)

// Email represents an outgoing notification message
type Email struct {
	To      []string
	Subject string
	Text    string
}

// BuildRescheduleEmail composes the notification sent when a hearing is
// moved to a new date.
func BuildRescheduleEmail(to string, source *models.Hearing, successor *models.Hearing, motive string) *Email {
	subject := fmt.Sprintf("Hearing rescheduled — docket %s", source.DocketNumber)
	body := fmt.Sprintf(
		"The hearing %q (docket %s) scheduled for %s at %s has been rescheduled.\n\n"+
			"New date: %s at %s\nLocation: %s\nMotive: %s\n",
		source.Title, source.DocketNumber,
		source.HearingDate.Format("Monday, January 2, 2006"), source.HearingTime,
		successor.HearingDate.Format("Monday, January 2, 2006"), successor.HearingTime,
		successor.Location, motive,
	)
	return &Email{To: []string{to}, Subject: subject, Text: body}
}

// BuildCancellationEmail composes the notification sent when a hearing
// is cancelled.
func BuildCancellationEmail(to string, hearing *models.Hearing) *Email {
	subject := fmt.Sprintf("Hearing cancelled — docket %s", hearing.DocketNumber)
	body := fmt.Sprintf(
		"The hearing %q (docket %s) scheduled for %s at %s has been cancelled.\n",
		hearing.Title, hearing.DocketNumber,
		hearing.HearingDate.Format("Monday, January 2, 2006"), hearing.HearingTime,
	)
	return &Email{To: []string{to}, Subject: subject, Text: body}
}

// SendEmail delivers a notification through Resend. In test mode the
// message is logged to the console instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		log.Printf("[EMAIL] (test mode) to=%v subject=%q\n%s", email.To, email.Subject, email.Text)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Text:    email.Text,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}
	log.Printf("[EMAIL] sent via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends a notification in the background. Notifications
// are best effort and never affect the mutation they describe; by the
// time one is queued the transaction has already committed.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:      append([]string{}, email.To...),
		Subject: email.Subject,
		Text:    email.Text,
	}
	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("[EMAIL] error sending async email: %v", err)
		}
	}()
}
