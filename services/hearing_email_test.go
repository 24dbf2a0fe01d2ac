package services

import (
	"testing"
	"time"

	"court_agenda_go/config"
	"court_agenda_go/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildRescheduleEmail(t *testing.T) {
	source := &models.Hearing{
		DocketNumber: "2024/001",
		Title:        "Preliminary hearing",
		HearingDate:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		HearingTime:  "09:30",
	}
	successor := &models.Hearing{
		DocketNumber: "2024/001",
		HearingDate:  time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		HearingTime:  "11:00",
		Location:     "Courtroom 4",
	}

	email := BuildRescheduleEmail("client@example.org", source, successor, "witness unavailable")
	assert.Equal(t, []string{"client@example.org"}, email.To)
	assert.Contains(t, email.Subject, "2024/001")
	assert.Contains(t, email.Text, "March 20, 2024")
	assert.Contains(t, email.Text, "witness unavailable")
	assert.Contains(t, email.Text, "Courtroom 4")
}

func TestBuildCancellationEmail(t *testing.T) {
	hearing := &models.Hearing{
		DocketNumber: "2024/002",
		Title:        "Sentencing",
		HearingDate:  time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		HearingTime:  "10:00",
	}

	email := BuildCancellationEmail("client@example.org", hearing)
	assert.Contains(t, email.Subject, "cancelled")
	assert.Contains(t, email.Text, "Sentencing")
}

func TestSendEmailTestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}
	err := SendEmail(cfg, &Email{
		To:      []string{"client@example.org"},
		Subject: "test",
		Text:    "body",
	})
	assert.NoError(t, err)
}

func TestSendEmailMissingKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false}
	err := SendEmail(cfg, &Email{To: []string{"x@example.org"}, Subject: "s", Text: "b"})
	assert.Error(t, err)
}
