package services

import (
	"testing"
	"time"

	"court_agenda_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.HearingStatusScheduled, models.HearingStatusCompleted))
	assert.True(t, CanTransition(models.HearingStatusScheduled, models.HearingStatusCancelled))
	assert.True(t, CanTransition(models.HearingStatusScheduled, models.HearingStatusRescheduled))

	// Every transition out of a terminal state is illegal
	terminal := []string{
		models.HearingStatusRescheduled,
		models.HearingStatusCompleted,
		models.HearingStatusCancelled,
	}
	targets := []string{
		models.HearingStatusScheduled,
		models.HearingStatusRescheduled,
		models.HearingStatusCompleted,
		models.HearingStatusCancelled,
	}
	for _, from := range terminal {
		for _, to := range targets {
			assert.False(t, CanTransition(from, to), "%s -> %s should be illegal", from, to)
		}
	}
}

func TestCompleteHearing(t *testing.T) {
	db := setupAgendaTestDB(t)

	t.Run("Scheduled hearing completes", func(t *testing.T) {
		hearing, err := CreateHearing(db, validHearingInput("2024/060"), testActor)
		assert.NoError(t, err)

		completed, err := CompleteHearing(db, hearing.ID, testActor)
		assert.NoError(t, err)
		assert.Equal(t, models.HearingStatusCompleted, completed.Status)

		history, err := QueryHistoryByDocket(db, "2024/060")
		assert.NoError(t, err)
		assert.Len(t, history, 2)
		assert.Equal(t, models.HistoryActionCompleted, history[0].Action)

		// No further transition permitted afterward
		_, err = RescheduleHearing(db, hearing.ID,
			time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), "10:00", "too late", "", testActor)
		var transitionErr *InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, models.HearingStatusCompleted, transitionErr.From)
		assert.Equal(t, models.HearingStatusRescheduled, transitionErr.To)
	})

	t.Run("Completed hearing cannot be cancelled", func(t *testing.T) {
		hearing, err := CreateHearing(db, validHearingInput("2024/061"), testActor)
		assert.NoError(t, err)
		_, err = CompleteHearing(db, hearing.ID, testActor)
		assert.NoError(t, err)

		_, err = CancelHearing(db, hearing.ID, testActor)
		var transitionErr *InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, models.HearingStatusCompleted, transitionErr.From)
		assert.Equal(t, models.HearingStatusCancelled, transitionErr.To)

		// Failed transition appended no history
		history, err := QueryHistoryByDocket(db, "2024/061")
		assert.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := CompleteHearing(db, "missing", testActor)
		assert.ErrorIs(t, err, ErrHearingNotFound)
	})
}

func TestCancelHearing(t *testing.T) {
	db := setupAgendaTestDB(t)

	t.Run("Scheduled hearing cancels", func(t *testing.T) {
		hearing, err := CreateHearing(db, validHearingInput("2024/062"), testActor)
		assert.NoError(t, err)

		cancelled, err := CancelHearing(db, hearing.ID, testActor)
		assert.NoError(t, err)
		assert.Equal(t, models.HearingStatusCancelled, cancelled.Status)

		history, err := QueryHistoryByDocket(db, "2024/062")
		assert.NoError(t, err)
		assert.Equal(t, models.HistoryActionCancelled, history[0].Action)
	})

	t.Run("Cancelled hearing cannot complete", func(t *testing.T) {
		hearing, err := CreateHearing(db, validHearingInput("2024/063"), testActor)
		assert.NoError(t, err)
		_, err = CancelHearing(db, hearing.ID, testActor)
		assert.NoError(t, err)

		_, err = CompleteHearing(db, hearing.ID, testActor)
		var transitionErr *InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}
