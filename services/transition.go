package services

import (
	"court_agenda_go/models"

	"gorm.io/gorm"
)

// legalTransitions is the full transition table. SCHEDULED is the only
// non-terminal state; RESCHEDULED, COMPLETED and CANCELLED admit no
// further transitions on the same record.
var legalTransitions = map[string]map[string]bool{
	models.HearingStatusScheduled: {
		models.HearingStatusRescheduled: true,
		models.HearingStatusCompleted:   true,
		models.HearingStatusCancelled:   true,
	},
	models.HearingStatusRescheduled: {},
	models.HearingStatusCompleted:   {},
	models.HearingStatusCancelled:   {},
}

// CanTransition reports whether a status change is legal
func CanTransition(from, to string) bool {
	return legalTransitions[from][to]
}

// CompleteHearing marks a scheduled hearing as held
func CompleteHearing(db *gorm.DB, id string, actor Actor) (*models.Hearing, error) {
	return transitionHearing(db, id, models.HearingStatusCompleted, models.HistoryActionCompleted, "", actor)
}

// CancelHearing cancels a scheduled hearing
func CancelHearing(db *gorm.DB, id string, actor Actor) (*models.Hearing, error) {
	return transitionHearing(db, id, models.HearingStatusCancelled, models.HistoryActionCancelled, "", actor)
}

// transitionHearing applies one status transition and its history entry
// as a single transaction. The status flip is a compare-and-set guarded
// on the source state, so two racing transitions cannot both succeed:
// the loser observes zero affected rows and fails with the transition
// error naming the state that won.
func transitionHearing(db *gorm.DB, id, to string, action models.HistoryAction, comment string, actor Actor) (*models.Hearing, error) {
	hearing, err := GetHearingByID(db, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(hearing.Status, to) {
		return nil, &InvalidTransitionError{From: hearing.Status, To: to}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Hearing{}).
			Where("id = ? AND status = ?", id, models.HearingStatusScheduled).
			Update("status", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race: reload to name the actual current state.
			current, err := GetHearingByID(tx, id)
			if err != nil {
				return err
			}
			return &InvalidTransitionError{From: current.Status, To: to}
		}

		return appendHistory(tx, &models.HearingHistory{
			DocketNumber: hearing.DocketNumber,
			CaseID:       hearing.CaseID,
			HearingID:    hearing.ID,
			Action:       action,
			Comment:      comment,
			ActorID:      actor.ID,
			ActorName:    actor.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return GetHearingByID(db, id)
}
