package services

import (
	"time"

	"court_agenda_go/models"

	"gorm.io/gorm"
)

// DocketRecord bundles the hearings of a report chain with the full
// history log of their docket reference.
type DocketRecord struct {
	Entries []models.Hearing        `json:"entries"`
	History []models.HearingHistory `json:"history"`
}

// RescheduleHearing supersedes a scheduled hearing with a successor on a
// new date. The source flips to RESCHEDULED, the successor copies its
// descriptive fields and points back at it through the predecessor link,
// and a RESCHEDULED history entry carries the motive. Everything happens
// in one transaction: there is no state where the successor exists but
// the source is still SCHEDULED, or the reverse.
//
// A successor is always a freshly created record, so predecessor chains
// only ever point at strictly older rows and can never cycle.
func RescheduleHearing(db *gorm.DB, id string, newDate time.Time, newTime, motive, notes string, actor Actor) (*models.Hearing, error) {
	if newDate.IsZero() {
		return nil, &ValidationError{Field: "hearing_date", Reason: "new hearing date is required"}
	}
	if newTime == "" {
		return nil, &ValidationError{Field: "hearing_time", Reason: "new hearing time is required"}
	}
	if err := validateHearingTime(newTime); err != nil {
		return nil, err
	}

	source, err := GetHearingByID(db, id)
	if err != nil {
		return nil, err
	}
	if !source.IsReschedulable() {
		return nil, &InvalidTransitionError{From: source.Status, To: models.HearingStatusRescheduled}
	}

	successor := &models.Hearing{
		CaseID:            source.CaseID,
		DocketNumber:      source.DocketNumber,
		Party:             source.Party,
		Title:             source.Title,
		ChamberType:       source.ChamberType,
		ChamberOtherLabel: source.ChamberOtherLabel,
		HearingDate:       truncateToDate(newDate),
		HearingTime:       newTime,
		Location:          source.Location,
		Notes:             sanitize(notes),
		Status:            models.HearingStatusScheduled,
		PredecessorID:     &source.ID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Compare-and-set on the source status. Of two racing
		// reschedules exactly one flips the row; the other sees zero
		// affected rows and fails without creating a successor.
		result := tx.Model(&models.Hearing{}).
			Where("id = ? AND status = ?", source.ID, models.HearingStatusScheduled).
			Update("status", models.HearingStatusRescheduled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			current, err := GetHearingByID(tx, source.ID)
			if err != nil {
				return err
			}
			return &InvalidTransitionError{From: current.Status, To: models.HearingStatusRescheduled}
		}

		if err := tx.Create(successor).Error; err != nil {
			return err
		}

		err := tx.Model(&models.Hearing{}).
			Where("id = ?", source.ID).
			UpdateColumn("nb_reports", gorm.Expr("nb_reports + 1")).Error
		if err != nil {
			return err
		}

		return appendHistory(tx, &models.HearingHistory{
			DocketNumber: source.DocketNumber,
			CaseID:       source.CaseID,
			HearingID:    source.ID,
			Action:       models.HistoryActionRescheduled,
			Comment:      sanitize(motive),
			ActorID:      actor.ID,
			ActorName:    actor.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return successor, nil
}

// DocketHistory returns every hearing filed under a docket reference
// (the whole report chain, not just one record) ordered by date
// descending, plus the full history log ordered newest first.
func DocketHistory(db *gorm.DB, docketNumber string) (*DocketRecord, error) {
	var hearings []models.Hearing
	err := db.Where("docket_number = ?", docketNumber).
		Order("hearing_date DESC").
		Order("hearing_time DESC").
		Find(&hearings).Error
	if err != nil {
		return nil, err
	}

	history, err := QueryHistoryByDocket(db, docketNumber)
	if err != nil {
		return nil, err
	}

	if len(hearings) == 0 && len(history) == 0 {
		return nil, ErrDocketNotFound
	}

	return &DocketRecord{Entries: hearings, History: history}, nil
}
