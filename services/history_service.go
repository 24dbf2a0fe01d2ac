package services

import (
	"court_agenda_go/models"

	"gorm.io/gorm"
)

// Actor identifies who performed a mutation, supplied by the identity
// layer in front of the agenda (see middleware.ActorContext).
type Actor struct {
	ID   string
	Name string
}

// appendHistory records one immutable history entry for a hearing
// mutation. It must run inside the transaction performing the mutation:
// a failed append aborts the whole operation, audit entries are never
// lost silently.
func appendHistory(tx *gorm.DB, entry *models.HearingHistory) error {
	var maxSeq int64
	err := tx.Model(&models.HearingHistory{}).
		Where("docket_number = ?", entry.DocketNumber).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return &AuditWriteError{Err: err}
	}
	entry.Seq = maxSeq + 1

	if err := tx.Create(entry).Error; err != nil {
		return &AuditWriteError{Err: err}
	}
	return nil
}

// QueryHistoryByDocket returns the full history for a docket reference,
// newest first. Entries sharing a timestamp order by most recent append.
func QueryHistoryByDocket(db *gorm.DB, docketNumber string) ([]models.HearingHistory, error) {
	var entries []models.HearingHistory
	err := db.Where("docket_number = ?", docketNumber).
		Order("created_at DESC").
		Order("seq DESC").
		Find(&entries).Error
	return entries, err
}
