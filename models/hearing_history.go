package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryAction represents the kind of operation recorded
type HistoryAction string

const (
	HistoryActionCreated     HistoryAction = "CREATED"
	HistoryActionRescheduled HistoryAction = "RESCHEDULED"
	HistoryActionCompleted   HistoryAction = "COMPLETED"
	HistoryActionCancelled   HistoryAction = "CANCELLED"
	HistoryActionDeleted     HistoryAction = "DELETED"
	HistoryActionEdited      HistoryAction = "EDITED"
)

// HearingHistory is an immutable audit record of a hearing mutation.
// Entries outlive the hearing they describe: deleting a hearing never
// removes its history.
type HearingHistory struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_hearing_history_created" json:"created_at"`

	// Seq breaks ordering ties between entries sharing a timestamp;
	// assigned per docket inside the appending transaction.
	Seq int64 `gorm:"not null;index" json:"seq"`

	// Owning docket; the hearing itself may no longer exist
	DocketNumber string  `gorm:"size:100;index;not null" json:"docket_number"`
	CaseID       *string `gorm:"type:uuid;index" json:"case_id,omitempty"`
	HearingID    string  `gorm:"type:uuid;index" json:"hearing_id"`

	Action  HistoryAction `gorm:"size:20;not null" json:"action"`
	Comment string        `gorm:"type:text" json:"comment,omitempty"`

	// Actor identity, denormalized for historical accuracy
	ActorID   string `gorm:"type:uuid" json:"actor_id,omitempty"`
	ActorName string `gorm:"size:200" json:"actor_name,omitempty"`

	// Change tracking for EDITED entries, JSON encoded
	OldValues string `gorm:"type:text" json:"old_values,omitempty"`
	NewValues string `gorm:"type:text" json:"new_values,omitempty"`
}

// BeforeCreate generates UUID
func (h *HearingHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

// BeforeUpdate prevents modification of history entries (immutability)
func (h *HearingHistory) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// BeforeDelete prevents deletion of history entries (immutability)
func (h *HearingHistory) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// TableName specifies the table name
func (HearingHistory) TableName() string {
	return "hearing_histories"
}
