package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hearing status constants
const (
	HearingStatusScheduled   = "SCHEDULED"
	HearingStatusRescheduled = "RESCHEDULED"
	HearingStatusCompleted   = "COMPLETED"
	HearingStatusCancelled   = "CANCELLED"
)

// Chamber type constants. ChamberOther requires the free-text
// ChamberOtherLabel field on the hearing.
const (
	ChamberCivil          = "CIVIL"
	ChamberCriminal       = "CRIMINAL"
	ChamberCommercial     = "COMMERCIAL"
	ChamberLabor          = "LABOR"
	ChamberFamily         = "FAMILY"
	ChamberAdministrative = "ADMINISTRATIVE"
	ChamberOther          = "OTHER"
)

// Hearing represents one scheduled judicial appearance. A rescheduled
// hearing keeps its own record (status RESCHEDULED) and a successor
// hearing is created pointing back to it via PredecessorID.
type Hearing struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Optional link to a registered case
	CaseID *string `gorm:"type:uuid;index" json:"case_id,omitempty"`
	Case   *Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	// Docket reference groups a report chain and its history
	DocketNumber string `gorm:"size:100;index" json:"docket_number"`
	Party        string `gorm:"size:200" json:"party"`
	Title        string `gorm:"size:255" json:"title"`

	// Chamber (tagged variant: enumerated value, OTHER carries a label)
	ChamberType       string `gorm:"size:20;not null" json:"chamber_type"`
	ChamberOtherLabel string `gorm:"size:100" json:"chamber_other_label,omitempty"`

	// Schedule. HearingTime uses "HH:MM". A RESCHEDULED hearing keeps the
	// date/time it was originally set for; the new date lives on the successor.
	HearingDate time.Time `gorm:"type:date;index;not null" json:"hearing_date"`
	HearingTime string    `gorm:"size:5;not null" json:"hearing_time"`
	Location    string    `gorm:"size:255" json:"location"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`

	Status string `gorm:"size:20;default:'SCHEDULED';index" json:"status"`

	// Report chain
	PredecessorID *string  `gorm:"type:uuid;index" json:"predecessor_id,omitempty"`
	Predecessor   *Hearing `gorm:"foreignKey:PredecessorID" json:"-"`
	NbReports     int      `gorm:"default:0" json:"nb_reports"`
}

// BeforeCreate hook to generate UUID
func (h *Hearing) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Hearing model
func (Hearing) TableName() string {
	return "hearings"
}

// IsValidHearingStatus checks if the status is valid
func IsValidHearingStatus(status string) bool {
	switch status {
	case HearingStatusScheduled, HearingStatusRescheduled,
		HearingStatusCompleted, HearingStatusCancelled:
		return true
	}
	return false
}

// IsValidChamberType checks if the chamber type is valid
func IsValidChamberType(chamberType string) bool {
	switch chamberType {
	case ChamberCivil, ChamberCriminal, ChamberCommercial,
		ChamberLabor, ChamberFamily, ChamberAdministrative, ChamberOther:
		return true
	}
	return false
}

// ChamberLabel returns the display label for the chamber, resolving the
// OTHER variant to its free-text label.
func (h *Hearing) ChamberLabel() string {
	if h.ChamberType == ChamberOther && h.ChamberOtherLabel != "" {
		return h.ChamberOtherLabel
	}
	return h.ChamberType
}

// ColorTag returns the display color for the hearing's chamber type.
// Presentation metadata only, derived and never stored.
func (h *Hearing) ColorTag() string {
	switch h.ChamberType {
	case ChamberCivil:
		return "blue"
	case ChamberCriminal:
		return "red"
	case ChamberCommercial:
		return "green"
	case ChamberLabor:
		return "orange"
	case ChamberFamily:
		return "purple"
	case ChamberAdministrative:
		return "teal"
	default:
		return "gray"
	}
}

// IsTerminal reports whether no further status transition is permitted
// on this record. A RESCHEDULED hearing is terminal for the record
// itself; its chain continues on the successor.
func (h *Hearing) IsTerminal() bool {
	return h.Status != HearingStatusScheduled
}

// IsReschedulable checks if the hearing can be rescheduled
func (h *Hearing) IsReschedulable() bool {
	return h.Status == HearingStatusScheduled
}

// HasSuccessors reports whether the hearing has active successor records
func (h *Hearing) HasSuccessors() bool {
	return h.NbReports > 0
}
