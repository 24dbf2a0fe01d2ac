package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"court_agenda_go/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// sanitizer strips any markup from free-text inputs before they reach
// the store.
var sanitizer = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(sanitizer.Sanitize(s))
}

// HearingInput carries the caller-supplied fields for creating a hearing.
// Status is never accepted from the caller: new hearings start SCHEDULED
// and all later status changes go through the transition services.
type HearingInput struct {
	CaseID            *string   `json:"case_id,omitempty"`
	DocketNumber      string    `json:"docket_number"`
	Party             string    `json:"party"`
	Title             string    `json:"title"`
	ChamberType       string    `json:"chamber_type"`
	ChamberOtherLabel string    `json:"chamber_other_label,omitempty"`
	HearingDate       time.Time `json:"hearing_date"`
	HearingTime       string    `json:"hearing_time"`
	Location          string    `json:"location"`
	Notes             string    `json:"notes,omitempty"`
}

func validateHearingTime(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return &ValidationError{Field: "hearing_time", Reason: "must use HH:MM format"}
	}
	return nil
}

func (in *HearingInput) validate() error {
	if in.DocketNumber == "" && in.Title == "" {
		return &ValidationError{Field: "docket_number", Reason: "docket reference or title is required"}
	}
	if in.ChamberType == "" {
		return &ValidationError{Field: "chamber_type", Reason: "chamber type is required"}
	}
	if !models.IsValidChamberType(in.ChamberType) {
		return &ValidationError{Field: "chamber_type", Reason: fmt.Sprintf("unknown chamber type %q", in.ChamberType)}
	}
	if in.ChamberType == models.ChamberOther && strings.TrimSpace(in.ChamberOtherLabel) == "" {
		return &ValidationError{Field: "chamber_other_label", Reason: "required when chamber type is OTHER"}
	}
	if in.HearingDate.IsZero() {
		return &ValidationError{Field: "hearing_date", Reason: "hearing date is required"}
	}
	if in.HearingTime == "" {
		return &ValidationError{Field: "hearing_time", Reason: "hearing time is required"}
	}
	return validateHearingTime(in.HearingTime)
}

// CreateHearing validates and persists a new hearing in SCHEDULED status
// and records a CREATED history entry in the same transaction.
func CreateHearing(db *gorm.DB, input HearingInput, actor Actor) (*models.Hearing, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if input.CaseID != nil && *input.CaseID != "" {
		var count int64
		if err := db.Model(&models.Case{}).Where("id = ?", *input.CaseID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrCaseNotFound
		}
	} else {
		input.CaseID = nil
	}

	hearing := &models.Hearing{
		CaseID:            input.CaseID,
		DocketNumber:      sanitize(input.DocketNumber),
		Party:             sanitize(input.Party),
		Title:             sanitize(input.Title),
		ChamberType:       input.ChamberType,
		ChamberOtherLabel: sanitize(input.ChamberOtherLabel),
		HearingDate:       truncateToDate(input.HearingDate),
		HearingTime:       input.HearingTime,
		Location:          sanitize(input.Location),
		Notes:             sanitize(input.Notes),
		Status:            models.HearingStatusScheduled,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(hearing).Error; err != nil {
			return err
		}
		return appendHistory(tx, &models.HearingHistory{
			DocketNumber: hearing.DocketNumber,
			CaseID:       hearing.CaseID,
			HearingID:    hearing.ID,
			Action:       models.HistoryActionCreated,
			Comment:      hearing.Title,
			ActorID:      actor.ID,
			ActorName:    actor.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return hearing, nil
}

// GetHearingByID fetches a single hearing with its case relationship
func GetHearingByID(db *gorm.DB, id string) (*models.Hearing, error) {
	var hearing models.Hearing
	err := db.Preload("Case").First(&hearing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHearingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &hearing, nil
}

// updatableHearingFields are the descriptive fields the generic update
// path may touch. Status is deliberately absent: status changes bypass
// this path entirely and go through the transition services.
var updatableHearingFields = map[string]bool{
	"docket_number":       true,
	"party":               true,
	"title":               true,
	"chamber_type":        true,
	"chamber_other_label": true,
	"hearing_date":        true,
	"hearing_time":        true,
	"location":            true,
	"notes":               true,
}

// UpdateHearing applies a partial update of descriptive fields and
// records an EDITED history entry carrying the old and new values of
// every changed field.
func UpdateHearing(db *gorm.DB, id string, fields map[string]interface{}, actor Actor) (*models.Hearing, error) {
	if len(fields) == 0 {
		return nil, &ValidationError{Field: "fields", Reason: "no fields to update"}
	}
	for key := range fields {
		if key == "status" {
			return nil, &ValidationError{Field: "status", Reason: "status cannot be set directly; use the complete, cancel or reschedule operations"}
		}
		if !updatableHearingFields[key] {
			return nil, &ValidationError{Field: key, Reason: "field is not editable"}
		}
	}

	if raw, ok := fields["hearing_time"]; ok {
		value, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Field: "hearing_time", Reason: "must be a string"}
		}
		if err := validateHearingTime(value); err != nil {
			return nil, err
		}
	}
	if raw, ok := fields["chamber_type"]; ok {
		value, _ := raw.(string)
		if !models.IsValidChamberType(value) {
			return nil, &ValidationError{Field: "chamber_type", Reason: fmt.Sprintf("unknown chamber type %q", value)}
		}
	}
	for _, key := range []string{"docket_number", "party", "title", "chamber_other_label", "location", "notes"} {
		if raw, ok := fields[key]; ok {
			value, ok := raw.(string)
			if !ok {
				return nil, &ValidationError{Field: key, Reason: "must be a string"}
			}
			fields[key] = sanitize(value)
		}
	}

	hearing, err := GetHearingByID(db, id)
	if err != nil {
		return nil, err
	}

	oldValues, newValues := diffHearingFields(hearing, fields)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Hearing{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		return appendHistory(tx, &models.HearingHistory{
			DocketNumber: hearing.DocketNumber,
			CaseID:       hearing.CaseID,
			HearingID:    hearing.ID,
			Action:       models.HistoryActionEdited,
			Comment:      editSummary(fields),
			ActorID:      actor.ID,
			ActorName:    actor.Name,
			OldValues:    oldValues,
			NewValues:    newValues,
		})
	})
	if err != nil {
		return nil, err
	}
	return GetHearingByID(db, id)
}

// DeleteHearing removes a hearing and records a DELETED history entry.
// A hearing with active successors is protected: the call fails with
// HasSuccessorsError unless force requests a cascading delete of the
// whole successor subtree. The guard reads the row inside the delete
// transaction, so a reschedule committing after the caller last looked
// at the hearing still blocks an unforced delete instead of being
// swept up by the cascade. History entries are never removed.
func DeleteHearing(db *gorm.DB, id string, force bool, actor Actor) error {
	return db.Transaction(func(tx *gorm.DB) error {
		hearing, err := GetHearingByID(tx, id)
		if err != nil {
			return err
		}
		if hearing.HasSuccessors() && !force {
			return &HasSuccessorsError{HearingID: hearing.ID, NbReports: hearing.NbReports}
		}
		return deleteHearingTree(tx, hearing, actor)
	})
}

// deleteHearingTree deletes a hearing and, depth-first, every successor
// below it, appending one DELETED entry per removed record.
func deleteHearingTree(tx *gorm.DB, hearing *models.Hearing, actor Actor) error {
	var successors []models.Hearing
	if err := tx.Where("predecessor_id = ?", hearing.ID).Find(&successors).Error; err != nil {
		return err
	}
	for i := range successors {
		if err := deleteHearingTree(tx, &successors[i], actor); err != nil {
			return err
		}
	}

	if hearing.PredecessorID != nil {
		err := tx.Model(&models.Hearing{}).
			Where("id = ? AND nb_reports > 0", *hearing.PredecessorID).
			UpdateColumn("nb_reports", gorm.Expr("nb_reports - 1")).Error
		if err != nil {
			return err
		}
	}

	if err := tx.Delete(&models.Hearing{}, "id = ?", hearing.ID).Error; err != nil {
		return err
	}

	return appendHistory(tx, &models.HearingHistory{
		DocketNumber: hearing.DocketNumber,
		CaseID:       hearing.CaseID,
		HearingID:    hearing.ID,
		Action:       models.HistoryActionDeleted,
		Comment:      hearing.Title,
		ActorID:      actor.ID,
		ActorName:    actor.Name,
	})
}

// diffHearingFields builds the JSON encoded old/new snapshots of the
// fields an update touches.
func diffHearingFields(hearing *models.Hearing, fields map[string]interface{}) (string, string) {
	current := map[string]interface{}{
		"docket_number":       hearing.DocketNumber,
		"party":               hearing.Party,
		"title":               hearing.Title,
		"chamber_type":        hearing.ChamberType,
		"chamber_other_label": hearing.ChamberOtherLabel,
		"hearing_date":        hearing.HearingDate,
		"hearing_time":        hearing.HearingTime,
		"location":            hearing.Location,
		"notes":               hearing.Notes,
	}

	oldMap := make(map[string]interface{}, len(fields))
	for key := range fields {
		oldMap[key] = current[key]
	}

	oldJSON, _ := json.Marshal(oldMap)
	newJSON, _ := json.Marshal(fields)
	return string(oldJSON), string(newJSON)
}

func editSummary(fields map[string]interface{}) string {
	names := make([]string, 0, len(fields))
	for key := range fields {
		names = append(names, key)
	}
	sort.Strings(names)
	return "edited: " + strings.Join(names, ", ")
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
