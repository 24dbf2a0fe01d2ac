package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case is the registry record a hearing may optionally be attached to.
// The full case lifecycle lives in the case-management layer; the agenda
// only resolves and validates the reference.
type Case struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseNumber string  `gorm:"size:100;not null;uniqueIndex" json:"case_number"`
	Title      *string `json:"title,omitempty"`
	ClientName string  `gorm:"size:200" json:"client_name"`

	// Notification target for agenda changes on this case
	ClientEmail string `gorm:"size:255" json:"client_email,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}
