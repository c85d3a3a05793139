package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncidentCategory string

const (
	IncidentIllness IncidentCategory = "illness"
	IncidentInjury  IncidentCategory = "injury"
	IncidentOther   IncidentCategory = "other"
)

func (c IncidentCategory) Valid() bool {
	switch c {
	case IncidentIllness, IncidentInjury, IncidentOther:
		return true
	default:
		return false
	}
}

type HealthIncidentModel struct {
	HealthIncidentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:health_incident_id" json:"health_incident_id"`

	HealthIncidentStudentID  uuid.UUID `gorm:"type:uuid;not null;index;column:health_incident_student_id" json:"health_incident_student_id"`
	HealthIncidentReportedBy uuid.UUID `gorm:"type:uuid;not null;column:health_incident_reported_by" json:"health_incident_reported_by"`

	HealthIncidentCategory    IncidentCategory `gorm:"type:varchar(32);not null;column:health_incident_category" json:"health_incident_category"`
	HealthIncidentDescription string           `gorm:"type:text;not null;column:health_incident_description" json:"health_incident_description"`
	HealthIncidentOccurredAt  time.Time        `gorm:"type:timestamptz;not null;column:health_incident_occurred_at" json:"health_incident_occurred_at"`

	HealthIncidentResolvedAt   *time.Time `gorm:"type:timestamptz;column:health_incident_resolved_at" json:"health_incident_resolved_at,omitempty"`
	HealthIncidentResolvedNote *string    `gorm:"type:text;column:health_incident_resolved_note" json:"health_incident_resolved_note,omitempty"`

	HealthIncidentCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:health_incident_created_at" json:"health_incident_created_at"`
	HealthIncidentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:health_incident_updated_at" json:"health_incident_updated_at"`
	HealthIncidentDeletedAt gorm.DeletedAt `gorm:"column:health_incident_deleted_at;index" json:"health_incident_deleted_at,omitempty"`
}

func (HealthIncidentModel) TableName() string { return "health_incidents" }
