package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLogModel struct {
	AuditLogID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:audit_log_id" json:"audit_log_id"`

	AuditLogActorID  uuid.UUID `gorm:"type:uuid;not null;index;column:audit_log_actor_id" json:"audit_log_actor_id"`
	AuditLogEntity   string    `gorm:"type:varchar(64);not null;index;column:audit_log_entity" json:"audit_log_entity"`
	AuditLogEntityID string    `gorm:"type:varchar(64);not null;column:audit_log_entity_id" json:"audit_log_entity_id"`
	AuditLogAction   string    `gorm:"type:varchar(32);not null;column:audit_log_action" json:"audit_log_action"`

	AuditLogDetails datatypes.JSON `gorm:"type:jsonb;column:audit_log_details" json:"audit_log_details,omitempty"`

	AuditLogCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:audit_log_created_at" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }
