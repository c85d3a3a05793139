// Package service is the fire-and-forget audit sink. A logging outage must
// never block the primary operation, so failures here are logged and
// swallowed.
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/features/audit/model"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// Log records who did what to which entity. Errors never propagate.
func (s *Service) Log(ctx context.Context, actor uuid.UUID, entity, entityID, action string, details map[string]interface{}) {
	row := model.AuditLogModel{
		AuditLogActorID:  actor,
		AuditLogEntity:   entity,
		AuditLogEntityID: entityID,
		AuditLogAction:   action,
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			log.Printf("[WARN] audit details marshal failed (%s %s): %v", entity, action, err)
		} else {
			row.AuditLogDetails = raw
		}
	}

	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("[WARN] audit log write failed (%s %s %s): %v", entity, entityID, action, err)
	}
}
