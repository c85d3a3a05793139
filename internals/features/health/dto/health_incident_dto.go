package dto

import (
	"github.com/google/uuid"
)

type CreateHealthIncidentDTO struct {
	StudentID   uuid.UUID `json:"student_id" validate:"required"`
	Category    string    `json:"category" validate:"required,oneof=illness injury other"`
	Description string    `json:"description" validate:"required,max=2000"`
	OccurredAt  *string   `json:"occurred_at" validate:"omitempty"`
}

type ResolveHealthIncidentDTO struct {
	Note *string `json:"note" validate:"omitempty,max=2000"`
}
