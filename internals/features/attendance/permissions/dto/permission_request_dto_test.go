package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validCreate() CreatePermissionRequestDTO {
	return CreatePermissionRequestDTO{
		RosterID:   uuid.New(),
		ClassID:    uuid.New(),
		PeriodDate: "2026-01-05",
		Reason:     "forgot",
	}
}

func TestCreatePermissionRequestValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(validCreate()))

	bad := validCreate()
	bad.Reason = "overslept"
	assert.Error(t, v.Struct(bad), "reason outside the category enum")

	bad = validCreate()
	bad.PeriodDate = "05-01-2026"
	assert.Error(t, v.Struct(bad), "date must be YYYY-MM-DD")

	bad = validCreate()
	bad.RosterID = uuid.Nil
	assert.Error(t, v.Struct(bad), "roster id required")
}
