package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/model"
	academicsModel "github.com/Tresorbana/school-sub000/internals/features/school/academics/model"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore backs the workflow with the shared GORM handle.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) SlotByID(ctx context.Context, id uuid.UUID) (*academicsModel.RosterSlotModel, error) {
	var slot academicsModel.RosterSlotModel
	err := s.db.WithContext(ctx).
		Where("roster_slot_id = ? AND roster_slot_is_active", id).
		First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *gormStore) RecordExists(ctx context.Context, rosterSlotID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Table("attendance_records").
		Where("attendance_record_roster_slot_id = ? AND attendance_record_date = ?", rosterSlotID, date).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) RequestFor(ctx context.Context, rosterSlotID uuid.UUID, date time.Time) (*model.PermissionRequestModel, error) {
	var req model.PermissionRequestModel
	err := s.db.WithContext(ctx).
		Where("permission_request_roster_slot_id = ? AND permission_request_period_date = ?", rosterSlotID, date).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *gormStore) RequestByID(ctx context.Context, id uuid.UUID) (*model.PermissionRequestModel, error) {
	var req model.PermissionRequestModel
	err := s.db.WithContext(ctx).
		Where("permission_request_id = ?", id).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *gormStore) CreateRequest(ctx context.Context, req *model.PermissionRequestModel) error {
	return s.db.WithContext(ctx).Create(req).Error
}

func (s *gormStore) SaveRequest(ctx context.Context, req *model.PermissionRequestModel) error {
	return s.db.WithContext(ctx).Save(req).Error
}

func (s *gormStore) PendingRequests(ctx context.Context, f PendingFilter) ([]model.PermissionRequestModel, error) {
	tx := s.db.WithContext(ctx).Model(&model.PermissionRequestModel{}).
		Where("permission_request_status = ?", "pending")

	if f.TeacherID != nil {
		tx = tx.Where("permission_request_teacher_id = ?", *f.TeacherID)
	}
	if f.ClassID != nil {
		tx = tx.Where("permission_request_class_id = ?", *f.ClassID)
	}
	if f.DateFrom != nil {
		tx = tx.Where("permission_request_period_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		tx = tx.Where("permission_request_period_date <= ?", *f.DateTo)
	}

	var rows []model.PermissionRequestModel
	err := tx.Order("permission_request_created_at ASC").Find(&rows).Error
	return rows, err
}
