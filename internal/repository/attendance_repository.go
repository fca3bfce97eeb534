package repository

import (
	"context"
	"schoolscan_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, event *model.AttendanceEvent) error {
	return r.DB.WithContext(ctx).Create(event).Error
}

// BulkCreate records a whole class block in one transaction.
func (r *AttendanceRepository) BulkCreate(ctx context.Context, events []model.AttendanceEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&events).Error
	})
}

func (r *AttendanceRepository) FindByStudent(ctx context.Context, studentID uint) ([]model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	err := r.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC, block").
		Find(&events).Error
	return events, err
}

func (r *AttendanceRepository) FindByGroupAndDate(ctx context.Context, groupID uint, date time.Time) ([]model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	err := r.DB.WithContext(ctx).
		Preload("Student").
		Joins("JOIN users ON users.id = attendance_events.student_id").
		Where("users.class_group_id = ? AND attendance_events.date >= ? AND attendance_events.date < ?",
			groupID, dayStart, dayStart.AddDate(0, 0, 1)).
		Order("users.name, attendance_events.block").
		Find(&events).Error
	return events, err
}

func (r *AttendanceRepository) FindByGroup(ctx context.Context, groupID uint) ([]model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	err := r.DB.WithContext(ctx).
		Preload("Student").
		Joins("JOIN users ON users.id = attendance_events.student_id").
		Where("users.class_group_id = ?", groupID).
		Order("attendance_events.date, users.name").
		Find(&events).Error
	return events, err
}

// CountsForStudent aggregates the attendance rate numerator and denominator
// in SQL. Present and late count as attended.
func (r *AttendanceRepository) CountsForStudent(ctx context.Context, studentID uint, from, to time.Time) (model.AttendanceCounts, error) {
	var counts model.AttendanceCounts
	err := r.DB.WithContext(ctx).Model(&model.AttendanceEvent{}).
		Select("COUNT(*) AS total, SUM(CASE WHEN status IN ('present','late') THEN 1 ELSE 0 END) AS attended").
		Where("student_id = ? AND date >= ? AND date < ?", studentID, from, to).
		Scan(&counts).Error
	return counts, err
}

func (r *AttendanceRepository) CountsForGroup(ctx context.Context, groupID uint, from, to time.Time) (model.AttendanceCounts, error) {
	var counts model.AttendanceCounts
	err := r.DB.WithContext(ctx).Model(&model.AttendanceEvent{}).
		Select("COUNT(*) AS total, SUM(CASE WHEN attendance_events.status IN ('present','late') THEN 1 ELSE 0 END) AS attended").
		Joins("JOIN users ON users.id = attendance_events.student_id").
		Where("users.class_group_id = ? AND attendance_events.date >= ? AND attendance_events.date < ?", groupID, from, to).
		Scan(&counts).Error
	return counts, err
}
