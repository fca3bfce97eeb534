package model

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

// AttendanceEvent is one presence record for a student on a given date and
// lesson block.
type AttendanceEvent struct {
	BaseModel
	StudentID  uint             `gorm:"index;not null;uniqueIndex:uniq_attendance" json:"studentId"`
	Date       time.Time        `gorm:"uniqueIndex:uniq_attendance" json:"date"`
	Block      string           `gorm:"size:50;uniqueIndex:uniq_attendance" json:"block"`
	Status     AttendanceStatus `gorm:"type:enum('present','late','absent','excused');not null" json:"status"`
	Note       string           `gorm:"size:255" json:"note"`
	RecordedBy uint             `json:"recordedBy"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (AttendanceEvent) TableName() string {
	return "attendance_events"
}

// Attended reports whether the status counts toward the attendance rate.
// Late arrivals still count as attended; excused absences do not.
func (e *AttendanceEvent) Attended() bool {
	return e.Status == AttendancePresent || e.Status == AttendanceLate
}

// Filter accessors; attendance filters on the event date and uses the note as
// its searchable text.

func (e AttendanceEvent) SearchText() string     { return e.Block + " " + e.Note }
func (e AttendanceEvent) FilterStatus() string   { return string(e.Status) }
func (e AttendanceEvent) FilterCategory() string { return e.Block }
func (e AttendanceEvent) FilterDate() time.Time  { return e.Date }
