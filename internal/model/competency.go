package model

import "time"

// CompetencyCategory is one of the four OMZA rubric categories.
type CompetencyCategory string

const (
	Organiseren    CompetencyCategory = "organiseren"
	Meedoen        CompetencyCategory = "meedoen"
	Zelfvertrouwen CompetencyCategory = "zelfvertrouwen"
	Autonomie      CompetencyCategory = "autonomie"
)

// Categories lists the OMZA categories in rubric order.
var Categories = []CompetencyCategory{Organiseren, Meedoen, Zelfvertrouwen, Autonomie}

type WindowState string

const (
	WindowScheduled WindowState = "scheduled"
	WindowOpen      WindowState = "open"
	WindowClosed    WindowState = "closed"
)

// CompetencyWindow is a time-bounded period during which competency scans are
// collected for a class group. At most one window per group is open at a time.
type CompetencyWindow struct {
	BaseModel
	ClassGroupID uint      `gorm:"index;not null" json:"classGroupId"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Closed       bool      `gorm:"default:false" json:"closed"`
}

func (CompetencyWindow) TableName() string {
	return "competency_windows"
}

// State derives the window lifecycle state at a given instant. An explicitly
// closed window is closed regardless of its end date.
func (w *CompetencyWindow) State(now time.Time) WindowState {
	if w.Closed || now.After(w.EndDate) {
		return WindowClosed
	}
	if now.Before(w.StartDate) {
		return WindowScheduled
	}
	return WindowOpen
}

type ScoreKind string

const (
	ScoreSelf     ScoreKind = "self"
	ScorePeer     ScoreKind = "peer"
	ScoreTeacher  ScoreKind = "teacher"
	ScoreExternal ScoreKind = "external"
)

// CompetencyScore is a single 1–5 observation of one category for one student
// within a window, by the student themself or an outside evaluator.
type CompetencyScore struct {
	BaseModel
	WindowID  uint               `gorm:"index;not null;uniqueIndex:uniq_score" json:"windowId"`
	StudentID uint               `gorm:"index;not null;uniqueIndex:uniq_score" json:"studentId"`
	RaterID   uint               `gorm:"uniqueIndex:uniq_score" json:"raterId"`
	Category  CompetencyCategory `gorm:"size:20;not null;uniqueIndex:uniq_score" json:"category"`
	Kind      ScoreKind          `gorm:"type:enum('self','peer','teacher','external');uniqueIndex:uniq_score" json:"kind"`
	Score     int                `gorm:"not null" json:"score"`
	Note      string             `gorm:"type:text" json:"note"`
}

func (CompetencyScore) TableName() string {
	return "competency_scores"
}
