package model

import "time"

type PlanStatus string

const (
	PlanSubmitted PlanStatus = "submitted"
	PlanInReview  PlanStatus = "in_review"
	PlanApproved  PlanStatus = "approved"
	PlanRejected  PlanStatus = "rejected"
)

// ProjectPlan is a student's plan document for a project, moving through a
// teacher review lifecycle: submitted → in_review → approved | rejected.
type ProjectPlan struct {
	BaseModel
	ProjectID     uint       `gorm:"index;not null" json:"projectId"`
	StudentID     uint       `gorm:"index;not null" json:"studentId"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Summary       string     `gorm:"type:text" json:"summary"`
	AttachmentURL string     `gorm:"size:255" json:"attachmentUrl"`
	Status        PlanStatus `gorm:"type:enum('submitted','in_review','approved','rejected');default:'submitted'" json:"status"`
	ReviewedBy    *uint      `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`

	Student  *User          `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Feedback []PlanFeedback `gorm:"foreignKey:PlanID" json:"feedback,omitempty"`
}

func (ProjectPlan) TableName() string {
	return "project_plans"
}

type PlanFeedback struct {
	BaseModel
	PlanID   uint   `gorm:"index;not null" json:"planId"`
	AuthorID uint   `gorm:"not null" json:"authorId"`
	Message  string `gorm:"type:text;not null" json:"message"`
}

func (PlanFeedback) TableName() string {
	return "plan_feedback"
}
