package model

import "time"

type AssessmentKind string

const (
	AssessmentSelf     AssessmentKind = "self"
	AssessmentTeacher  AssessmentKind = "teacher"
	AssessmentExternal AssessmentKind = "external"
)

// ProjectAssessment is one rubric-based scoring of a student's project work,
// submitted by the student themself, the teacher, or an external assessor
// such as the project client.
type ProjectAssessment struct {
	BaseModel
	ProjectID    uint           `gorm:"index;not null" json:"projectId"`
	StudentID    uint           `gorm:"index;not null" json:"studentId"`
	RubricID     uint           `gorm:"index;not null" json:"rubricId"`
	Kind         AssessmentKind `gorm:"type:enum('self','teacher','external');not null" json:"kind"`
	AssessorID   *uint          `json:"assessorId,omitempty"`
	AssessorName string         `gorm:"size:100" json:"assessorName"`
	Comment      string         `gorm:"type:text" json:"comment"`
	SubmittedAt  time.Time      `json:"submittedAt"`

	Scores []AssessmentScore `gorm:"foreignKey:AssessmentID" json:"scores,omitempty"`
	Rubric *Rubric           `gorm:"foreignKey:RubricID" json:"rubric,omitempty"`
}

func (ProjectAssessment) TableName() string {
	return "project_assessments"
}

type AssessmentScore struct {
	BaseModel
	AssessmentID uint `gorm:"index;not null" json:"assessmentId"`
	CriterionID  uint `gorm:"index;not null" json:"criterionId"`
	Level        int  `gorm:"not null" json:"level"`
}

func (AssessmentScore) TableName() string {
	return "assessment_scores"
}

// AverageLevel is the unweighted mean of the chosen levels, 0 when no scores
// were recorded.
func (a *ProjectAssessment) AverageLevel() float64 {
	if len(a.Scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range a.Scores {
		sum += s.Level
	}
	return float64(sum) / float64(len(a.Scores))
}
