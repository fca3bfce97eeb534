package model

import "time"

type EvaluationStatus string

const (
	EvaluationPending   EvaluationStatus = "pending"
	EvaluationSubmitted EvaluationStatus = "submitted"
)

// PeerEvaluation carries one evaluator's OMZA scores for one subject within a
// project. Raw scores are 0–100; the UI shows them rescaled to 0–10.
type PeerEvaluation struct {
	BaseModel
	ProjectID      uint             `gorm:"index;not null" json:"projectId"`
	EvaluatorID    uint             `gorm:"index;not null" json:"evaluatorId"`
	SubjectID      uint             `gorm:"index;not null" json:"subjectId"`
	Organiseren    int              `json:"organiseren"`
	Meedoen        int              `json:"meedoen"`
	Zelfvertrouwen int              `json:"zelfvertrouwen"`
	Autonomie      int              `json:"autonomie"`
	Feedback       string           `gorm:"type:text" json:"feedback"`
	Status         EvaluationStatus `gorm:"type:enum('pending','submitted');default:'pending'" json:"status"`
	SubmittedAt    *time.Time       `json:"submittedAt,omitempty"`

	Evaluator *User `gorm:"foreignKey:EvaluatorID" json:"evaluator,omitempty"`
	Subject   *User `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (PeerEvaluation) TableName() string {
	return "peer_evaluations"
}

// CategoryScores returns the raw 0–100 scores keyed by OMZA category, in the
// fixed rubric order.
func (e *PeerEvaluation) CategoryScores() map[CompetencyCategory]int {
	return map[CompetencyCategory]int{
		Organiseren:    e.Organiseren,
		Meedoen:        e.Meedoen,
		Zelfvertrouwen: e.Zelfvertrouwen,
		Autonomie:      e.Autonomie,
	}
}

// AverageRaw is the unweighted mean of the four raw category scores.
func (e *PeerEvaluation) AverageRaw() float64 {
	return float64(e.Organiseren+e.Meedoen+e.Zelfvertrouwen+e.Autonomie) / 4
}
