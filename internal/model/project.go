package model

import "time"

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// Project is a time-bounded piece of group work, optionally commissioned by an
// external client (opdrachtgever).
type Project struct {
	BaseModel
	Title        string        `gorm:"size:200;not null" json:"title"`
	Description  string        `gorm:"type:text" json:"description"`
	Category     string        `gorm:"size:50;index" json:"category"`
	Status       ProjectStatus `gorm:"type:enum('draft','active','completed','archived');default:'draft'" json:"status"`
	ClientName   string        `gorm:"size:100" json:"clientName"`
	ClassGroupID uint          `gorm:"index;not null" json:"classGroupId"`
	StartDate    time.Time     `json:"startDate"`
	EndDate      time.Time     `json:"endDate"`
}

func (Project) TableName() string {
	return "projects"
}

// Filter accessors; projects filter on their start date.

func (p Project) SearchText() string     { return p.Title + " " + p.ClientName }
func (p Project) FilterStatus() string   { return string(p.Status) }
func (p Project) FilterCategory() string { return p.Category }
func (p Project) FilterDate() time.Time  { return p.StartDate }
