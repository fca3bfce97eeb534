package model

// ClassGroup is a cohort of students mentored by a teacher. Students belong to
// exactly one group; a teacher can mentor several.
type ClassGroup struct {
	BaseModel
	Name       string `gorm:"size:100;not null" json:"name"`
	SchoolYear string `gorm:"size:20" json:"schoolYear"`
	MentorID   uint   `gorm:"index" json:"mentorId"`
	Students   []User `gorm:"foreignKey:ClassGroupID" json:"students,omitempty"`
}

func (ClassGroup) TableName() string {
	return "class_groups"
}
