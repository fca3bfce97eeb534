package model

// Rubric is a structured scoring scale: named criteria, each with ordered
// levels carrying descriptive text.
type Rubric struct {
	BaseModel
	Name        string            `gorm:"size:100;not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Criteria    []RubricCriterion `gorm:"foreignKey:RubricID" json:"criteria,omitempty"`
}

func (Rubric) TableName() string {
	return "rubrics"
}

type RubricCriterion struct {
	BaseModel
	RubricID uint          `gorm:"index;not null" json:"rubricId"`
	Name     string        `gorm:"size:100;not null" json:"name"`
	Order    int           `gorm:"column:sort_order" json:"order"`
	Levels   []RubricLevel `gorm:"foreignKey:CriterionID" json:"levels,omitempty"`
}

func (RubricCriterion) TableName() string {
	return "rubric_criteria"
}

type RubricLevel struct {
	BaseModel
	CriterionID uint   `gorm:"index;not null" json:"criterionId"`
	Level       int    `gorm:"not null" json:"level"`
	Title       string `gorm:"size:100" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

func (RubricLevel) TableName() string {
	return "rubric_levels"
}

// MaxLevel returns the highest level defined for the criterion, 0 when no
// levels exist yet.
func (c *RubricCriterion) MaxLevel() int {
	max := 0
	for _, l := range c.Levels {
		if l.Level > max {
			max = l.Level
		}
	}
	return max
}
