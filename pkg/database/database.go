package database

import (
	"fmt"
	"log"
	"schoolscan_backend/internal/config"
	"schoolscan_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate runs the schema migrations and seeds baseline data. Callers decide
// when it runs; a --migrate-only invocation runs it and exits.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.ClassGroup{},
		&model.Project{},
		&model.PeerEvaluation{},
		&model.CompetencyWindow{},
		&model.CompetencyScore{},
		&model.Rubric{},
		&model.RubricCriterion{},
		&model.RubricLevel{},
		&model.ProjectAssessment{},
		&model.AssessmentScore{},
		&model.AttendanceEvent{},
		&model.ProjectPlan{},
		&model.PlanFeedback{},
	)

	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	seedDefaultRubric(db)

	return nil
}

// seedDefaultRubric inserts the OMZA rubric when the rubric table is empty so
// a fresh install can score evaluations immediately.
func seedDefaultRubric(db *gorm.DB) {
	var count int64
	db.Model(&model.Rubric{}).Count(&count)
	if count > 0 {
		return
	}

	rubric := model.Rubric{
		Name:        "OMZA",
		Description: "Vier-categorie competentierubric: Organiseren, Meedoen, Zelfvertrouwen, Autonomie.",
	}
	if err := db.Create(&rubric).Error; err != nil {
		return
	}

	criteria := []struct {
		name  string
		order int
	}{
		{"Organiseren", 1},
		{"Meedoen", 2},
		{"Zelfvertrouwen", 3},
		{"Autonomie", 4},
	}

	levelTitles := map[int]string{
		1: "Startend",
		2: "Ontwikkelend",
		3: "Op niveau",
		4: "Gevorderd",
		5: "Uitmuntend",
	}

	for _, c := range criteria {
		criterion := model.RubricCriterion{
			RubricID: rubric.ID,
			Name:     c.name,
			Order:    c.order,
		}
		if err := db.Create(&criterion).Error; err != nil {
			continue
		}
		for level := 1; level <= 5; level++ {
			db.Create(&model.RubricLevel{
				CriterionID: criterion.ID,
				Level:       level,
				Title:       levelTitles[level],
			})
		}
	}
}
