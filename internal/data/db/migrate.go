package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

// Service is the storage handle the app wires into repos.
type Service interface {
	DB() *gorm.DB
	AutoMigrateAll() error
	Close() error
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(domain.AllModels()...)
}

// EnsureProgressIndexes adds the read-path indexes gorm tags do not express. Natural-key
// uniqueness of enrollment and completion facts comes from their composite primary keys.
func EnsureProgressIndexes(db *gorm.DB) error {
	// Ordered tree reads.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_question_quiz_position
		ON question (quiz_id, position);
	`).Error; err != nil {
		return fmt.Errorf("create idx_question_quiz_position: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_answer_option_question_position
		ON answer_option (question_id, position);
	`).Error; err != nil {
		return fmt.Errorf("create idx_answer_option_question_position: %w", err)
	}

	// Course listings count enrollments and completions per course.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_enrollment_course_learner
		ON learner_course_enrollment (course_id, learner_id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_enrollment_course_learner: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_course_completion_course_learner
		ON course_completion (course_id, learner_id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_course_completion_course_learner: %w", err)
	}

	return nil
}

// RequireTables fails when any persisted model has no table.
func RequireTables(db *gorm.DB) error {
	m := db.Migrator()
	for _, model := range domain.AllModels() {
		if !m.HasTable(model) {
			stmt := &gorm.Statement{DB: db}
			name := fmt.Sprintf("%T", model)
			if err := stmt.Parse(model); err == nil {
				name = stmt.Schema.Table
			}
			return fmt.Errorf("required table %s is missing", name)
		}
	}
	return nil
}

func migrate(db *gorm.DB, log *logger.Logger) error {
	log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(db); err != nil {
		log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureProgressIndexes(db); err != nil {
		log.Error("Progress index migration failed", "error", err)
		return err
	}
	if err := RequireTables(db); err != nil {
		log.Error("Schema check failed", "error", err)
		return err
	}
	return nil
}
