package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Learner is created implicitly on first enrollment or completion.
type Learner struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"createdAt"`
}

func (Learner) TableName() string { return "learner" }

type Enrollment struct {
	LearnerID string    `gorm:"column:learner_id;primaryKey" json:"learnerId"`
	CourseID  uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey;index" json:"courseId"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"createdAt"`
}

func (Enrollment) TableName() string { return "learner_course_enrollment" }

// Completion facts below are keyed by their natural (learner, entity) pair and are
// never updated or deleted, except QuizCompletion which is overwritten on resubmit.

type LessonCompletion struct {
	LearnerID string    `gorm:"column:learner_id;primaryKey" json:"learnerId"`
	LessonID  uuid.UUID `gorm:"column:lesson_id;type:uuid;primaryKey;index" json:"lessonId"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"createdAt"`
}

func (LessonCompletion) TableName() string { return "lesson_completion" }

type ModuleCompletion struct {
	LearnerID string    `gorm:"column:learner_id;primaryKey" json:"learnerId"`
	ModuleID  uuid.UUID `gorm:"column:module_id;type:uuid;primaryKey;index" json:"moduleId"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"createdAt"`
}

func (ModuleCompletion) TableName() string { return "module_completion" }

type CourseCompletion struct {
	LearnerID string    `gorm:"column:learner_id;primaryKey" json:"learnerId"`
	CourseID  uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey;index" json:"courseId"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"createdAt"`
}

func (CourseCompletion) TableName() string { return "course_completion" }

type QuizCompletion struct {
	LearnerID      string         `gorm:"column:learner_id;primaryKey" json:"learnerId"`
	QuizID         uuid.UUID      `gorm:"column:quiz_id;type:uuid;primaryKey;index" json:"quizId"`
	Score          int32          `gorm:"column:score;not null" json:"score"`
	TotalQuestions int32          `gorm:"column:total_questions;not null" json:"totalQuestions"`
	Answers        datatypes.JSON `gorm:"column:answers" json:"answers,omitempty"`
	CompletedAt    time.Time      `gorm:"column:completed_at;not null" json:"completedAt"`
}

func (QuizCompletion) TableName() string { return "quiz_completion" }
