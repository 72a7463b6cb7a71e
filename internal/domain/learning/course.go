package learning

import (
	"time"

	"github.com/google/uuid"
)

// Creator is created implicitly the first time a course is authored under its id.
type Creator struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"createdAt"`
}

func (Creator) TableName() string { return "creator" }

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID   string    `gorm:"column:creator_id;not null;index" json:"creatorId"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"createdAt"`
}

func (Course) TableName() string { return "course" }

// Module position is unique within its course but not required to be contiguous.
type Module struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_module_course_position,priority:1" json:"courseId"`
	Title    string    `gorm:"column:title;not null" json:"title"`
	Position int32     `gorm:"column:position;not null;uniqueIndex:idx_module_course_position,priority:2" json:"position"`
}

func (Module) TableName() string { return "module" }

type Lesson struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID uuid.UUID `gorm:"type:uuid;not null;index:idx_lesson_module_position,priority:1" json:"moduleId"`
	Title    string    `gorm:"column:title;not null" json:"title"`
	Content  string    `gorm:"column:content;type:text" json:"content"`
	VideoURL *string   `gorm:"column:video_url" json:"videoUrl"`
	Position int32     `gorm:"column:position;not null;index:idx_lesson_module_position,priority:2" json:"position"`
}

func (Lesson) TableName() string { return "lesson" }

// Quiz is module scoped; a module owns at most one.
type Quiz struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"moduleId"`
}

func (Quiz) TableName() string { return "quiz" }

type Question struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID       uuid.UUID `gorm:"type:uuid;not null;index" json:"quizId"`
	QuestionText string    `gorm:"column:question_text;type:text;not null" json:"questionText"`
	Position     int32     `gorm:"column:position;not null;default:0" json:"-"`
}

func (Question) TableName() string { return "question" }

type AnswerOption struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"questionId"`
	AnswerText string    `gorm:"column:answer_text;type:text;not null" json:"answerText"`
	IsCorrect  bool      `gorm:"column:is_correct;not null;default:false" json:"isCorrect"`
	Position   int32     `gorm:"column:position;not null;default:0" json:"-"`
}

func (AnswerOption) TableName() string { return "answer_option" }
