package progress

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

// ProgressRow is one row of the enrollment fan-out. A course with L lessons across its
// modules yields at least L rows, so module and quiz ids repeat and must be deduplicated
// by the reader.
type ProgressRow struct {
	CourseID          uuid.UUID  `gorm:"column:course_id"`
	CourseTitle       string     `gorm:"column:course_title"`
	ModuleID          *uuid.UUID `gorm:"column:module_id"`
	LessonID          *uuid.UUID `gorm:"column:lesson_id"`
	QuizID            *uuid.UUID `gorm:"column:quiz_id"`
	CompletedLessonID *uuid.UUID `gorm:"column:completed_lesson_id"`
	CompletedModuleID *uuid.UUID `gorm:"column:completed_module_id"`
	CompletedQuizID   *uuid.UUID `gorm:"column:completed_quiz_id"`
}

type ProgressRowsRepo interface {
	// ListByLearner returns the fan-out for every course the learner is enrolled in, ordered
	// by enrollment time.
	ListByLearner(dbc dbctx.Context, learnerID string) ([]*ProgressRow, error)
}

type progressRowsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRowsRepo(db *gorm.DB, log *logger.Logger) ProgressRowsRepo {
	return &progressRowsRepo{db: db, log: log.With("repo", "ProgressRowsRepo")}
}

const progressFanOutSQL = `
SELECT
	e.course_id AS course_id,
	c.title AS course_title,
	m.id AS module_id,
	l.id AS lesson_id,
	q.id AS quiz_id,
	lc.lesson_id AS completed_lesson_id,
	mc.module_id AS completed_module_id,
	qc.quiz_id AS completed_quiz_id
FROM learner_course_enrollment e
JOIN course c ON c.id = e.course_id
LEFT JOIN module m ON m.course_id = c.id
LEFT JOIN lesson l ON l.module_id = m.id
LEFT JOIN lesson_completion lc ON lc.lesson_id = l.id AND lc.learner_id = e.learner_id
LEFT JOIN module_completion mc ON mc.module_id = m.id AND mc.learner_id = e.learner_id
LEFT JOIN quiz q ON q.module_id = m.id
LEFT JOIN quiz_completion qc ON qc.quiz_id = q.id AND qc.learner_id = e.learner_id
WHERE e.learner_id = ?
ORDER BY e.created_at ASC, e.course_id ASC, m.position ASC, l.position ASC`

func (r *progressRowsRepo) ListByLearner(dbc dbctx.Context, learnerID string) ([]*ProgressRow, error) {
	out := []*ProgressRow{}
	if strings.TrimSpace(learnerID) == "" {
		return out, nil
	}
	if err := dbc.DB(r.db).Raw(progressFanOutSQL, learnerID).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
