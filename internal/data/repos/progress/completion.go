package progress

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

// Lesson, module and course completions are insert-only facts. Create never fails on a
// duplicate and reports whether the row is new.

type LessonCompletionRepo interface {
	Create(dbc dbctx.Context, learnerID string, lessonID uuid.UUID) (bool, error)
	CountByModule(dbc dbctx.Context, learnerID string, moduleID uuid.UUID) (int64, error)
	ListLessonIDsByCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) ([]uuid.UUID, error)
}

type lessonCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonCompletionRepo(db *gorm.DB, log *logger.Logger) LessonCompletionRepo {
	return &lessonCompletionRepo{db: db, log: log.With("repo", "LessonCompletionRepo")}
}

func (r *lessonCompletionRepo) Create(dbc dbctx.Context, learnerID string, lessonID uuid.UUID) (bool, error) {
	if err := requireKey(learnerID, lessonID); err != nil {
		return false, err
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.LessonCompletion{LearnerID: learnerID, LessonID: lessonID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *lessonCompletionRepo) CountByModule(dbc dbctx.Context, learnerID string, moduleID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.LessonCompletion{}).
		Joins("JOIN lesson ON lesson.id = lesson_completion.lesson_id").
		Where("lesson_completion.learner_id = ? AND lesson.module_id = ?", learnerID, moduleID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *lessonCompletionRepo) ListLessonIDsByCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if strings.TrimSpace(learnerID) == "" || courseID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.LessonCompletion{}).
		Joins("JOIN lesson ON lesson.id = lesson_completion.lesson_id").
		Joins("JOIN module ON module.id = lesson.module_id").
		Where("lesson_completion.learner_id = ? AND module.course_id = ?", learnerID, courseID).
		Order("module.position ASC, lesson.position ASC").
		Pluck("lesson_completion.lesson_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type ModuleCompletionRepo interface {
	Create(dbc dbctx.Context, learnerID string, moduleID uuid.UUID) (bool, error)
	CountByCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (int64, error)
	ListModuleIDsByCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) ([]uuid.UUID, error)
}

type moduleCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleCompletionRepo(db *gorm.DB, log *logger.Logger) ModuleCompletionRepo {
	return &moduleCompletionRepo{db: db, log: log.With("repo", "ModuleCompletionRepo")}
}

func (r *moduleCompletionRepo) Create(dbc dbctx.Context, learnerID string, moduleID uuid.UUID) (bool, error) {
	if err := requireKey(learnerID, moduleID); err != nil {
		return false, err
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.ModuleCompletion{LearnerID: learnerID, ModuleID: moduleID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *moduleCompletionRepo) CountByCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.ModuleCompletion{}).
		Joins("JOIN module ON module.id = module_completion.module_id").
		Where("module_completion.learner_id = ? AND module.course_id = ?", learnerID, courseID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *moduleCompletionRepo) ListModuleIDsByCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if strings.TrimSpace(learnerID) == "" || courseID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.ModuleCompletion{}).
		Joins("JOIN module ON module.id = module_completion.module_id").
		Where("module_completion.learner_id = ? AND module.course_id = ?", learnerID, courseID).
		Order("module.position ASC").
		Pluck("module_completion.module_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type CourseCompletionRepo interface {
	Create(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (bool, error)
	CountByCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
}

type courseCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseCompletionRepo(db *gorm.DB, log *logger.Logger) CourseCompletionRepo {
	return &courseCompletionRepo{db: db, log: log.With("repo", "CourseCompletionRepo")}
}

func (r *courseCompletionRepo) Create(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (bool, error) {
	if err := requireKey(learnerID, courseID); err != nil {
		return false, err
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.CourseCompletion{LearnerID: learnerID, CourseID: courseID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *courseCompletionRepo) CountByCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.CourseCompletion{}).
		Where("course_id = ?", courseID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
