package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type LessonRepo interface {
	Create(dbc dbctx.Context, rows []*types.Lesson) ([]*types.Lesson, error)
	// GetByID returns (nil, nil) when the lesson does not exist.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Lesson, error)
	ListByModuleIDs(dbc dbctx.Context, moduleIDs []uuid.UUID) ([]*types.Lesson, error)
	CountByModuleID(dbc dbctx.Context, moduleID uuid.UUID) (int64, error)
	CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, log *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: log.With("repo", "LessonRepo")}
}

func (r *lessonRepo) Create(dbc dbctx.Context, rows []*types.Lesson) ([]*types.Lesson, error) {
	if len(rows) == 0 {
		return []*types.Lesson{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lessonRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Lesson, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Lesson
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *lessonRepo) ListByModuleIDs(dbc dbctx.Context, moduleIDs []uuid.UUID) ([]*types.Lesson, error) {
	out := []*types.Lesson{}
	if len(moduleIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("module_id IN ?", moduleIDs).
		Order("module_id, position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *lessonRepo) CountByModuleID(dbc dbctx.Context, moduleID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.Lesson{}).
		Where("module_id = ?", moduleID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *lessonRepo) CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.Lesson{}).
		Joins("JOIN module ON module.id = lesson.module_id").
		Where("module.course_id = ?", courseID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
