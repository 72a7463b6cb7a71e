package learning

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type CourseRepo interface {
	Create(dbc dbctx.Context, course *types.Course) (*types.Course, error)
	// GetByID returns (nil, nil) when the course does not exist.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Course, error)
	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
	// ListPreviews orders by enrollment count descending. limit <= 0 returns every course.
	ListPreviews(dbc dbctx.Context, limit int) ([]*types.CoursePreview, error)
	ListCreatedBy(dbc dbctx.Context, creatorID string) ([]*types.CreatedCourse, error)
	Count(dbc dbctx.Context) (int64, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, log *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: log.With("repo", "CourseRepo")}
}

func (r *courseRepo) Create(dbc dbctx.Context, course *types.Course) (*types.Course, error) {
	if course == nil {
		return nil, fmt.Errorf("missing course")
	}
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	if err := dbc.DB(r.db).Create(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (r *courseRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Course
	if err := dbc.DB(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *courseRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Course, error) {
	if len(ids) == 0 {
		return []*types.Course{}, nil
	}
	var out []*types.Course
	if err := dbc.DB(r.db).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) Exists(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.Course{}).
		Where("id = ?", id).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

const coursePreviewSQL = `
SELECT
	c.id AS id,
	c.title AS title,
	c.creator_id AS creator,
	(SELECT COUNT(*) FROM learner_course_enrollment e WHERE e.course_id = c.id) AS num_enrollments,
	(SELECT COUNT(*) FROM course_completion cc WHERE cc.course_id = c.id) AS num_completions,
	(SELECT COUNT(*) FROM module m WHERE m.course_id = c.id) AS num_modules
FROM course c
ORDER BY num_enrollments DESC, c.created_at ASC, c.id ASC`

func (r *courseRepo) ListPreviews(dbc dbctx.Context, limit int) ([]*types.CoursePreview, error) {
	q := coursePreviewSQL
	args := []interface{}{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	out := []*types.CoursePreview{}
	if err := dbc.DB(r.db).Raw(q, args...).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) ListCreatedBy(dbc dbctx.Context, creatorID string) ([]*types.CreatedCourse, error) {
	out := []*types.CreatedCourse{}
	if creatorID == "" {
		return out, nil
	}
	if err := dbc.DB(r.db).Raw(`
SELECT
	c.id AS course_id,
	c.title AS title,
	(SELECT COUNT(*) FROM learner_course_enrollment e WHERE e.course_id = c.id) AS num_learners,
	(SELECT COUNT(*) FROM course_completion cc WHERE cc.course_id = c.id) AS num_completed
FROM course c
WHERE c.creator_id = ?
ORDER BY c.created_at ASC, c.id ASC`, creatorID).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Course{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
