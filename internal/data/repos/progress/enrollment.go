package progress

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	// Ensure inserts the enrollment if absent and reports whether a row was inserted.
	Ensure(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (bool, error)
	Exists(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (bool, error)
	// LockForUpdate takes a row lock on the enrollment. It requires dbc.Tx.
	LockForUpdate(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (*types.Enrollment, error)
	ListLearnerIDs(dbc dbctx.Context, courseID uuid.UUID) ([]string, error)
	CountByCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
	// ListEnrolledCourses returns module totals and completions per enrolled course.
	ListEnrolledCourses(dbc dbctx.Context, learnerID string) ([]*types.EnrolledCourse, error)
	CountAll(dbc dbctx.Context) (int64, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, log *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: log.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) Ensure(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (bool, error) {
	if err := requireKey(learnerID, courseID); err != nil {
		return false, err
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.Enrollment{LearnerID: learnerID, CourseID: courseID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *enrollmentRepo) Exists(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (bool, error) {
	if strings.TrimSpace(learnerID) == "" || courseID == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.Enrollment{}).
		Where("learner_id = ? AND course_id = ?", learnerID, courseID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *enrollmentRepo) LockForUpdate(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (*types.Enrollment, error) {
	if err := requireKey(learnerID, courseID); err != nil {
		return nil, err
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockForUpdate requires dbc.Tx")
	}
	var out types.Enrollment
	if err := dbc.Tx.WithContext(dbc.RequestContext()).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("learner_id = ? AND course_id = ?", learnerID, courseID).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *enrollmentRepo) ListLearnerIDs(dbc dbctx.Context, courseID uuid.UUID) ([]string, error) {
	out := []string{}
	if courseID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.Enrollment{}).
		Where("course_id = ?", courseID).
		Order("created_at ASC, learner_id ASC").
		Pluck("learner_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *enrollmentRepo) CountByCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	if courseID == uuid.Nil {
		return 0, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *enrollmentRepo) ListEnrolledCourses(dbc dbctx.Context, learnerID string) ([]*types.EnrolledCourse, error) {
	out := []*types.EnrolledCourse{}
	if strings.TrimSpace(learnerID) == "" {
		return out, nil
	}
	if err := dbc.DB(r.db).Raw(`
SELECT
	c.id AS course_id,
	c.title AS title,
	(SELECT COUNT(*) FROM module m WHERE m.course_id = c.id) AS total_modules,
	(SELECT COUNT(*)
		FROM module_completion mc
		JOIN module m ON m.id = mc.module_id
		WHERE m.course_id = c.id AND mc.learner_id = e.learner_id) AS completed_modules
FROM learner_course_enrollment e
JOIN course c ON c.id = e.course_id
WHERE e.learner_id = ?
ORDER BY e.created_at ASC, c.id ASC`, learnerID).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *enrollmentRepo) CountAll(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Enrollment{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func requireKey(learnerID string, id uuid.UUID) error {
	if strings.TrimSpace(learnerID) == "" {
		return fmt.Errorf("missing learner_id")
	}
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	return nil
}
