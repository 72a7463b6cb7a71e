package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/data/repos"
	types "github.com/yungbote/coursebridge-backend/internal/domain"
	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/domain/progress"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

// ProgressService is the read side of the completion engine. Every figure it reports
// goes through the rules in domain/progress.
type ProgressService interface {
	GetCourseProgress(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (*types.CourseProgress, error)
	GetProgressPercentage(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (int, error)
	GetAllCourseProgress(dbc dbctx.Context, learnerID string) ([]*types.CourseProgress, error)
	GetCompletedLessonIDs(dbc dbctx.Context, learnerID string, courseID uuid.UUID) ([]uuid.UUID, error)
	IsEnrolled(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (bool, error)
}

type ProgressServiceDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Courses           repos.CourseRepo
	Modules           repos.ModuleRepo
	Lessons           repos.LessonRepo
	Enrollments       repos.EnrollmentRepo
	LessonCompletions repos.LessonCompletionRepo
	ModuleCompletions repos.ModuleCompletionRepo
	QuizCompletions   repos.QuizCompletionRepo
	Rows              repos.ProgressRowsRepo
}

type progressService struct {
	deps ProgressServiceDeps
	log  *logger.Logger
}

func NewProgressService(deps ProgressServiceDeps) ProgressService {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return &progressService{deps: deps, log: deps.Log.With("service", "ProgressService")}
}

func requireLearnerCourse(op, learnerID string, courseID uuid.UUID) error {
	if strings.TrimSpace(learnerID) == "" {
		return domainagg.Invalid(op, "learnerId is required")
	}
	if courseID == uuid.Nil {
		return domainagg.Invalid(op, "courseId is required")
	}
	return nil
}

func (s *progressService) GetCourseProgress(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (*types.CourseProgress, error) {
	out, _, err := s.courseProgress(dbc, "Learning.ProgressService.GetCourseProgress", learnerID, courseID)
	return out, err
}

func (s *progressService) GetProgressPercentage(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (int, error) {
	_, counts, err := s.courseProgress(dbc, "Learning.ProgressService.GetProgressPercentage", learnerID, courseID)
	if err != nil {
		return 0, err
	}
	return progress.PercentInt(counts), nil
}

// courseProgress reads one learner's course summary from a single snapshot.
func (s *progressService) courseProgress(dbc dbctx.Context, op, learnerID string, courseID uuid.UUID) (*types.CourseProgress, progress.Counts, error) {
	var counts progress.Counts
	learnerID = strings.TrimSpace(learnerID)
	if err := requireLearnerCourse(op, learnerID, courseID); err != nil {
		return nil, counts, err
	}

	var out *types.CourseProgress
	read := func(dbc dbctx.Context) error {
		ok, err := s.deps.Courses.Exists(dbc, courseID)
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}
		if !ok {
			return domainagg.NotFound(op, "course %s not found", courseID)
		}
		if ok, err = s.deps.Enrollments.Exists(dbc, learnerID, courseID); err != nil {
			return fmt.Errorf("load enrollment: %w", err)
		}
		if !ok {
			return domainagg.NotFound(op, "learner is not enrolled in course %s", courseID)
		}

		if counts.TotalLessons, err = s.deps.Lessons.CountByCourseID(dbc, courseID); err != nil {
			return fmt.Errorf("count lessons: %w", err)
		}
		if counts.TotalModules, err = s.deps.Modules.CountByCourseID(dbc, courseID); err != nil {
			return fmt.Errorf("count modules: %w", err)
		}
		lessonIDs, err := s.deps.LessonCompletions.ListLessonIDsByCourse(dbc, learnerID, courseID)
		if err != nil {
			return fmt.Errorf("list completed lessons: %w", err)
		}
		moduleIDs, err := s.deps.ModuleCompletions.ListModuleIDsByCourse(dbc, learnerID, courseID)
		if err != nil {
			return fmt.Errorf("list completed modules: %w", err)
		}
		quizIDs, err := s.deps.QuizCompletions.ListQuizIDsByCourse(dbc, learnerID, courseID)
		if err != nil {
			return fmt.Errorf("list completed quizzes: %w", err)
		}
		counts.CompletedLessons = int64(len(lessonIDs))
		counts.CompletedModules = int64(len(moduleIDs))

		out = &types.CourseProgress{
			CourseID:           courseID,
			CompletedLessonIDs: nonNil(lessonIDs),
			CompletedQuizIDs:   nonNil(quizIDs),
			CompletedModuleIDs: nonNil(moduleIDs),
			ProgressPercent:    progress.Percent(counts),
			CourseCompleted:    counts.CourseComplete(),
		}
		return nil
	}

	if dbc.Tx != nil || s.deps.DB == nil {
		err := read(dbc)
		return out, counts, err
	}
	err := s.deps.DB.WithContext(dbc.RequestContext()).Transaction(func(tx *gorm.DB) error {
		return read(dbctx.Context{Ctx: dbc.Ctx, Tx: tx})
	})
	return out, counts, err
}

// courseAccumulator folds fan-out rows for one course. Ids are kept in first-seen order,
// which is position order because of the query's ORDER BY.
type courseAccumulator struct {
	summary *types.CourseProgress

	lessons          map[uuid.UUID]struct{}
	modules          map[uuid.UUID]struct{}
	completedLessons map[uuid.UUID]struct{}
	completedModules map[uuid.UUID]struct{}
	completedQuizzes map[uuid.UUID]struct{}
}

func newCourseAccumulator(row *repos.ProgressRow) *courseAccumulator {
	return &courseAccumulator{
		summary: &types.CourseProgress{
			CourseID:           row.CourseID,
			CourseTitle:        row.CourseTitle,
			CompletedLessonIDs: []uuid.UUID{},
			CompletedQuizIDs:   []uuid.UUID{},
			CompletedModuleIDs: []uuid.UUID{},
		},
		lessons:          map[uuid.UUID]struct{}{},
		modules:          map[uuid.UUID]struct{}{},
		completedLessons: map[uuid.UUID]struct{}{},
		completedModules: map[uuid.UUID]struct{}{},
		completedQuizzes: map[uuid.UUID]struct{}{},
	}
}

func addOnce(seen map[uuid.UUID]struct{}, id *uuid.UUID, list *[]uuid.UUID) {
	if id == nil || *id == uuid.Nil {
		return
	}
	if _, ok := seen[*id]; ok {
		return
	}
	seen[*id] = struct{}{}
	if list != nil {
		*list = append(*list, *id)
	}
}

func (a *courseAccumulator) add(row *repos.ProgressRow) {
	addOnce(a.modules, row.ModuleID, nil)
	addOnce(a.lessons, row.LessonID, nil)
	addOnce(a.completedLessons, row.CompletedLessonID, &a.summary.CompletedLessonIDs)
	addOnce(a.completedModules, row.CompletedModuleID, &a.summary.CompletedModuleIDs)
	addOnce(a.completedQuizzes, row.CompletedQuizID, &a.summary.CompletedQuizIDs)
}

func (a *courseAccumulator) finish() *types.CourseProgress {
	counts := progress.Counts{
		TotalLessons:     int64(len(a.lessons)),
		CompletedLessons: int64(len(a.completedLessons)),
		TotalModules:     int64(len(a.modules)),
		CompletedModules: int64(len(a.completedModules)),
	}
	a.summary.ProgressPercent = progress.Percent(counts)
	a.summary.CourseCompleted = counts.CourseComplete()
	return a.summary
}

func (s *progressService) GetAllCourseProgress(dbc dbctx.Context, learnerID string) ([]*types.CourseProgress, error) {
	const op = "Learning.ProgressService.GetAllCourseProgress"
	learnerID = strings.TrimSpace(learnerID)
	if learnerID == "" {
		return nil, domainagg.Invalid(op, "learnerId is required")
	}
	rows, err := s.deps.Rows.ListByLearner(dbc, learnerID)
	if err != nil {
		s.log.Error("GetAllCourseProgress failed", "learner_id", learnerID, "error", err)
		return nil, fmt.Errorf("list progress rows: %w", err)
	}

	order := []uuid.UUID{}
	byCourse := map[uuid.UUID]*courseAccumulator{}
	for _, row := range rows {
		if row == nil {
			continue
		}
		acc, ok := byCourse[row.CourseID]
		if !ok {
			acc = newCourseAccumulator(row)
			byCourse[row.CourseID] = acc
			order = append(order, row.CourseID)
		}
		acc.add(row)
	}

	out := make([]*types.CourseProgress, 0, len(order))
	for _, id := range order {
		out = append(out, byCourse[id].finish())
	}
	return out, nil
}

func (s *progressService) GetCompletedLessonIDs(dbc dbctx.Context, learnerID string, courseID uuid.UUID) ([]uuid.UUID, error) {
	learnerID = strings.TrimSpace(learnerID)
	if err := requireLearnerCourse("Learning.ProgressService.GetCompletedLessonIDs", learnerID, courseID); err != nil {
		return nil, err
	}
	ids, err := s.deps.LessonCompletions.ListLessonIDsByCourse(dbc, learnerID, courseID)
	if err != nil {
		return nil, fmt.Errorf("list completed lessons: %w", err)
	}
	return nonNil(ids), nil
}

func (s *progressService) IsEnrolled(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (bool, error) {
	learnerID = strings.TrimSpace(learnerID)
	if err := requireLearnerCourse("Learning.ProgressService.IsEnrolled", learnerID, courseID); err != nil {
		return false, err
	}
	ok, err := s.deps.Enrollments.Exists(dbc, learnerID, courseID)
	if err != nil {
		return false, fmt.Errorf("load enrollment: %w", err)
	}
	return ok, nil
}
