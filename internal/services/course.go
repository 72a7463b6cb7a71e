package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/data/cache"
	"github.com/yungbote/coursebridge-backend/internal/data/repos"
	types "github.com/yungbote/coursebridge-backend/internal/domain"
	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/domain/progress"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

const TopCoursesLimit = 3

type CourseService interface {
	GetCourse(dbc dbctx.Context, courseID uuid.UUID) (*types.CourseTree, error)
	GetCourseCreator(dbc dbctx.Context, courseID uuid.UUID) (string, error)
	ListCourses(dbc dbctx.Context) ([]*types.CoursePreview, error)
	TopCourses(dbc dbctx.Context, limit int) ([]*types.CoursePreview, error)
	GetUserCourses(dbc dbctx.Context, userID string) (*types.UserCourses, error)
	LearnersByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]string, error)
	NumCompleted(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
	Counts(dbc dbctx.Context) (*types.PlatformCounts, error)
}

// CacheMetrics receives course cache hits and misses. observability.Metrics satisfies it.
type CacheMetrics interface {
	IncCacheHit(name string)
	IncCacheMiss(name string)
}

type CourseServiceDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Creators  repos.CreatorRepo
	Learners  repos.LearnerRepo
	Courses   repos.CourseRepo
	Modules   repos.ModuleRepo
	Lessons   repos.LessonRepo
	Quizzes   repos.QuizRepo
	Questions repos.QuestionRepo
	Answers   repos.AnswerOptionRepo

	Enrollments       repos.EnrollmentRepo
	CourseCompletions repos.CourseCompletionRepo

	Cache   cache.CourseCache
	Metrics CacheMetrics
}

type courseService struct {
	deps CourseServiceDeps
	log  *logger.Logger
}

func NewCourseService(deps CourseServiceDeps) CourseService {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewNoopCourseCache()
	}
	return &courseService{deps: deps, log: deps.Log.With("service", "CourseService")}
}

// fanOut returns an errgroup bound to the request. Reads inside an open transaction share
// one connection, so they are serialized.
func fanOut(dbc dbctx.Context) (*errgroup.Group, dbctx.Context) {
	g, gctx := errgroup.WithContext(dbc.RequestContext())
	if dbc.Tx != nil {
		g.SetLimit(1)
	}
	return g, dbctx.Context{Ctx: gctx, Tx: dbc.Tx}
}

func (s *courseService) GetCourse(dbc dbctx.Context, courseID uuid.UUID) (*types.CourseTree, error) {
	const op = "Learning.CourseService.GetCourse"
	if courseID == uuid.Nil {
		return nil, domainagg.Invalid(op, "courseId is required")
	}

	tree, err := s.cachedTree(dbc, courseID)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		if tree, err = s.buildTree(dbc, courseID); err != nil {
			return nil, err
		}
		if tree == nil {
			return nil, domainagg.NotFound(op, "course %s not found", courseID)
		}
		if err := s.deps.Cache.Set(dbc.RequestContext(), tree); err != nil {
			s.log.Warn("Course tree cache write failed", "course_id", courseID, "error", err)
		}
	}

	g, gdbc := fanOut(dbc)
	g.Go(func() error {
		n, err := s.deps.Enrollments.CountByCourse(gdbc, courseID)
		if err != nil {
			return fmt.Errorf("count learners: %w", err)
		}
		tree.NumLearners = n
		return nil
	})
	g.Go(func() error {
		n, err := s.deps.CourseCompletions.CountByCourse(gdbc, courseID)
		if err != nil {
			return fmt.Errorf("count completions: %w", err)
		}
		tree.NumCompleted = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *courseService) cachedTree(dbc dbctx.Context, courseID uuid.UUID) (*types.CourseTree, error) {
	tree, ok, err := s.deps.Cache.Get(dbc.RequestContext(), courseID)
	if err != nil {
		// The store stays authoritative; a cache outage only costs latency.
		s.log.Warn("Course tree cache read failed", "course_id", courseID, "error", err)
		ok = false
	}
	if s.deps.Metrics != nil {
		if ok {
			s.deps.Metrics.IncCacheHit("course_tree")
		} else {
			s.deps.Metrics.IncCacheMiss("course_tree")
		}
	}
	if !ok {
		return nil, nil
	}
	return tree, nil
}

// buildTree loads the authored tree ordered by position. It returns nil when the course
// does not exist.
func (s *courseService) buildTree(dbc dbctx.Context, courseID uuid.UUID) (*types.CourseTree, error) {
	course, err := s.deps.Courses.GetByID(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return nil, nil
	}
	modules, err := s.deps.Modules.ListByCourseID(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}
	moduleIDs := make([]uuid.UUID, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	var (
		lessons   []*types.Lesson
		quizzes   []*types.Quiz
		questions []*types.Question
		answers   []*types.AnswerOption
	)
	g, gdbc := fanOut(dbc)
	g.Go(func() error {
		var err error
		if lessons, err = s.deps.Lessons.ListByModuleIDs(gdbc, moduleIDs); err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if quizzes, err = s.deps.Quizzes.ListByModuleIDs(gdbc, moduleIDs); err != nil {
			return fmt.Errorf("load quizzes: %w", err)
		}
		quizIDs := make([]uuid.UUID, 0, len(quizzes))
		for _, q := range quizzes {
			quizIDs = append(quizIDs, q.ID)
		}
		if questions, err = s.deps.Questions.ListByQuizIDs(gdbc, quizIDs); err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		questionIDs := make([]uuid.UUID, 0, len(questions))
		for _, q := range questions {
			questionIDs = append(questionIDs, q.ID)
		}
		if answers, err = s.deps.Answers.ListByQuestionIDs(gdbc, questionIDs); err != nil {
			return fmt.Errorf("load answers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assembleTree(course, modules, lessons, quizzes, questions, answers), nil
}

// assembleTree stitches flat rows into a tree. Every input slice is already in position
// order within its parent.
func assembleTree(
	course *types.Course,
	modules []*types.Module,
	lessons []*types.Lesson,
	quizzes []*types.Quiz,
	questions []*types.Question,
	answers []*types.AnswerOption,
) *types.CourseTree {
	answersByQuestion := map[uuid.UUID][]*types.AnswerOption{}
	for _, a := range answers {
		answersByQuestion[a.QuestionID] = append(answersByQuestion[a.QuestionID], a)
	}
	questionsByQuiz := map[uuid.UUID][]*types.QuestionTree{}
	for _, q := range questions {
		questionsByQuiz[q.QuizID] = append(questionsByQuiz[q.QuizID], &types.QuestionTree{
			ID:           q.ID,
			QuizID:       q.QuizID,
			QuestionText: q.QuestionText,
			Answers:      nonNil(answersByQuestion[q.ID]),
		})
	}
	quizByModule := map[uuid.UUID]*types.QuizTree{}
	for _, q := range quizzes {
		quizByModule[q.ModuleID] = &types.QuizTree{
			ID:        q.ID,
			ModuleID:  q.ModuleID,
			Questions: nonNil(questionsByQuiz[q.ID]),
		}
	}
	lessonsByModule := map[uuid.UUID][]*types.Lesson{}
	for _, l := range lessons {
		lessonsByModule[l.ModuleID] = append(lessonsByModule[l.ModuleID], l)
	}

	tree := &types.CourseTree{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		CreatorID:   course.CreatorID,
		Modules:     make([]*types.ModuleTree, 0, len(modules)),
	}
	for _, m := range modules {
		tree.Modules = append(tree.Modules, &types.ModuleTree{
			ID:       m.ID,
			CourseID: m.CourseID,
			Title:    m.Title,
			Position: m.Position,
			Lessons:  nonNil(lessonsByModule[m.ID]),
			Quiz:     quizByModule[m.ID],
		})
	}
	return tree
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func (s *courseService) GetCourseCreator(dbc dbctx.Context, courseID uuid.UUID) (string, error) {
	const op = "Learning.CourseService.GetCourseCreator"
	course, err := s.deps.Courses.GetByID(dbc, courseID)
	if err != nil {
		return "", fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return "", domainagg.NotFound(op, "course %s not found", courseID)
	}
	return course.CreatorID, nil
}

func (s *courseService) ListCourses(dbc dbctx.Context) ([]*types.CoursePreview, error) {
	out, err := s.deps.Courses.ListPreviews(dbc, 0)
	if err != nil {
		s.log.Error("ListCourses failed", "error", err)
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return out, nil
}

func (s *courseService) TopCourses(dbc dbctx.Context, limit int) ([]*types.CoursePreview, error) {
	if limit <= 0 {
		limit = TopCoursesLimit
	}
	out, err := s.deps.Courses.ListPreviews(dbc, limit)
	if err != nil {
		s.log.Error("TopCourses failed", "error", err)
		return nil, fmt.Errorf("top courses: %w", err)
	}
	return out, nil
}

func (s *courseService) GetUserCourses(dbc dbctx.Context, userID string) (*types.UserCourses, error) {
	const op = "Learning.CourseService.GetUserCourses"
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domainagg.Invalid(op, "userId is required")
	}

	out := &types.UserCourses{}
	g, gdbc := fanOut(dbc)
	g.Go(func() error {
		created, err := s.deps.Courses.ListCreatedBy(gdbc, userID)
		if err != nil {
			return fmt.Errorf("list created courses: %w", err)
		}
		out.CreatedCourses = created
		return nil
	})
	g.Go(func() error {
		enrolled, err := s.deps.Enrollments.ListEnrolledCourses(gdbc, userID)
		if err != nil {
			return fmt.Errorf("list enrolled courses: %w", err)
		}
		for _, ec := range enrolled {
			ec.ProgressPercent = progress.ModulePercent(ec.CompletedModules, ec.TotalModules)
			ec.Completed = progress.Complete(ec.TotalModules, ec.CompletedModules)
		}
		out.EnrolledCourses = enrolled
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("GetUserCourses failed", "user_id", userID, "error", err)
		return nil, err
	}
	out.CreatedCourses = nonNil(out.CreatedCourses)
	out.EnrolledCourses = nonNil(out.EnrolledCourses)
	return out, nil
}

func (s *courseService) LearnersByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]string, error) {
	ids, err := s.deps.Enrollments.ListLearnerIDs(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	return nonNil(ids), nil
}

func (s *courseService) NumCompleted(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	n, err := s.deps.CourseCompletions.CountByCourse(dbc, courseID)
	if err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return n, nil
}

func (s *courseService) Counts(dbc dbctx.Context) (*types.PlatformCounts, error) {
	out := &types.PlatformCounts{}
	g, gdbc := fanOut(dbc)
	g.Go(func() error {
		n, err := s.deps.Courses.Count(gdbc)
		out.NumCourses = n
		return err
	})
	g.Go(func() error {
		n, err := s.deps.Learners.Count(gdbc)
		out.NumLearners = n
		return err
	})
	g.Go(func() error {
		n, err := s.deps.Creators.Count(gdbc)
		out.NumCreators = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("platform counts: %w", err)
	}
	return out, nil
}
