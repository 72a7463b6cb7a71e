package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/coursebridge-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/coursebridge-backend/internal/data/repos"
	repotest "github.com/yungbote/coursebridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursebridge-backend/internal/domain"
	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
)

// env wires real repos, aggregates and services over one test database.
type env struct {
	db    *gorm.DB
	hooks *aggtest.HooksRecorder

	authoring  domainagg.AuthoringAggregate
	enrollment domainagg.EnrollmentAggregate
	completion domainagg.CompletionAggregate

	courses  CourseService
	progress ProgressService

	cache   *memoryCourseCache
	metrics *cacheCounter
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := repotest.DB(t)
	log := repotest.Logger(t)
	hooks := &aggtest.HooksRecorder{}
	base := aggregates.BaseDeps{DB: db, Log: log, Hooks: hooks}

	creators := repos.NewCreatorRepo(db, log)
	learners := repos.NewLearnerRepo(db, log)
	courses := repos.NewCourseRepo(db, log)
	modules := repos.NewModuleRepo(db, log)
	lessons := repos.NewLessonRepo(db, log)
	quizzes := repos.NewQuizRepo(db, log)
	questions := repos.NewQuestionRepo(db, log)
	answers := repos.NewAnswerOptionRepo(db, log)
	enrollments := repos.NewEnrollmentRepo(db, log)
	lessonDone := repos.NewLessonCompletionRepo(db, log)
	moduleDone := repos.NewModuleCompletionRepo(db, log)
	courseDone := repos.NewCourseCompletionRepo(db, log)
	quizDone := repos.NewQuizCompletionRepo(db, log)

	e := &env{
		db:      db,
		hooks:   hooks,
		cache:   newMemoryCourseCache(),
		metrics: &cacheCounter{},
	}
	e.authoring = aggregates.NewAuthoringAggregate(aggregates.AuthoringAggregateDeps{
		Base: base, Creators: creators, Courses: courses, Modules: modules, Lessons: lessons,
		Quizzes: quizzes, Questions: questions, Answers: answers,
	})
	e.enrollment = aggregates.NewEnrollmentAggregate(aggregates.EnrollmentAggregateDeps{
		Base: base, Learners: learners, Courses: courses, Enrollments: enrollments,
	})
	e.completion = aggregates.NewCompletionAggregate(aggregates.CompletionAggregateDeps{
		Base: base, Learners: learners, Courses: courses, Modules: modules, Lessons: lessons,
		Quizzes: quizzes, Enrollments: enrollments, LessonCompletions: lessonDone,
		ModuleCompletions: moduleDone, CourseCompletions: courseDone, QuizCompletions: quizDone,
	})
	e.courses = NewCourseService(CourseServiceDeps{
		DB: db, Log: log, Creators: creators, Learners: learners, Courses: courses,
		Modules: modules, Lessons: lessons, Quizzes: quizzes, Questions: questions, Answers: answers,
		Enrollments: enrollments, CourseCompletions: courseDone, Cache: e.cache, Metrics: e.metrics,
	})
	e.progress = NewProgressService(ProgressServiceDeps{
		DB: db, Log: log, Courses: courses, Modules: modules, Lessons: lessons,
		Enrollments: enrollments, LessonCompletions: lessonDone, ModuleCompletions: moduleDone,
		QuizCompletions: quizDone, Rows: repos.NewProgressRowsRepo(db, log),
	})
	return e
}

func dbc() dbctx.Context { return dbctx.New(context.Background()) }

type authored struct {
	CourseID uuid.UUID
	Modules  []uuid.UUID
	Lessons  [][]uuid.UUID
	Quizzes  []uuid.UUID
}

// author creates a course with one module per entry of lessonsPerModule. withQuiz adds a
// one question quiz to every module.
func (e *env) author(t *testing.T, creatorID, title string, withQuiz bool, lessonsPerModule ...int) authored {
	t.Helper()
	in := domainagg.CreateCourseInput{Title: title, Description: "d", CreatorID: creatorID}
	for i, n := range lessonsPerModule {
		mod := domainagg.ModuleInput{Title: fmt.Sprintf("%s module %d", title, i), Position: int64(i + 1)}
		for j := 0; j < n; j++ {
			mod.Lessons = append(mod.Lessons, domainagg.LessonInput{Title: fmt.Sprintf("lesson %d.%d", i, j), Position: int64(j + 1)})
		}
		if withQuiz {
			mod.Quiz = &domainagg.QuizInput{Questions: []domainagg.QuestionInput{{
				QuestionText: "pick one",
				Answers: []domainagg.AnswerInput{
					{AnswerText: "right", IsCorrect: true},
					{AnswerText: "wrong"},
				},
			}}}
		}
		in.Modules = append(in.Modules, mod)
	}
	res, err := e.authoring.CreateCourse(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	out := authored{CourseID: res.CourseID, Modules: res.ModuleIDs}
	for _, moduleID := range res.ModuleIDs {
		var ids []uuid.UUID
		if err := e.db.Model(&types.Lesson{}).Where("module_id = ?", moduleID).Order("position ASC").Pluck("id", &ids).Error; err != nil {
			t.Fatalf("load lessons: %v", err)
		}
		out.Lessons = append(out.Lessons, ids)
		if withQuiz {
			var quiz types.Quiz
			if err := e.db.Where("module_id = ?", moduleID).Take(&quiz).Error; err != nil {
				t.Fatalf("load quiz: %v", err)
			}
			out.Quizzes = append(out.Quizzes, quiz.ID)
		}
	}
	return out
}

func (e *env) enroll(t *testing.T, learnerID string, courseID uuid.UUID) {
	t.Helper()
	if _, err := e.enrollment.Enroll(context.Background(), domainagg.EnrollInput{LearnerID: learnerID, CourseID: courseID}); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
}

func (e *env) completeLesson(t *testing.T, learnerID string, c authored, m, l int) domainagg.CompletionResult {
	t.Helper()
	res, err := e.completion.RecordLessonCompletion(context.Background(), domainagg.LessonCompletionInput{
		LearnerID: learnerID, LessonID: c.Lessons[m][l], ModuleID: c.Modules[m], CourseID: c.CourseID,
	})
	if err != nil {
		t.Fatalf("RecordLessonCompletion m%d l%d: %v", m, l, err)
	}
	return res
}

type memoryCourseCache struct {
	mu    sync.Mutex
	trees map[uuid.UUID]types.CourseTree
}

func newMemoryCourseCache() *memoryCourseCache {
	return &memoryCourseCache{trees: map[uuid.UUID]types.CourseTree{}}
}

func (c *memoryCourseCache) Get(_ context.Context, courseID uuid.UUID) (*types.CourseTree, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tree, ok := c.trees[courseID]
	if !ok {
		return nil, false, nil
	}
	return &tree, true, nil
}

func (c *memoryCourseCache) Set(_ context.Context, tree *types.CourseTree) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trees[tree.ID] = *tree
	return nil
}

type cacheCounter struct {
	mu           sync.Mutex
	hits, misses int
}

func (c *cacheCounter) IncCacheHit(string) {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *cacheCounter) IncCacheMiss(string) {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}
