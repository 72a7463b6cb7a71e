package aggregates

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/data/repos"
	repotest "github.com/yungbote/coursebridge-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
)

type harness struct {
	db         *gorm.DB
	authoring  domainagg.AuthoringAggregate
	enrollment domainagg.EnrollmentAggregate
	completion domainagg.CompletionAggregate
}

// newHarness wires all three aggregates over a fresh database. hooks and runnerFor may
// be nil.
func newHarness(t *testing.T, hooks Hooks, runnerFor func(db *gorm.DB) TxRunner) *harness {
	t.Helper()
	db := repotest.DB(t)
	log := repotest.Logger(t)
	runner := NewGormTxRunner(db)
	if runnerFor != nil {
		runner = runnerFor(db)
	}
	base := BaseDeps{DB: db, Log: log, Runner: runner, Hooks: hooks}

	creators := repos.NewCreatorRepo(db, log)
	learners := repos.NewLearnerRepo(db, log)
	courses := repos.NewCourseRepo(db, log)
	modules := repos.NewModuleRepo(db, log)
	lessons := repos.NewLessonRepo(db, log)
	quizzes := repos.NewQuizRepo(db, log)
	enrollments := repos.NewEnrollmentRepo(db, log)

	return &harness{
		db: db,
		authoring: NewAuthoringAggregate(AuthoringAggregateDeps{
			Base:      base,
			Creators:  creators,
			Courses:   courses,
			Modules:   modules,
			Lessons:   lessons,
			Quizzes:   quizzes,
			Questions: repos.NewQuestionRepo(db, log),
			Answers:   repos.NewAnswerOptionRepo(db, log),
		}),
		enrollment: NewEnrollmentAggregate(EnrollmentAggregateDeps{
			Base:        base,
			Learners:    learners,
			Courses:     courses,
			Enrollments: enrollments,
		}),
		completion: NewCompletionAggregate(CompletionAggregateDeps{
			Base:              base,
			Learners:          learners,
			Courses:           courses,
			Modules:           modules,
			Lessons:           lessons,
			Quizzes:           quizzes,
			Enrollments:       enrollments,
			LessonCompletions: repos.NewLessonCompletionRepo(db, log),
			ModuleCompletions: repos.NewModuleCompletionRepo(db, log),
			CourseCompletions: repos.NewCourseCompletionRepo(db, log),
			QuizCompletions:   repos.NewQuizCompletionRepo(db, log),
		}),
	}
}

func (h *harness) count(t *testing.T, model interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := h.db.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

// coursePayload builds an authoring input with one module per entry of lessonsPerModule.
func coursePayload(creatorID string, lessonsPerModule ...int) domainagg.CreateCourseInput {
	in := domainagg.CreateCourseInput{
		Title:       "Intro to Go",
		Description: "channels and friends",
		CreatorID:   creatorID,
	}
	for i, n := range lessonsPerModule {
		mod := domainagg.ModuleInput{Title: fmt.Sprintf("module %d", i), Position: int64(i + 1)}
		for j := 0; j < n; j++ {
			mod.Lessons = append(mod.Lessons, domainagg.LessonInput{
				Title:    fmt.Sprintf("lesson %d.%d", i, j),
				Content:  "body",
				Position: int64(j + 1),
			})
		}
		in.Modules = append(in.Modules, mod)
	}
	return in
}

// failAfterBodyRunner runs the body in a real transaction and then forces a rollback,
// standing in for a crash at commit time.
type failAfterBodyRunner struct {
	db  *gorm.DB
	err error
}

func (r failAfterBodyRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(dbctx.Context{Ctx: ctx, Tx: tx}); err != nil {
			return err
		}
		return r.err
	})
}
