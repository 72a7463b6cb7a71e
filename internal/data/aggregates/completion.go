package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/coursebridge-backend/internal/data/repos"
	progressrepo "github.com/yungbote/coursebridge-backend/internal/data/repos/progress"
	types "github.com/yungbote/coursebridge-backend/internal/domain"
	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/domain/progress"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
)

type CompletionAggregateDeps struct {
	Base BaseDeps

	Learners repos.LearnerRepo
	Courses  repos.CourseRepo
	Modules  repos.ModuleRepo
	Lessons  repos.LessonRepo
	Quizzes  repos.QuizRepo

	Enrollments       repos.EnrollmentRepo
	LessonCompletions repos.LessonCompletionRepo
	ModuleCompletions repos.ModuleCompletionRepo
	CourseCompletions repos.CourseCompletionRepo
	QuizCompletions   repos.QuizCompletionRepo
}

type completionAggregate struct {
	deps CompletionAggregateDeps
}

func NewCompletionAggregate(deps CompletionAggregateDeps) domainagg.CompletionAggregate {
	deps.Base = deps.Base.withDefaults()
	return &completionAggregate{deps: deps}
}

func (a *completionAggregate) Contract() domainagg.Contract {
	return domainagg.CompletionAggregateContract
}

// completed tracks which facts a write created, for metrics after commit.
type completed struct {
	lesson, module, course bool
}

func (a *completionAggregate) RecordLessonCompletion(ctx context.Context, in domainagg.LessonCompletionInput) (domainagg.CompletionResult, error) {
	const op = "Learning.CompletionAggregate.RecordLessonCompletion"
	var out domainagg.CompletionResult
	var created completed

	in.LearnerID = normalizeID(in.LearnerID)
	if err := validateInput(in); err != nil {
		return out, MapError(op, err)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		out, created = domainagg.CompletionResult{}, completed{}

		lesson, err := a.deps.Lessons.GetByID(dbc, in.LessonID)
		if err != nil {
			return err
		}
		if lesson == nil {
			return ValidationError("unknown lesson " + in.LessonID.String())
		}
		if err := RequireBelongs("lesson", lesson.ID, in.ModuleID, lesson.ModuleID); err != nil {
			return err
		}
		if _, err := a.requireModuleInCourse(dbc, in.ModuleID, in.CourseID); err != nil {
			return err
		}
		if err := a.enterCourse(dbc, in.LearnerID, in.CourseID); err != nil {
			return err
		}

		if created.lesson, err = a.deps.LessonCompletions.Create(dbc, in.LearnerID, in.LessonID); err != nil {
			return err
		}
		out.LessonRecorded = true

		if out.ModuleCompleted, created.module, err = a.recountModule(dbc, in.LearnerID, in.ModuleID); err != nil {
			return err
		}
		if out.CourseCompleted, created.course, err = a.recountCourse(dbc, in.LearnerID, in.CourseID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return domainagg.CompletionResult{}, err
	}
	a.observe(created)
	a.deps.Base.Log.Debug("Lesson completion recorded",
		"learner_id", in.LearnerID,
		"lesson_id", in.LessonID,
		"module_completed", out.ModuleCompleted,
		"course_completed", out.CourseCompleted,
	)
	return out, nil
}

func (a *completionAggregate) RecordModuleCompletion(ctx context.Context, in domainagg.ModuleCompletionInput) (domainagg.CompletionResult, error) {
	const op = "Learning.CompletionAggregate.RecordModuleCompletion"
	var out domainagg.CompletionResult
	var created completed

	in.LearnerID = normalizeID(in.LearnerID)
	if err := validateInput(in); err != nil {
		return out, MapError(op, err)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		out, created = domainagg.CompletionResult{}, completed{}

		if _, err := a.requireModuleInCourse(dbc, in.ModuleID, in.CourseID); err != nil {
			return err
		}
		if err := a.enterCourse(dbc, in.LearnerID, in.CourseID); err != nil {
			return err
		}

		total, err := a.deps.Lessons.CountByModuleID(dbc, in.ModuleID)
		if err != nil {
			return err
		}
		done, err := a.deps.LessonCompletions.CountByModule(dbc, in.LearnerID, in.ModuleID)
		if err != nil {
			return err
		}
		if err := RequireComplete(total, done, "not all lessons completed"); err != nil {
			return err
		}
		if created.module, err = a.deps.ModuleCompletions.Create(dbc, in.LearnerID, in.ModuleID); err != nil {
			return err
		}
		out.ModuleCompleted = true

		if out.CourseCompleted, created.course, err = a.recountCourse(dbc, in.LearnerID, in.CourseID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return domainagg.CompletionResult{}, err
	}
	a.observe(created)
	return out, nil
}

func (a *completionAggregate) RecordCourseCompletion(ctx context.Context, in domainagg.CourseCompletionInput) (domainagg.CompletionResult, error) {
	const op = "Learning.CompletionAggregate.RecordCourseCompletion"
	var out domainagg.CompletionResult
	var created completed

	in.LearnerID = normalizeID(in.LearnerID)
	if err := validateInput(in); err != nil {
		return out, MapError(op, err)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		out, created = domainagg.CompletionResult{}, completed{}

		ok, err := a.deps.Courses.Exists(dbc, in.CourseID)
		if err != nil {
			return err
		}
		if !ok {
			return ValidationError("unknown course " + in.CourseID.String())
		}
		if err := a.enterCourse(dbc, in.LearnerID, in.CourseID); err != nil {
			return err
		}

		total, err := a.deps.Modules.CountByCourseID(dbc, in.CourseID)
		if err != nil {
			return err
		}
		done, err := a.deps.ModuleCompletions.CountByCourse(dbc, in.LearnerID, in.CourseID)
		if err != nil {
			return err
		}
		if err := RequireComplete(total, done, "not all modules completed"); err != nil {
			return err
		}
		if created.course, err = a.deps.CourseCompletions.Create(dbc, in.LearnerID, in.CourseID); err != nil {
			return err
		}
		out.CourseCompleted = true
		return nil
	})
	if err != nil {
		return domainagg.CompletionResult{}, err
	}
	a.observe(created)
	return out, nil
}

func (a *completionAggregate) RecordQuizCompletion(ctx context.Context, in domainagg.QuizCompletionInput) (domainagg.QuizCompletionResult, error) {
	const op = "Learning.CompletionAggregate.RecordQuizCompletion"
	out := domainagg.QuizCompletionResult{QuizID: in.QuizID, Score: in.Score, TotalQuestions: in.TotalQuestions}

	in.LearnerID = normalizeID(in.LearnerID)
	if err := validateInput(in); err != nil {
		return domainagg.QuizCompletionResult{}, MapError(op, err)
	}
	answers, err := progressrepo.EncodeAnswers(in.Answers)
	if err != nil {
		return domainagg.QuizCompletionResult{}, MapError(op, ValidationError("answers: "+err.Error()))
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		quiz, err := a.deps.Quizzes.GetByID(dbc, in.QuizID)
		if err != nil {
			return err
		}
		if quiz == nil {
			return domainagg.NotFound(op, "quiz %s not found", in.QuizID)
		}
		module, err := a.deps.Modules.GetByID(dbc, quiz.ModuleID)
		if err != nil {
			return err
		}
		if module == nil {
			return InvariantError("quiz " + quiz.ID.String() + " has no module")
		}
		if err := a.enterCourse(dbc, in.LearnerID, module.CourseID); err != nil {
			return err
		}
		out.CourseID = module.CourseID
		return a.deps.QuizCompletions.Upsert(dbc, &types.QuizCompletion{
			LearnerID:      in.LearnerID,
			QuizID:         in.QuizID,
			Score:          in.Score,
			TotalQuestions: in.TotalQuestions,
			Answers:        answers,
			CompletedAt:    time.Now().UTC(),
		})
	})
	if err != nil {
		return domainagg.QuizCompletionResult{}, err
	}
	a.deps.Base.Hooks.IncCompletion("quiz")
	return out, nil
}

// enterCourse makes sure the learner and enrollment exist, then locks the enrollment row.
// Every completion write for the same learner and course queues on that lock.
func (a *completionAggregate) enterCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) error {
	if _, err := a.deps.Learners.Ensure(dbc, learnerID); err != nil {
		return err
	}
	if _, err := a.deps.Enrollments.Ensure(dbc, learnerID, courseID); err != nil {
		return err
	}
	_, err := a.deps.Enrollments.LockForUpdate(dbc, learnerID, courseID)
	return err
}

func (a *completionAggregate) requireModuleInCourse(dbc dbctx.Context, moduleID, courseID uuid.UUID) (*types.Module, error) {
	module, err := a.deps.Modules.GetByID(dbc, moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, ValidationError("unknown module " + moduleID.String())
	}
	if err := RequireBelongs("module", module.ID, courseID, module.CourseID); err != nil {
		return nil, err
	}
	return module, nil
}

// recountModule derives module completion from lesson counts. It returns the current
// state and whether this call inserted the row.
func (a *completionAggregate) recountModule(dbc dbctx.Context, learnerID string, moduleID uuid.UUID) (bool, bool, error) {
	total, err := a.deps.Lessons.CountByModuleID(dbc, moduleID)
	if err != nil {
		return false, false, err
	}
	done, err := a.deps.LessonCompletions.CountByModule(dbc, learnerID, moduleID)
	if err != nil {
		return false, false, err
	}
	if !progress.Complete(total, done) {
		return false, false, nil
	}
	created, err := a.deps.ModuleCompletions.Create(dbc, learnerID, moduleID)
	if err != nil {
		return false, false, err
	}
	return true, created, nil
}

func (a *completionAggregate) recountCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) (bool, bool, error) {
	total, err := a.deps.Modules.CountByCourseID(dbc, courseID)
	if err != nil {
		return false, false, err
	}
	done, err := a.deps.ModuleCompletions.CountByCourse(dbc, learnerID, courseID)
	if err != nil {
		return false, false, err
	}
	if !progress.Complete(total, done) {
		return false, false, nil
	}
	created, err := a.deps.CourseCompletions.Create(dbc, learnerID, courseID)
	if err != nil {
		return false, false, err
	}
	return true, created, nil
}

func (a *completionAggregate) observe(c completed) {
	hooks := a.deps.Base.Hooks
	if c.lesson {
		hooks.IncCompletion("lesson")
	}
	if c.module {
		hooks.IncCompletion("module")
	}
	if c.course {
		hooks.IncCompletion("course")
	}
}
