package app

import (
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/data/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/data/cache"
	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/observability"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
	"github.com/yungbote/coursebridge-backend/internal/services"
)

type Aggregates struct {
	Authoring  domainagg.AuthoringAggregate
	Enrollment domainagg.EnrollmentAggregate
	Completion domainagg.CompletionAggregate
}

type Services struct {
	Course   services.CourseService
	Progress services.ProgressService
}

func wireAggregates(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, r Repos) Aggregates {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:    db,
		Log:   log,
		Hooks: aggregates.NewObservabilityHooks(metrics),
	}
	return Aggregates{
		Authoring: aggregates.NewAuthoringAggregate(aggregates.AuthoringAggregateDeps{
			Base:      base,
			Creators:  r.Creator,
			Courses:   r.Course,
			Modules:   r.Module,
			Lessons:   r.Lesson,
			Quizzes:   r.Quiz,
			Questions: r.Question,
			Answers:   r.AnswerOption,
		}),
		Enrollment: aggregates.NewEnrollmentAggregate(aggregates.EnrollmentAggregateDeps{
			Base:        base,
			Learners:    r.Learner,
			Courses:     r.Course,
			Enrollments: r.Enrollment,
		}),
		Completion: aggregates.NewCompletionAggregate(aggregates.CompletionAggregateDeps{
			Base:              base,
			Learners:          r.Learner,
			Courses:           r.Course,
			Modules:           r.Module,
			Lessons:           r.Lesson,
			Quizzes:           r.Quiz,
			Enrollments:       r.Enrollment,
			LessonCompletions: r.LessonCompletion,
			ModuleCompletions: r.ModuleCompletion,
			CourseCompletions: r.CourseCompletion,
			QuizCompletions:   r.QuizCompletion,
		}),
	}
}

func (a Aggregates) all() []domainagg.Aggregate {
	return []domainagg.Aggregate{a.Authoring, a.Enrollment, a.Completion}
}

// checkContracts fails wiring unless every aggregate owns its write transaction and
// keeps its reads invariant-scoped.
func checkContracts(log *logger.Logger, list ...domainagg.Aggregate) error {
	for i, agg := range list {
		if agg == nil {
			return fmt.Errorf("aggregate %d is not wired", i)
		}
		c := agg.Contract()
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("aggregate %d has an unnamed contract", i)
		}
		if !c.RequiresAggregateOwnedTx() {
			return fmt.Errorf("aggregate %s must own its write transactions, got %q", name, c.WriteTxOwnership)
		}
		if c.ReadPolicy != domainagg.ReadPolicyInvariantScoped {
			return fmt.Errorf("aggregate %s must use %q reads, got %q", name, domainagg.ReadPolicyInvariantScoped, c.ReadPolicy)
		}
		if log != nil {
			log.Debug("Aggregate contract ok", "aggregate", name, "tx", c.WriteTxOwnership)
		}
	}
	return nil
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, metrics *observability.Metrics, rdb *goredis.Client, r Repos) Services {
	log.Info("Wiring services...")

	courseCache := cache.NewNoopCourseCache()
	if rdb != nil {
		courseCache = cache.NewRedisCourseCache(rdb, cfg.CourseCacheTTL(), log)
	}
	var cacheMetrics services.CacheMetrics
	if metrics != nil {
		cacheMetrics = metrics
	}

	return Services{
		Course: services.NewCourseService(services.CourseServiceDeps{
			DB:                db,
			Log:               log,
			Creators:          r.Creator,
			Learners:          r.Learner,
			Courses:           r.Course,
			Modules:           r.Module,
			Lessons:           r.Lesson,
			Quizzes:           r.Quiz,
			Questions:         r.Question,
			Answers:           r.AnswerOption,
			Enrollments:       r.Enrollment,
			CourseCompletions: r.CourseCompletion,
			Cache:             courseCache,
			Metrics:           cacheMetrics,
		}),
		Progress: services.NewProgressService(services.ProgressServiceDeps{
			DB:                db,
			Log:               log,
			Courses:           r.Course,
			Modules:           r.Module,
			Lessons:           r.Lesson,
			Enrollments:       r.Enrollment,
			LessonCompletions: r.LessonCompletion,
			ModuleCompletions: r.ModuleCompletion,
			QuizCompletions:   r.QuizCompletion,
			Rows:              r.ProgressRows,
		}),
	}
}
