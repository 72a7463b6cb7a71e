package aggregates

import (
	"context"

	"github.com/yungbote/coursebridge-backend/internal/data/repos"
	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
)

type EnrollmentAggregateDeps struct {
	Base BaseDeps

	Learners    repos.LearnerRepo
	Courses     repos.CourseRepo
	Enrollments repos.EnrollmentRepo
}

type enrollmentAggregate struct {
	deps EnrollmentAggregateDeps
}

func NewEnrollmentAggregate(deps EnrollmentAggregateDeps) domainagg.EnrollmentAggregate {
	deps.Base = deps.Base.withDefaults()
	return &enrollmentAggregate{deps: deps}
}

func (a *enrollmentAggregate) Contract() domainagg.Contract {
	return domainagg.EnrollmentAggregateContract
}

func (a *enrollmentAggregate) Enroll(ctx context.Context, in domainagg.EnrollInput) (domainagg.EnrollResult, error) {
	const op = "Learning.EnrollmentAggregate.Enroll"
	out := domainagg.EnrollResult{CourseID: in.CourseID}

	in.LearnerID = normalizeID(in.LearnerID)
	if err := validateInput(in); err != nil {
		return out, MapError(op, err)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		ok, err := a.deps.Courses.Exists(dbc, in.CourseID)
		if err != nil {
			return err
		}
		if !ok {
			return domainagg.NotFound(op, "course %s not found", in.CourseID)
		}
		if _, err := a.deps.Learners.Ensure(dbc, in.LearnerID); err != nil {
			return err
		}
		created, err := a.deps.Enrollments.Ensure(dbc, in.LearnerID, in.CourseID)
		if err != nil {
			return err
		}
		out.Created = created
		return nil
	})
	if err != nil {
		return domainagg.EnrollResult{}, err
	}
	if out.Created {
		a.deps.Base.Hooks.IncCompletion("enrollment")
		a.deps.Base.Log.Info("Learner enrolled", "learner_id", in.LearnerID, "course_id", in.CourseID)
	}
	return out, nil
}
