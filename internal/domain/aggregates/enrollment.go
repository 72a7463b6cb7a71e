package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var EnrollmentAggregateContract = Contract{
	Name:             "Learning.EnrollmentAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns idempotent learner/course enrollment.",
}

// EnrollmentAggregate links learners to courses.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeRetryable, CodeInternal.
type EnrollmentAggregate interface {
	Aggregate

	// Enroll ensures the learner exists and records the enrollment. Repeated calls are no-ops.
	Enroll(ctx context.Context, in EnrollInput) (EnrollResult, error)
}

type EnrollInput struct {
	LearnerID string    `validate:"required,notblank"`
	CourseID  uuid.UUID `validate:"required"`
}

type EnrollResult struct {
	CourseID uuid.UUID
	// Created is false when the learner was already enrolled.
	Created bool
}
