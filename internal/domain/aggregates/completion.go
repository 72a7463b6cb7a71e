package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var CompletionAggregateContract = Contract{
	Name:             "Learning.CompletionAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns completion facts and the module/course completion cascade for one learner and course.",
}

// CompletionAggregate records completion facts and derives module and course completion.
//
// Every write ensures the learner and enrollment exist and locks the enrollment row, so
// concurrent completions for one learner and course are serialized.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeRetryable, CodeInternal.
type CompletionAggregate interface {
	Aggregate

	RecordLessonCompletion(ctx context.Context, in LessonCompletionInput) (CompletionResult, error)

	// RecordModuleCompletion rejects with CodeValidation unless every lesson of the module is complete.
	RecordModuleCompletion(ctx context.Context, in ModuleCompletionInput) (CompletionResult, error)

	// RecordCourseCompletion rejects with CodeValidation unless every module of the course is complete.
	RecordCourseCompletion(ctx context.Context, in CourseCompletionInput) (CompletionResult, error)

	// RecordQuizCompletion upserts the learner's latest quiz result. It never cascades.
	RecordQuizCompletion(ctx context.Context, in QuizCompletionInput) (QuizCompletionResult, error)
}

type LessonCompletionInput struct {
	LearnerID string    `validate:"required,notblank"`
	LessonID  uuid.UUID `validate:"required"`
	ModuleID  uuid.UUID `validate:"required"`
	CourseID  uuid.UUID `validate:"required"`
}

type ModuleCompletionInput struct {
	LearnerID string    `validate:"required,notblank"`
	ModuleID  uuid.UUID `validate:"required"`
	CourseID  uuid.UUID `validate:"required"`
}

type CourseCompletionInput struct {
	LearnerID string    `validate:"required,notblank"`
	CourseID  uuid.UUID `validate:"required"`
}

type QuizCompletionInput struct {
	LearnerID      string    `validate:"required,notblank"`
	QuizID         uuid.UUID `validate:"required"`
	Score          int32     `validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int32     `validate:"gte=0"`
	// Answers maps question id to the selected answer option id.
	Answers map[uuid.UUID]uuid.UUID
}

// CompletionResult reports the derived state after a completion write. The flags describe
// the current state, not whether this call created the row.
type CompletionResult struct {
	LessonRecorded  bool
	ModuleCompleted bool
	CourseCompleted bool
}

type QuizCompletionResult struct {
	QuizID         uuid.UUID
	CourseID       uuid.UUID
	Score          int32
	TotalQuestions int32
}
