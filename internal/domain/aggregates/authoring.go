package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var AuthoringAggregateContract = Contract{
	Name:             "Learning.AuthoringAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic creation of the course/module/lesson/quiz tree.",
}

// AuthoringAggregate persists authored course trees.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeConflict, CodeRetryable, CodeInternal.
type AuthoringAggregate interface {
	Aggregate

	// CreateCourse persists the whole tree or nothing. Positions outside the int32 range
	// abort the operation with CodeValidation.
	CreateCourse(ctx context.Context, in CreateCourseInput) (CreateCourseResult, error)
}

// Positions are carried as int64 so out-of-range values reach validation instead of
// being truncated at decode time.
type CreateCourseInput struct {
	Title       string `validate:"required"`
	Description string
	CreatorID   string        `validate:"required,notblank"`
	Modules     []ModuleInput `validate:"dive"`
}

type ModuleInput struct {
	Title    string `validate:"required"`
	Position int64
	Lessons  []LessonInput `validate:"dive"`
	Quiz     *QuizInput    `validate:"omitempty"`
}

type LessonInput struct {
	Title    string `validate:"required"`
	Content  string
	VideoURL *string
	Position int64
}

type QuizInput struct {
	Questions []QuestionInput `validate:"dive"`
}

type QuestionInput struct {
	QuestionText string        `validate:"required"`
	Answers      []AnswerInput `validate:"dive"`
}

type AnswerInput struct {
	AnswerText string `validate:"required"`
	IsCorrect  bool
}

type CreateCourseResult struct {
	CourseID  uuid.UUID
	ModuleIDs []uuid.UUID
}
