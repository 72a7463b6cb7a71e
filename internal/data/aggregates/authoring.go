package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/coursebridge-backend/internal/data/repos"
	types "github.com/yungbote/coursebridge-backend/internal/domain"
	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
)

type AuthoringAggregateDeps struct {
	Base BaseDeps

	Creators  repos.CreatorRepo
	Courses   repos.CourseRepo
	Modules   repos.ModuleRepo
	Lessons   repos.LessonRepo
	Quizzes   repos.QuizRepo
	Questions repos.QuestionRepo
	Answers   repos.AnswerOptionRepo
}

type authoringAggregate struct {
	deps AuthoringAggregateDeps
}

func NewAuthoringAggregate(deps AuthoringAggregateDeps) domainagg.AuthoringAggregate {
	deps.Base = deps.Base.withDefaults()
	return &authoringAggregate{deps: deps}
}

func (a *authoringAggregate) Contract() domainagg.Contract {
	return domainagg.AuthoringAggregateContract
}

func (a *authoringAggregate) CreateCourse(ctx context.Context, in domainagg.CreateCourseInput) (domainagg.CreateCourseResult, error) {
	const op = "Learning.AuthoringAggregate.CreateCourse"
	var out domainagg.CreateCourseResult

	in.CreatorID = normalizeID(in.CreatorID)
	if err := validateInput(in); err != nil {
		return out, MapError(op, err)
	}
	if err := requireUniqueModulePositions(in.Modules); err != nil {
		return out, MapError(op, err)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Creators.Ensure(dbc, in.CreatorID); err != nil {
			return err
		}
		course, err := a.deps.Courses.Create(dbc, &types.Course{
			ID:          uuid.New(),
			CreatorID:   in.CreatorID,
			Title:       in.Title,
			Description: in.Description,
		})
		if err != nil {
			return err
		}

		moduleIDs := make([]uuid.UUID, 0, len(in.Modules))
		for mi, mod := range in.Modules {
			moduleID, err := a.createModule(dbc, course.ID, mi, mod)
			if err != nil {
				return err
			}
			moduleIDs = append(moduleIDs, moduleID)
		}

		out = domainagg.CreateCourseResult{CourseID: course.ID, ModuleIDs: moduleIDs}
		return nil
	})
	if err != nil {
		return domainagg.CreateCourseResult{}, err
	}

	a.deps.Base.Log.Info("Course created", "course_id", out.CourseID, "creator_id", in.CreatorID, "modules", len(out.ModuleIDs))
	return out, nil
}

// createModule writes one module and its children. Positions are narrowed here, inside the
// transaction, so a bad value deep in the payload discards everything already written.
func (a *authoringAggregate) createModule(dbc dbctx.Context, courseID uuid.UUID, idx int, in domainagg.ModuleInput) (uuid.UUID, error) {
	pos, err := Int32Position(fmt.Sprintf("modules[%d].position", idx), in.Position)
	if err != nil {
		return uuid.Nil, err
	}
	rows, err := a.deps.Modules.Create(dbc, []*types.Module{{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    in.Title,
		Position: pos,
	}})
	if err != nil {
		return uuid.Nil, err
	}
	moduleID := rows[0].ID

	for li, lesson := range in.Lessons {
		lpos, err := Int32Position(fmt.Sprintf("modules[%d].lessons[%d].position", idx, li), lesson.Position)
		if err != nil {
			return uuid.Nil, err
		}
		if _, err := a.deps.Lessons.Create(dbc, []*types.Lesson{{
			ID:       uuid.New(),
			ModuleID: moduleID,
			Title:    lesson.Title,
			Content:  lesson.Content,
			VideoURL: lesson.VideoURL,
			Position: lpos,
		}}); err != nil {
			return uuid.Nil, err
		}
	}

	if in.Quiz != nil {
		if err := a.createQuiz(dbc, moduleID, in.Quiz); err != nil {
			return uuid.Nil, err
		}
	}
	return moduleID, nil
}

func (a *authoringAggregate) createQuiz(dbc dbctx.Context, moduleID uuid.UUID, in *domainagg.QuizInput) error {
	quizzes, err := a.deps.Quizzes.Create(dbc, []*types.Quiz{{ID: uuid.New(), ModuleID: moduleID}})
	if err != nil {
		return err
	}
	quizID := quizzes[0].ID

	for qi, q := range in.Questions {
		questions, err := a.deps.Questions.Create(dbc, []*types.Question{{
			ID:           uuid.New(),
			QuizID:       quizID,
			QuestionText: q.QuestionText,
			Position:     int32(qi),
		}})
		if err != nil {
			return err
		}
		options := make([]*types.AnswerOption, 0, len(q.Answers))
		for ai, ans := range q.Answers {
			options = append(options, &types.AnswerOption{
				ID:         uuid.New(),
				QuestionID: questions[0].ID,
				AnswerText: ans.AnswerText,
				IsCorrect:  ans.IsCorrect,
				Position:   int32(ai),
			})
		}
		if _, err := a.deps.Answers.Create(dbc, options); err != nil {
			return err
		}
	}
	return nil
}

func requireUniqueModulePositions(modules []domainagg.ModuleInput) error {
	seen := make(map[int64]int, len(modules))
	for i, m := range modules {
		if prev, ok := seen[m.Position]; ok {
			return ValidationError(fmt.Sprintf("modules[%d] and modules[%d] share position %d", prev, i, m.Position))
		}
		seen[m.Position] = i
	}
	return nil
}
