package progress

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type QuizCompletionRepo interface {
	// Upsert overwrites score, total, timestamp and answers for an existing (learner, quiz) row.
	Upsert(dbc dbctx.Context, row *types.QuizCompletion) error
	ListQuizIDsByCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) ([]uuid.UUID, error)
}

type quizCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizCompletionRepo(db *gorm.DB, log *logger.Logger) QuizCompletionRepo {
	return &quizCompletionRepo{db: db, log: log.With("repo", "QuizCompletionRepo")}
}

func (r *quizCompletionRepo) Upsert(dbc dbctx.Context, row *types.QuizCompletion) error {
	if row == nil {
		return nil
	}
	if err := requireKey(row.LearnerID, row.QuizID); err != nil {
		return err
	}
	if row.CompletedAt.IsZero() {
		row.CompletedAt = time.Now().UTC()
	}
	if len(row.Answers) == 0 {
		row.Answers = datatypes.JSON([]byte("{}"))
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "learner_id"}, {Name: "quiz_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score",
				"total_questions",
				"completed_at",
				"answers",
			}),
		}).
		Create(row).Error
}

func (r *quizCompletionRepo) ListQuizIDsByCourse(dbc dbctx.Context, learnerID string, courseID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if learnerID == "" || courseID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.QuizCompletion{}).
		Joins("JOIN quiz ON quiz.id = quiz_completion.quiz_id").
		Joins("JOIN module ON module.id = quiz.module_id").
		Where("quiz_completion.learner_id = ? AND module.course_id = ?", learnerID, courseID).
		Order("module.position ASC").
		Pluck("quiz_completion.quiz_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeAnswers serializes a question id -> answer option id snapshot.
func EncodeAnswers(answers map[uuid.UUID]uuid.UUID) (datatypes.JSON, error) {
	if len(answers) == 0 {
		return datatypes.JSON([]byte("{}")), nil
	}
	b, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
