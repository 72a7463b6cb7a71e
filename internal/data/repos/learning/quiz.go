package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type QuizRepo interface {
	Create(dbc dbctx.Context, rows []*types.Quiz) ([]*types.Quiz, error)
	// GetByID returns (nil, nil) when the quiz does not exist.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Quiz, error)
	ListByModuleIDs(dbc dbctx.Context, moduleIDs []uuid.UUID) ([]*types.Quiz, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, log *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: log.With("repo", "QuizRepo")}
}

func (r *quizRepo) Create(dbc dbctx.Context, rows []*types.Quiz) ([]*types.Quiz, error) {
	if len(rows) == 0 {
		return []*types.Quiz{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *quizRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Quiz, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Quiz
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *quizRepo) ListByModuleIDs(dbc dbctx.Context, moduleIDs []uuid.UUID) ([]*types.Quiz, error) {
	out := []*types.Quiz{}
	if len(moduleIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("module_id IN ?", moduleIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type QuestionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Question) ([]*types.Question, error)
	ListByQuizIDs(dbc dbctx.Context, quizIDs []uuid.UUID) ([]*types.Question, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, log *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: log.With("repo", "QuestionRepo")}
}

func (r *questionRepo) Create(dbc dbctx.Context, rows []*types.Question) ([]*types.Question, error) {
	if len(rows) == 0 {
		return []*types.Question{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *questionRepo) ListByQuizIDs(dbc dbctx.Context, quizIDs []uuid.UUID) ([]*types.Question, error) {
	out := []*types.Question{}
	if len(quizIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("quiz_id IN ?", quizIDs).
		Order("quiz_id, position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type AnswerOptionRepo interface {
	Create(dbc dbctx.Context, rows []*types.AnswerOption) ([]*types.AnswerOption, error)
	ListByQuestionIDs(dbc dbctx.Context, questionIDs []uuid.UUID) ([]*types.AnswerOption, error)
}

type answerOptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerOptionRepo(db *gorm.DB, log *logger.Logger) AnswerOptionRepo {
	return &answerOptionRepo{db: db, log: log.With("repo", "AnswerOptionRepo")}
}

func (r *answerOptionRepo) Create(dbc dbctx.Context, rows []*types.AnswerOption) ([]*types.AnswerOption, error) {
	if len(rows) == 0 {
		return []*types.AnswerOption{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *answerOptionRepo) ListByQuestionIDs(dbc dbctx.Context, questionIDs []uuid.UUID) ([]*types.AnswerOption, error) {
	out := []*types.AnswerOption{}
	if len(questionIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("question_id IN ?", questionIDs).
		Order("question_id, position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
