package handlers

import (
	"fmt"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
)

type createCourseRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	CreatorID   string          `json:"creatorId" binding:"required"`
	Modules     []moduleRequest `json:"modules" binding:"dive"`
}

type moduleRequest struct {
	Title    string          `json:"title" binding:"required"`
	Position int64           `json:"position"`
	Lessons  []lessonRequest `json:"lessons" binding:"dive"`
	Quiz     *quizRequest    `json:"quiz"`
}

type lessonRequest struct {
	Title    string  `json:"title" binding:"required"`
	Content  string  `json:"content"`
	VideoURL *string `json:"videoUrl"`
	Position int64   `json:"position"`
}

type quizRequest struct {
	Questions []questionRequest `json:"questions" binding:"dive"`
}

type questionRequest struct {
	QuestionText string          `json:"questionText" binding:"required"`
	Answers      []answerRequest `json:"answers" binding:"dive"`
}

type answerRequest struct {
	AnswerText string `json:"answerText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

func (r createCourseRequest) input() domainagg.CreateCourseInput {
	in := domainagg.CreateCourseInput{
		Title:       r.Title,
		Description: r.Description,
		CreatorID:   r.CreatorID,
		Modules:     make([]domainagg.ModuleInput, 0, len(r.Modules)),
	}
	for _, m := range r.Modules {
		mi := domainagg.ModuleInput{Title: m.Title, Position: m.Position}
		for _, l := range m.Lessons {
			mi.Lessons = append(mi.Lessons, domainagg.LessonInput{
				Title:    l.Title,
				Content:  l.Content,
				VideoURL: l.VideoURL,
				Position: l.Position,
			})
		}
		if m.Quiz != nil {
			qi := &domainagg.QuizInput{}
			for _, q := range m.Quiz.Questions {
				question := domainagg.QuestionInput{QuestionText: q.QuestionText}
				for _, a := range q.Answers {
					question.Answers = append(question.Answers, domainagg.AnswerInput{AnswerText: a.AnswerText, IsCorrect: a.IsCorrect})
				}
				qi.Questions = append(qi.Questions, question)
			}
			mi.Quiz = qi
		}
		in.Modules = append(in.Modules, mi)
	}
	return in
}

type enrollRequest struct {
	LearnerID string `json:"learnerId" binding:"required"`
	CourseID  string `json:"courseId" binding:"required,uuid"`
}

type lessonCompleteRequest struct {
	LearnerID string `json:"learnerId" binding:"required"`
	LessonID  string `json:"lessonId" binding:"required,uuid"`
	ModuleID  string `json:"moduleId" binding:"required,uuid"`
	CourseID  string `json:"courseId" binding:"required,uuid"`
}

type moduleCompleteRequest struct {
	LearnerID string `json:"learnerId" binding:"required"`
	ModuleID  string `json:"moduleId" binding:"required,uuid"`
	CourseID  string `json:"courseId" binding:"required,uuid"`
}

type courseCompleteRequest struct {
	LearnerID string `json:"learnerId" binding:"required"`
	CourseID  string `json:"courseId" binding:"required,uuid"`
}

type quizCompleteRequest struct {
	QuizID         string            `json:"quizId" binding:"required,uuid"`
	LearnerID      string            `json:"learnerId" binding:"required"`
	Score          int32             `json:"score" binding:"gte=0"`
	TotalQuestions int32             `json:"totalQuestions" binding:"gte=0"`
	Answers        map[string]string `json:"answers"`
}

// answers decodes the questionId -> answerOptionId snapshot.
func (r quizCompleteRequest) answers() (map[uuid.UUID]uuid.UUID, error) {
	if len(r.Answers) == 0 {
		return nil, nil
	}
	out := make(map[uuid.UUID]uuid.UUID, len(r.Answers))
	for q, a := range r.Answers {
		qid, err := uuid.Parse(q)
		if err != nil {
			return nil, fmt.Errorf("invalid question id %q", q)
		}
		aid, err := uuid.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("invalid answer id %q", a)
		}
		out[qid] = aid
	}
	return out, nil
}

type learnerCourseQuery struct {
	LearnerID string `form:"learnerId" binding:"required"`
	CourseID  string `form:"courseId" binding:"required,uuid"`
}

type learnerQuery struct {
	LearnerID string `form:"learnerId" binding:"required"`
}

type courseQuery struct {
	CourseID string `form:"courseId" binding:"required,uuid"`
}

type userQuery struct {
	UserID string `form:"userId" binding:"required"`
}
