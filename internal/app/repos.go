package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/data/repos"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type Repos struct {
	Creator      repos.CreatorRepo
	Learner      repos.LearnerRepo
	Course       repos.CourseRepo
	Module       repos.ModuleRepo
	Lesson       repos.LessonRepo
	Quiz         repos.QuizRepo
	Question     repos.QuestionRepo
	AnswerOption repos.AnswerOptionRepo

	Enrollment       repos.EnrollmentRepo
	LessonCompletion repos.LessonCompletionRepo
	ModuleCompletion repos.ModuleCompletionRepo
	CourseCompletion repos.CourseCompletionRepo
	QuizCompletion   repos.QuizCompletionRepo
	ProgressRows     repos.ProgressRowsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Creator:      repos.NewCreatorRepo(db, log),
		Learner:      repos.NewLearnerRepo(db, log),
		Course:       repos.NewCourseRepo(db, log),
		Module:       repos.NewModuleRepo(db, log),
		Lesson:       repos.NewLessonRepo(db, log),
		Quiz:         repos.NewQuizRepo(db, log),
		Question:     repos.NewQuestionRepo(db, log),
		AnswerOption: repos.NewAnswerOptionRepo(db, log),

		Enrollment:       repos.NewEnrollmentRepo(db, log),
		LessonCompletion: repos.NewLessonCompletionRepo(db, log),
		ModuleCompletion: repos.NewModuleCompletionRepo(db, log),
		CourseCompletion: repos.NewCourseCompletionRepo(db, log),
		QuizCompletion:   repos.NewQuizCompletionRepo(db, log),
		ProgressRows:     repos.NewProgressRowsRepo(db, log),
	}
}
