package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/data/repos/learning"
	"github.com/yungbote/coursebridge-backend/internal/data/repos/progress"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type CreatorRepo = learning.CreatorRepo
type LearnerRepo = learning.LearnerRepo

type CourseRepo = learning.CourseRepo
type ModuleRepo = learning.ModuleRepo
type LessonRepo = learning.LessonRepo
type QuizRepo = learning.QuizRepo
type QuestionRepo = learning.QuestionRepo
type AnswerOptionRepo = learning.AnswerOptionRepo

type EnrollmentRepo = progress.EnrollmentRepo
type LessonCompletionRepo = progress.LessonCompletionRepo
type ModuleCompletionRepo = progress.ModuleCompletionRepo
type CourseCompletionRepo = progress.CourseCompletionRepo
type QuizCompletionRepo = progress.QuizCompletionRepo
type ProgressRowsRepo = progress.ProgressRowsRepo
type ProgressRow = progress.ProgressRow

func NewCreatorRepo(db *gorm.DB, baseLog *logger.Logger) CreatorRepo {
	return learning.NewCreatorRepo(db, baseLog)
}
func NewLearnerRepo(db *gorm.DB, baseLog *logger.Logger) LearnerRepo {
	return learning.NewLearnerRepo(db, baseLog)
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}
func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	return learning.NewModuleRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return learning.NewLessonRepo(db, baseLog)
}
func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return learning.NewQuizRepo(db, baseLog)
}
func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return learning.NewQuestionRepo(db, baseLog)
}
func NewAnswerOptionRepo(db *gorm.DB, baseLog *logger.Logger) AnswerOptionRepo {
	return learning.NewAnswerOptionRepo(db, baseLog)
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return progress.NewEnrollmentRepo(db, baseLog)
}
func NewLessonCompletionRepo(db *gorm.DB, baseLog *logger.Logger) LessonCompletionRepo {
	return progress.NewLessonCompletionRepo(db, baseLog)
}
func NewModuleCompletionRepo(db *gorm.DB, baseLog *logger.Logger) ModuleCompletionRepo {
	return progress.NewModuleCompletionRepo(db, baseLog)
}
func NewCourseCompletionRepo(db *gorm.DB, baseLog *logger.Logger) CourseCompletionRepo {
	return progress.NewCourseCompletionRepo(db, baseLog)
}
func NewQuizCompletionRepo(db *gorm.DB, baseLog *logger.Logger) QuizCompletionRepo {
	return progress.NewQuizCompletionRepo(db, baseLog)
}
func NewProgressRowsRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRowsRepo {
	return progress.NewProgressRowsRepo(db, baseLog)
}
