package domain

import "github.com/yungbote/coursebridge-backend/internal/domain/learning"

type Creator = learning.Creator
type Learner = learning.Learner

type Course = learning.Course
type Module = learning.Module
type Lesson = learning.Lesson
type Quiz = learning.Quiz
type Question = learning.Question
type AnswerOption = learning.AnswerOption

type Enrollment = learning.Enrollment
type LessonCompletion = learning.LessonCompletion
type ModuleCompletion = learning.ModuleCompletion
type QuizCompletion = learning.QuizCompletion
type CourseCompletion = learning.CourseCompletion

type CourseTree = learning.CourseTree
type ModuleTree = learning.ModuleTree
type QuizTree = learning.QuizTree
type QuestionTree = learning.QuestionTree
type CoursePreview = learning.CoursePreview
type CreatedCourse = learning.CreatedCourse
type EnrolledCourse = learning.EnrolledCourse
type UserCourses = learning.UserCourses
type PlatformCounts = learning.PlatformCounts
type CourseProgress = learning.CourseProgress

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Creator{},
		&Learner{},

		&Course{},
		&Module{},
		&Lesson{},
		&Quiz{},
		&Question{},
		&AnswerOption{},

		&Enrollment{},
		&LessonCompletion{},
		&ModuleCompletion{},
		&QuizCompletion{},
		&CourseCompletion{},
	}
}
