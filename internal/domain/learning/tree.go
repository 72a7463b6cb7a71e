package learning

import "github.com/google/uuid"

// CourseTree is the full read view of an authored course. It is immutable once built,
// which makes it safe to cache.
type CourseTree struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	CreatorID    string        `json:"creatorId"`
	NumLearners  int64         `json:"numLearners"`
	NumCompleted int64         `json:"numCompleted"`
	Modules      []*ModuleTree `json:"modules"`
}

type ModuleTree struct {
	ID       uuid.UUID `json:"id"`
	CourseID uuid.UUID `json:"courseId"`
	Title    string    `json:"title"`
	Position int32     `json:"position"`
	Lessons  []*Lesson `json:"lessons"`
	Quiz     *QuizTree `json:"quiz"`
}

type QuizTree struct {
	ID        uuid.UUID       `json:"id"`
	ModuleID  uuid.UUID       `json:"moduleId"`
	Questions []*QuestionTree `json:"questions"`
}

type QuestionTree struct {
	ID           uuid.UUID       `json:"id"`
	QuizID       uuid.UUID       `json:"quizId"`
	QuestionText string          `json:"questionText"`
	Answers      []*AnswerOption `json:"answers"`
}

// CoursePreview is a listing row with creator-facing counts.
type CoursePreview struct {
	ID             uuid.UUID `json:"id" gorm:"column:id"`
	Title          string    `json:"title" gorm:"column:title"`
	Creator        string    `json:"creator" gorm:"column:creator"`
	NumEnrollments int64     `json:"numEnrollments" gorm:"column:num_enrollments"`
	NumCompletions int64     `json:"numCompletions" gorm:"column:num_completions"`
	NumModules     int64     `json:"numModules" gorm:"column:num_modules"`
}

type CreatedCourse struct {
	CourseID     uuid.UUID `json:"courseId" gorm:"column:course_id"`
	Title        string    `json:"title" gorm:"column:title"`
	NumLearners  int64     `json:"numLearners" gorm:"column:num_learners"`
	NumCompleted int64     `json:"numCompleted" gorm:"column:num_completed"`
}

type EnrolledCourse struct {
	CourseID         uuid.UUID `json:"courseId"`
	Title            string    `json:"title"`
	TotalModules     int64     `json:"totalModules"`
	CompletedModules int64     `json:"completedModules"`
	ProgressPercent  int64     `json:"progressPercent"`
	Completed        bool      `json:"completed"`
}

type UserCourses struct {
	CreatedCourses  []*CreatedCourse  `json:"createdCourses"`
	EnrolledCourses []*EnrolledCourse `json:"enrolledCourses"`
}

type PlatformCounts struct {
	NumCourses  int64 `json:"numCourses"`
	NumLearners int64 `json:"numLearners"`
	NumCreators int64 `json:"numCreators"`
}

// CourseProgress is the per learner, per course progress summary.
type CourseProgress struct {
	CourseID           uuid.UUID   `json:"courseId"`
	CourseTitle        string      `json:"courseTitle,omitempty"`
	CompletedLessonIDs []uuid.UUID `json:"completedLessonIds"`
	CompletedQuizIDs   []uuid.UUID `json:"completedQuizIds"`
	CompletedModuleIDs []uuid.UUID `json:"completedModuleIds"`
	ProgressPercent    float64     `json:"progressPercent"`
	CourseCompleted    bool        `json:"courseCompleted"`
}
