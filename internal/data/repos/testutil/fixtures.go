package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
)

// SeededCourse is a course tree written directly through gorm.
type SeededCourse struct {
	Course  *types.Course
	Modules []*types.Module
	// Lessons[i] holds the lessons of Modules[i].
	Lessons [][]*types.Lesson
}

func (s *SeededCourse) AllLessons() []*types.Lesson {
	var out []*types.Lesson
	for _, ls := range s.Lessons {
		out = append(out, ls...)
	}
	return out
}

func SeedCreator(tb testing.TB, ctx context.Context, tx *gorm.DB, id string) *types.Creator {
	tb.Helper()
	c := &types.Creator{ID: id}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed creator: %v", err)
	}
	return c
}

func SeedLearner(tb testing.TB, ctx context.Context, tx *gorm.DB, id string) *types.Learner {
	tb.Helper()
	l := &types.Learner{ID: id}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed learner: %v", err)
	}
	return l
}

// SeedCourseTree creates a course with one module per entry of lessonsPerModule, each
// holding that many lessons.
func SeedCourseTree(tb testing.TB, ctx context.Context, tx *gorm.DB, creatorID string, lessonsPerModule ...int) *SeededCourse {
	tb.Helper()
	course := &types.Course{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Title:       "course",
		Description: "desc",
	}
	if err := tx.WithContext(ctx).Create(course).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	out := &SeededCourse{Course: course}
	for i, n := range lessonsPerModule {
		m := &types.Module{
			ID:       uuid.New(),
			CourseID: course.ID,
			Title:    fmt.Sprintf("m%d", i),
			Position: int32(i),
		}
		if err := tx.WithContext(ctx).Create(m).Error; err != nil {
			tb.Fatalf("seed module: %v", err)
		}
		lessons := make([]*types.Lesson, 0, n)
		for j := 0; j < n; j++ {
			l := &types.Lesson{
				ID:       uuid.New(),
				ModuleID: m.ID,
				Title:    fmt.Sprintf("m%d-l%d", i, j),
				Content:  "content",
				Position: int32(j),
			}
			if err := tx.WithContext(ctx).Create(l).Error; err != nil {
				tb.Fatalf("seed lesson: %v", err)
			}
			lessons = append(lessons, l)
		}
		out.Modules = append(out.Modules, m)
		out.Lessons = append(out.Lessons, lessons)
	}
	return out
}

// SeedQuiz attaches a quiz with the given number of two-option questions to a module.
func SeedQuiz(tb testing.TB, ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, questions int) *types.Quiz {
	tb.Helper()
	q := &types.Quiz{ID: uuid.New(), ModuleID: moduleID}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	for i := 0; i < questions; i++ {
		qq := &types.Question{ID: uuid.New(), QuizID: q.ID, QuestionText: fmt.Sprintf("q%d", i), Position: int32(i)}
		if err := tx.WithContext(ctx).Create(qq).Error; err != nil {
			tb.Fatalf("seed question: %v", err)
		}
		for j, correct := range []bool{true, false} {
			a := &types.AnswerOption{
				ID:         uuid.New(),
				QuestionID: qq.ID,
				AnswerText: fmt.Sprintf("a%d", j),
				IsCorrect:  correct,
				Position:   int32(j),
			}
			if err := tx.WithContext(ctx).Create(a).Error; err != nil {
				tb.Fatalf("seed answer option: %v", err)
			}
		}
	}
	return q
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, learnerID string, courseID uuid.UUID) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{LearnerID: learnerID, CourseID: courseID}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedLessonCompletion(tb testing.TB, ctx context.Context, tx *gorm.DB, learnerID string, lessonID uuid.UUID) {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(&types.LessonCompletion{LearnerID: learnerID, LessonID: lessonID}).Error; err != nil {
		tb.Fatalf("seed lesson completion: %v", err)
	}
}

func SeedModuleCompletion(tb testing.TB, ctx context.Context, tx *gorm.DB, learnerID string, moduleID uuid.UUID) {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(&types.ModuleCompletion{LearnerID: learnerID, ModuleID: moduleID}).Error; err != nil {
		tb.Fatalf("seed module completion: %v", err)
	}
}

func PtrString(s string) *string { return &s }
