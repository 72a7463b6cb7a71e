package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
)

func TestProgressEndToEnd(t *testing.T) {
	e := newEnv(t)
	c := e.author(t, "creator", "Intro", false, 2)
	e.enroll(t, "learner", c.CourseID)

	got, err := e.progress.GetCourseProgress(dbc(), "learner", c.CourseID)
	if err != nil {
		t.Fatalf("GetCourseProgress: %v", err)
	}
	if got.ProgressPercent != 0 || got.CourseCompleted || len(got.CompletedLessonIDs) != 0 {
		t.Fatalf("fresh enrollment: %+v", got)
	}

	e.completeLesson(t, "learner", c, 0, 0)
	got, err = e.progress.GetCourseProgress(dbc(), "learner", c.CourseID)
	if err != nil {
		t.Fatalf("GetCourseProgress: %v", err)
	}
	if got.ProgressPercent != 25.0 || got.CourseCompleted {
		t.Fatalf("after lesson A: %+v", got)
	}
	if pct, err := e.progress.GetProgressPercentage(dbc(), "learner", c.CourseID); err != nil || pct != 25 {
		t.Fatalf("percentage after lesson A: pct=%d err=%v", pct, err)
	}

	e.completeLesson(t, "learner", c, 0, 1)
	got, err = e.progress.GetCourseProgress(dbc(), "learner", c.CourseID)
	if err != nil {
		t.Fatalf("GetCourseProgress: %v", err)
	}
	if got.ProgressPercent != 100.0 || !got.CourseCompleted {
		t.Fatalf("after lesson B: %+v", got)
	}
	if len(got.CompletedLessonIDs) != 2 || got.CompletedLessonIDs[0] != c.Lessons[0][0] {
		t.Fatalf("completed lessons not in position order: %v", got.CompletedLessonIDs)
	}
	if len(got.CompletedModuleIDs) != 1 || got.CompletedModuleIDs[0] != c.Modules[0] {
		t.Fatalf("completed modules: %v", got.CompletedModuleIDs)
	}
	if pct, err := e.progress.GetProgressPercentage(dbc(), "learner", c.CourseID); err != nil || pct != 100 {
		t.Fatalf("percentage after lesson B: pct=%d err=%v", pct, err)
	}
}

func TestProgressAveragesLessonAndModuleRatios(t *testing.T) {
	e := newEnv(t)
	c := e.author(t, "creator", "Two modules", false, 2, 2)
	e.completeLesson(t, "learner", c, 0, 0)
	e.completeLesson(t, "learner", c, 0, 1)

	got, err := e.progress.GetCourseProgress(dbc(), "learner", c.CourseID)
	if err != nil {
		t.Fatalf("GetCourseProgress: %v", err)
	}
	// lessons 2/4 and modules 1/2
	if got.ProgressPercent != 50.0 {
		t.Fatalf("want 50.0, got %v", got.ProgressPercent)
	}
	if got.CourseCompleted {
		t.Fatalf("course should not be complete")
	}
}

func TestProgressNotFound(t *testing.T) {
	e := newEnv(t)
	c := e.author(t, "creator", "Intro", false, 1)

	_, err := e.progress.GetCourseProgress(dbc(), "stranger", c.CourseID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("non-enrolled learner: expected not_found, got %v", err)
	}
	_, err = e.progress.GetProgressPercentage(dbc(), "stranger", uuid.New())
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("missing course: expected not_found, got %v", err)
	}
	_, err = e.progress.GetCourseProgress(dbc(), "", c.CourseID)
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("missing learner id: expected validation, got %v", err)
	}
}

func TestGetAllCourseProgressGroupsAndDedupes(t *testing.T) {
	e := newEnv(t)
	first := e.author(t, "creator", "First", true, 3)
	second := e.author(t, "creator", "Second", true, 1, 1)

	e.enroll(t, "learner", first.CourseID)
	e.enroll(t, "learner", second.CourseID)
	for l := 0; l < 3; l++ {
		e.completeLesson(t, "learner", first, 0, l)
	}
	if _, err := e.completion.RecordQuizCompletion(context.Background(), domainagg.QuizCompletionInput{
		LearnerID: "learner", QuizID: first.Quizzes[0], Score: 1, TotalQuestions: 1,
	}); err != nil {
		t.Fatalf("RecordQuizCompletion: %v", err)
	}
	e.completeLesson(t, "learner", second, 1, 0)

	all, err := e.progress.GetAllCourseProgress(dbc(), "learner")
	if err != nil {
		t.Fatalf("GetAllCourseProgress: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 courses, got %d", len(all))
	}
	if all[0].CourseID != first.CourseID || all[0].CourseTitle != "First" {
		t.Fatalf("first course out of order: %+v", all[0])
	}

	p := all[0]
	if len(p.CompletedLessonIDs) != 3 || len(p.CompletedModuleIDs) != 1 || len(p.CompletedQuizIDs) != 1 {
		t.Fatalf("fan-out not deduplicated: %+v", p)
	}
	if p.ProgressPercent != 100 || !p.CourseCompleted {
		t.Fatalf("first course summary: %+v", p)
	}

	q := all[1]
	// lessons 1/2 and modules 1/2
	if q.ProgressPercent != 50 || q.CourseCompleted || len(q.CompletedQuizIDs) != 0 {
		t.Fatalf("second course summary: %+v", q)
	}

	single, err := e.progress.GetCourseProgress(dbc(), "learner", second.CourseID)
	if err != nil {
		t.Fatalf("GetCourseProgress: %v", err)
	}
	if single.ProgressPercent != q.ProgressPercent || single.CourseCompleted != q.CourseCompleted {
		t.Fatalf("single and grouped reads disagree: %+v vs %+v", single, q)
	}

	none, err := e.progress.GetAllCourseProgress(dbc(), "nobody")
	if err != nil || len(none) != 0 {
		t.Fatalf("unknown learner: %v %v", none, err)
	}
}

func TestCompletedLessonsAndEnrollment(t *testing.T) {
	e := newEnv(t)
	c := e.author(t, "creator", "Intro", false, 2)

	ok, err := e.progress.IsEnrolled(dbc(), "learner", c.CourseID)
	if err != nil || ok {
		t.Fatalf("IsEnrolled before: ok=%v err=%v", ok, err)
	}
	ids, err := e.progress.GetCompletedLessonIDs(dbc(), "learner", c.CourseID)
	if err != nil || ids == nil || len(ids) != 0 {
		t.Fatalf("GetCompletedLessonIDs before: ids=%v err=%v", ids, err)
	}

	e.completeLesson(t, "learner", c, 0, 1)

	if ok, err = e.progress.IsEnrolled(dbc(), "learner", c.CourseID); err != nil || !ok {
		t.Fatalf("completion should enroll: ok=%v err=%v", ok, err)
	}
	ids, err = e.progress.GetCompletedLessonIDs(dbc(), "learner", c.CourseID)
	if err != nil || len(ids) != 1 || ids[0] != c.Lessons[0][1] {
		t.Fatalf("GetCompletedLessonIDs after: ids=%v err=%v", ids, err)
	}
}

func TestProgressReadsTrimLearnerID(t *testing.T) {
	e := newEnv(t)
	c := e.author(t, "creator", "Intro", false, 2)
	e.completeLesson(t, "learner", c, 0, 0)

	if ok, err := e.progress.IsEnrolled(dbc(), " learner ", c.CourseID); err != nil || !ok {
		t.Fatalf("IsEnrolled padded: ok=%v err=%v", ok, err)
	}
	if pct, err := e.progress.GetProgressPercentage(dbc(), "learner\t", c.CourseID); err != nil || pct != 25 {
		t.Fatalf("percentage padded: pct=%d err=%v", pct, err)
	}
	all, err := e.progress.GetAllCourseProgress(dbc(), "  learner")
	if err != nil || len(all) != 1 {
		t.Fatalf("GetAllCourseProgress padded: len=%d err=%v", len(all), err)
	}
	if _, err := e.progress.GetCourseProgress(dbc(), "   ", c.CourseID); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("blank learner: expected validation, got %v", err)
	}
}
