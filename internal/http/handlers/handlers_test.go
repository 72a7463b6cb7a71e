package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

type stubCompletion struct {
	lessonIn domainagg.LessonCompletionInput
	quizIn   domainagg.QuizCompletionInput
	result   domainagg.CompletionResult
	err      error
}

func (s *stubCompletion) Contract() domainagg.Contract { return domainagg.CompletionAggregateContract }

func (s *stubCompletion) RecordLessonCompletion(_ context.Context, in domainagg.LessonCompletionInput) (domainagg.CompletionResult, error) {
	s.lessonIn = in
	return s.result, s.err
}

func (s *stubCompletion) RecordModuleCompletion(context.Context, domainagg.ModuleCompletionInput) (domainagg.CompletionResult, error) {
	return s.result, s.err
}

func (s *stubCompletion) RecordCourseCompletion(context.Context, domainagg.CourseCompletionInput) (domainagg.CompletionResult, error) {
	return s.result, s.err
}

func (s *stubCompletion) RecordQuizCompletion(_ context.Context, in domainagg.QuizCompletionInput) (domainagg.QuizCompletionResult, error) {
	s.quizIn = in
	return domainagg.QuizCompletionResult{QuizID: in.QuizID}, s.err
}

type stubProgress struct {
	progress *types.CourseProgress
	percent  int
	err      error
}

func (s *stubProgress) GetCourseProgress(dbctx.Context, string, uuid.UUID) (*types.CourseProgress, error) {
	return s.progress, s.err
}

func (s *stubProgress) GetProgressPercentage(dbctx.Context, string, uuid.UUID) (int, error) {
	return s.percent, s.err
}

func (s *stubProgress) GetAllCourseProgress(dbctx.Context, string) ([]*types.CourseProgress, error) {
	return []*types.CourseProgress{}, s.err
}

func (s *stubProgress) GetCompletedLessonIDs(dbctx.Context, string, uuid.UUID) ([]uuid.UUID, error) {
	return []uuid.UUID{}, s.err
}

func (s *stubProgress) IsEnrolled(dbctx.Context, string, uuid.UUID) (bool, error) {
	return s.err == nil, s.err
}

func do(t *testing.T, r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestCompleteLessonHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubCompletion{result: domainagg.CompletionResult{LessonRecorded: true, ModuleCompleted: true}}
	h := NewCompletionHandler(newTestLogger(t), stub)
	r := gin.New()
	r.POST("/api/complete-lesson", h.CompleteLesson)

	lessonID, moduleID, courseID := uuid.New(), uuid.New(), uuid.New()
	rec := do(t, r, http.MethodPost, "/api/complete-lesson", map[string]string{
		"learnerId": "learner-1",
		"lessonId":  lessonID.String(),
		"moduleId":  moduleID.String(),
		"courseId":  courseID.String(),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["moduleCompleted"] != true || body["courseCompleted"] != false || body["message"] != "Lesson marked complete" {
		t.Fatalf("unexpected body: %v", body)
	}
	if stub.lessonIn.LessonID != lessonID || stub.lessonIn.ModuleID != moduleID || stub.lessonIn.CourseID != courseID {
		t.Fatalf("ids not forwarded: %+v", stub.lessonIn)
	}
}

func TestCompleteLessonRejectsMalformedInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCompletionHandler(newTestLogger(t), &stubCompletion{})
	r := gin.New()
	r.POST("/api/complete-lesson", h.CompleteLesson)

	rec := do(t, r, http.MethodPost, "/api/complete-lesson", map[string]string{"learnerId": "l", "lessonId": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d", rec.Code)
	}
	errObj, _ := decode(t, rec)["error"].(map[string]any)
	if errObj["code"] != "invalid_request" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestCompleteModuleMapsBusinessRuleTo400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubCompletion{err: domainagg.Invalid("Learning.RecordModuleCompletion", "not all lessons completed")}
	h := NewCompletionHandler(newTestLogger(t), stub)
	r := gin.New()
	r.POST("/api/complete-module", h.CompleteModule)

	rec := do(t, r, http.MethodPost, "/api/complete-module", map[string]string{
		"learnerId": "learner-1",
		"moduleId":  uuid.NewString(),
		"courseId":  uuid.NewString(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d", rec.Code)
	}
	errObj, _ := decode(t, rec)["error"].(map[string]any)
	if errObj["message"] != "not all lessons completed" || errObj["code"] != "validation" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestCompleteQuizForwardsAnswers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubCompletion{}
	h := NewCompletionHandler(newTestLogger(t), stub)
	r := gin.New()
	r.POST("/api/complete-quiz", h.CompleteQuiz)

	quizID, questionID, answerID := uuid.New(), uuid.New(), uuid.New()
	rec := do(t, r, http.MethodPost, "/api/complete-quiz", map[string]any{
		"quizId":         quizID.String(),
		"learnerId":      "learner-1",
		"score":          3,
		"totalQuestions": 4,
		"answers":        map[string]string{questionID.String(): answerID.String()},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if stub.quizIn.QuizID != quizID || stub.quizIn.Score != 3 || stub.quizIn.TotalQuestions != 4 {
		t.Fatalf("input not forwarded: %+v", stub.quizIn)
	}
	if stub.quizIn.Answers[questionID] != answerID {
		t.Fatalf("answers not forwarded: %+v", stub.quizIn.Answers)
	}

	stub.err = domainagg.NotFound("Learning.RecordQuizCompletion", "quiz not found")
	rec = do(t, r, http.MethodPost, "/api/complete-quiz", map[string]any{
		"quizId": uuid.NewString(), "learnerId": "learner-1", "score": 0, "totalQuestions": 1,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown quiz: got=%d", rec.Code)
	}
}

func TestProgressHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lessonID := uuid.New()
	stub := &stubProgress{
		progress: &types.CourseProgress{
			CompletedLessonIDs: []uuid.UUID{lessonID},
			CompletedQuizIDs:   []uuid.UUID{},
			CompletedModuleIDs: []uuid.UUID{},
			ProgressPercent:    25,
		},
		percent: 25,
	}
	h := NewProgressHandler(newTestLogger(t), stub)
	r := gin.New()
	r.GET("/api/course-progress", h.GetCourseProgress)
	r.GET("/api/course-progress/percentage", h.GetProgressPercentage)
	r.GET("/api/is-enrolled", h.IsEnrolled)

	q := "?learnerId=learner-1&courseId=" + uuid.NewString()
	rec := do(t, r, http.MethodGet, "/api/course-progress"+q, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["progressPercent"] != 25.0 || body["courseCompleted"] != false {
		t.Fatalf("unexpected body: %v", body)
	}
	if ids, _ := body["completedLessonIds"].([]any); len(ids) != 1 || ids[0] != lessonID.String() {
		t.Fatalf("unexpected lesson ids: %v", body["completedLessonIds"])
	}

	rec = do(t, r, http.MethodGet, "/api/course-progress/percentage"+q, nil)
	if rec.Body.String() != `{"progressPercent":25}` {
		t.Fatalf("unexpected percentage body: %s", rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, "/api/is-enrolled"+q, nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "true" {
		t.Fatalf("unexpected is-enrolled response: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, "/api/course-progress?learnerId=learner-1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing courseId: got=%d", rec.Code)
	}

	stub.err = domainagg.NotFound("Progress.GetCourseProgress", "learner is not enrolled")
	rec = do(t, r, http.MethodGet, "/api/course-progress"+q, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("not enrolled: got=%d", rec.Code)
	}
}

func TestHealthCheckWithoutDB(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler(nil).HealthCheck)
	rec := do(t, r, http.MethodGet, "/healthcheck", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
}
