package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/http/response"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type CompletionHandler struct {
	log        *logger.Logger
	completion domainagg.CompletionAggregate
}

func NewCompletionHandler(log *logger.Logger, completion domainagg.CompletionAggregate) *CompletionHandler {
	h := &CompletionHandler{completion: completion}
	if log != nil {
		h.log = log.With("handler", "CompletionHandler")
	}
	return h
}

// POST /api/complete-lesson
func (h *CompletionHandler) CompleteLesson(c *gin.Context) {
	var req lessonCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	ids, err := parseUUIDs("lessonId", req.LessonID, "moduleId", req.ModuleID, "courseId", req.CourseID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	res, err := h.completion.RecordLessonCompletion(c.Request.Context(), domainagg.LessonCompletionInput{
		LearnerID: req.LearnerID,
		LessonID:  ids[0],
		ModuleID:  ids[1],
		CourseID:  ids[2],
	})
	if err != nil {
		fail(c, h.log, "CompleteLesson", err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message":         "Lesson marked complete",
		"moduleCompleted": res.ModuleCompleted,
		"courseCompleted": res.CourseCompleted,
	})
}

// POST /api/complete-module
func (h *CompletionHandler) CompleteModule(c *gin.Context) {
	var req moduleCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	ids, err := parseUUIDs("moduleId", req.ModuleID, "courseId", req.CourseID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	res, err := h.completion.RecordModuleCompletion(c.Request.Context(), domainagg.ModuleCompletionInput{
		LearnerID: req.LearnerID,
		ModuleID:  ids[0],
		CourseID:  ids[1],
	})
	if err != nil {
		fail(c, h.log, "CompleteModule", err)
		return
	}
	response.RespondCreated(c, gin.H{"moduleCompleted": res.ModuleCompleted, "courseCompleted": res.CourseCompleted})
}

// POST /api/complete-course
func (h *CompletionHandler) CompleteCourse(c *gin.Context) {
	var req courseCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	ids, err := parseUUIDs("courseId", req.CourseID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	res, err := h.completion.RecordCourseCompletion(c.Request.Context(), domainagg.CourseCompletionInput{
		LearnerID: req.LearnerID,
		CourseID:  ids[0],
	})
	if err != nil {
		fail(c, h.log, "CompleteCourse", err)
		return
	}
	response.RespondCreated(c, gin.H{"courseCompleted": res.CourseCompleted})
}

// POST /api/complete-quiz
func (h *CompletionHandler) CompleteQuiz(c *gin.Context) {
	var req quizCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	ids, err := parseUUIDs("quizId", req.QuizID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	answers, err := req.answers()
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	if _, err := h.completion.RecordQuizCompletion(c.Request.Context(), domainagg.QuizCompletionInput{
		LearnerID:      req.LearnerID,
		QuizID:         ids[0],
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Answers:        answers,
	}); err != nil {
		fail(c, h.log, "CompleteQuiz", err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Quiz completed"})
}
