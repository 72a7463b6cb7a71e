package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursebridge-backend/internal/http/response"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
	"github.com/yungbote/coursebridge-backend/internal/services"
)

type ProgressHandler struct {
	log      *logger.Logger
	progress services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progress services.ProgressService) *ProgressHandler {
	h := &ProgressHandler{progress: progress}
	if log != nil {
		h.log = log.With("handler", "ProgressHandler")
	}
	return h
}

func bindLearnerCourse(c *gin.Context) (string, uuid.UUID, bool) {
	var q learnerCourseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid_request", err)
		return "", uuid.Nil, false
	}
	ids, err := parseUUIDs("courseId", q.CourseID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return "", uuid.Nil, false
	}
	return q.LearnerID, ids[0], true
}

// GET /api/course-progress?learnerId=&courseId=
func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
	learnerID, courseID, ok := bindLearnerCourse(c)
	if !ok {
		return
	}
	out, err := h.progress.GetCourseProgress(readCtx(c), learnerID, courseID)
	if err != nil {
		fail(c, h.log, "GetCourseProgress", err)
		return
	}
	response.RespondOK(c, gin.H{
		"completedLessonIds": out.CompletedLessonIDs,
		"completedQuizIds":   out.CompletedQuizIDs,
		"completedModuleIds": out.CompletedModuleIDs,
		"progressPercent":    out.ProgressPercent,
		"courseCompleted":    out.CourseCompleted,
	})
}

// GET /api/course-progress/percentage?learnerId=&courseId=
func (h *ProgressHandler) GetProgressPercentage(c *gin.Context) {
	learnerID, courseID, ok := bindLearnerCourse(c)
	if !ok {
		return
	}
	pct, err := h.progress.GetProgressPercentage(readCtx(c), learnerID, courseID)
	if err != nil {
		fail(c, h.log, "GetProgressPercentage", err)
		return
	}
	response.RespondOK(c, gin.H{"progressPercent": pct})
}

// GET /api/all-course-progress?learnerId=
func (h *ProgressHandler) GetAllCourseProgress(c *gin.Context) {
	var q learnerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	out, err := h.progress.GetAllCourseProgress(readCtx(c), q.LearnerID)
	if err != nil {
		fail(c, h.log, "GetAllCourseProgress", err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/completed-lessons?learnerId=&courseId=
func (h *ProgressHandler) GetCompletedLessons(c *gin.Context) {
	learnerID, courseID, ok := bindLearnerCourse(c)
	if !ok {
		return
	}
	ids, err := h.progress.GetCompletedLessonIDs(readCtx(c), learnerID, courseID)
	if err != nil {
		fail(c, h.log, "GetCompletedLessons", err)
		return
	}
	response.RespondOK(c, gin.H{"lessonIds": ids})
}

// GET /api/is-enrolled?learnerId=&courseId=
func (h *ProgressHandler) IsEnrolled(c *gin.Context) {
	learnerID, courseID, ok := bindLearnerCourse(c)
	if !ok {
		return
	}
	enrolled, err := h.progress.IsEnrolled(readCtx(c), learnerID, courseID)
	if err != nil {
		fail(c, h.log, "IsEnrolled", err)
		return
	}
	response.RespondOK(c, enrolled)
}
