package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/http/response"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type EnrollmentHandler struct {
	log        *logger.Logger
	enrollment domainagg.EnrollmentAggregate
}

func NewEnrollmentHandler(log *logger.Logger, enrollment domainagg.EnrollmentAggregate) *EnrollmentHandler {
	h := &EnrollmentHandler{enrollment: enrollment}
	if log != nil {
		h.log = log.With("handler", "EnrollmentHandler")
	}
	return h
}

// POST /api/enroll
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	ids, err := parseUUIDs("courseId", req.CourseID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	res, err := h.enrollment.Enroll(c.Request.Context(), domainagg.EnrollInput{LearnerID: req.LearnerID, CourseID: ids[0]})
	if err != nil {
		fail(c, h.log, "Enroll", err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Course joined successfully", "courseId": res.CourseID})
}
