package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/http/response"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
	"github.com/yungbote/coursebridge-backend/internal/services"
)

type CourseHandlerDeps struct {
	Log       *logger.Logger
	Authoring domainagg.AuthoringAggregate
	Courses   services.CourseService
}

type CourseHandler struct {
	log       *logger.Logger
	authoring domainagg.AuthoringAggregate
	courses   services.CourseService
}

func NewCourseHandlerWithDeps(deps CourseHandlerDeps) *CourseHandler {
	h := &CourseHandler{authoring: deps.Authoring, courses: deps.Courses}
	if deps.Log != nil {
		h.log = deps.Log.With("handler", "CourseHandler")
	}
	return h
}

// POST /api/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	res, err := h.authoring.CreateCourse(c.Request.Context(), req.input())
	if err != nil {
		fail(c, h.log, "CreateCourse", err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Course created successfully", "courseId": res.CourseID})
}

// GET /api/course?courseId=
func (h *CourseHandler) GetCourse(c *gin.Context) {
	var q courseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	ids, err := parseUUIDs("courseId", q.CourseID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	tree, err := h.courses.GetCourse(readCtx(c), ids[0])
	if err != nil {
		fail(c, h.log, "GetCourse", err)
		return
	}
	response.RespondOK(c, tree)
}

// GET /api/course-creator?courseId=
func (h *CourseHandler) GetCourseCreator(c *gin.Context) {
	var q courseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	ids, err := parseUUIDs("courseId", q.CourseID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	creatorID, err := h.courses.GetCourseCreator(readCtx(c), ids[0])
	if err != nil {
		fail(c, h.log, "GetCourseCreator", err)
		return
	}
	response.RespondOK(c, gin.H{"creatorId": creatorID})
}

// GET /api/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.ListCourses(readCtx(c))
	if err != nil {
		fail(c, h.log, "ListCourses", err)
		return
	}
	response.RespondOK(c, courses)
}

// GET /api/top-courses
func (h *CourseHandler) TopCourses(c *gin.Context) {
	courses, err := h.courses.TopCourses(readCtx(c), services.TopCoursesLimit)
	if err != nil {
		fail(c, h.log, "TopCourses", err)
		return
	}
	response.RespondOK(c, courses)
}

// GET /api/user-courses?userId=
func (h *CourseHandler) GetUserCourses(c *gin.Context) {
	var q userQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	out, err := h.courses.GetUserCourses(readCtx(c), q.UserID)
	if err != nil {
		fail(c, h.log, "GetUserCourses", err)
		return
	}
	response.RespondOK(c, out)
}

type learnerRef struct {
	LearnerID string `json:"learnerId"`
}

// GET /api/learners-by-course?courseId=
func (h *CourseHandler) LearnersByCourse(c *gin.Context) {
	var q courseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	ids, err := parseUUIDs("courseId", q.CourseID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	learners, err := h.courses.LearnersByCourse(readCtx(c), ids[0])
	if err != nil {
		fail(c, h.log, "LearnersByCourse", err)
		return
	}
	out := make([]learnerRef, 0, len(learners))
	for _, id := range learners {
		out = append(out, learnerRef{LearnerID: id})
	}
	response.RespondOK(c, out)
}

// GET /api/num-completed?courseId=
func (h *CourseHandler) NumCompleted(c *gin.Context) {
	var q courseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	ids, err := parseUUIDs("courseId", q.CourseID)
	if err != nil {
		badRequest(c, "invalid_request", err)
		return
	}
	n, err := h.courses.NumCompleted(readCtx(c), ids[0])
	if err != nil {
		fail(c, h.log, "NumCompleted", err)
		return
	}
	response.RespondOK(c, gin.H{"numCompleted": n})
}

// GET /api/counts
func (h *CourseHandler) Counts(c *gin.Context) {
	counts, err := h.courses.Counts(readCtx(c))
	if err != nil {
		fail(c, h.log, "Counts", err)
		return
	}
	response.RespondOK(c, counts)
}
