package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/coursebridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursebridge-backend/internal/http/middleware"
	"github.com/yungbote/coursebridge-backend/internal/observability"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	Tracing     bool
	CORSOrigins []string

	CourseHandler     *httpH.CourseHandler
	EnrollmentHandler *httpH.EnrollmentHandler
	CompletionHandler *httpH.CompletionHandler
	ProgressHandler   *httpH.ProgressHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, "/metrics", "/healthcheck"))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")

	// Courses
	if h := cfg.CourseHandler; h != nil {
		api.POST("/courses", h.CreateCourse)
		api.POST("/create-course", h.CreateCourse)
		api.GET("/course", h.GetCourse)
		api.GET("/course-creator", h.GetCourseCreator)
		api.GET("/courses", h.ListCourses)
		api.GET("/top-courses", h.TopCourses)
		api.GET("/user-courses", h.GetUserCourses)
		api.GET("/learners-by-course", h.LearnersByCourse)
		api.GET("/num-completed", h.NumCompleted)
		api.GET("/counts", h.Counts)
	}

	// Enrollment
	if h := cfg.EnrollmentHandler; h != nil {
		api.POST("/enroll", h.Enroll)
	}

	// Completion
	if h := cfg.CompletionHandler; h != nil {
		api.POST("/complete-lesson", h.CompleteLesson)
		api.POST("/complete-module", h.CompleteModule)
		api.POST("/complete-course", h.CompleteCourse)
		api.POST("/complete-quiz", h.CompleteQuiz)
	}

	// Progress
	if h := cfg.ProgressHandler; h != nil {
		api.GET("/course-progress", h.GetCourseProgress)
		api.GET("/course-progress/percentage", h.GetProgressPercentage)
		api.GET("/all-course-progress", h.GetAllCourseProgress)
		api.GET("/completed-lessons", h.GetCompletedLessons)
		api.GET("/is-enrolled", h.IsEnrolled)
	}

	return r
}
