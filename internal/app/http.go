package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/http"
	httpH "github.com/yungbote/coursebridge-backend/internal/http/handlers"
	"github.com/yungbote/coursebridge-backend/internal/observability"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Course     *httpH.CourseHandler
	Enrollment *httpH.EnrollmentHandler
	Completion *httpH.CompletionHandler
	Progress   *httpH.ProgressHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, aggs Aggregates, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		Course: httpH.NewCourseHandlerWithDeps(httpH.CourseHandlerDeps{
			Log:       log,
			Authoring: aggs.Authoring,
			Courses:   svcs.Course,
		}),
		Enrollment: httpH.NewEnrollmentHandler(log, aggs.Enrollment),
		Completion: httpH.NewCompletionHandler(log, aggs.Completion),
		Progress:   httpH.NewProgressHandler(log, svcs.Progress),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       cfg.ServiceName,
		Tracing:           cfg.OtelEnabled,
		CORSOrigins:       cfg.CORSOrigins(),
		CourseHandler:     handlers.Course,
		EnrollmentHandler: handlers.Enrollment,
		CompletionHandler: handlers.Completion,
		ProgressHandler:   handlers.Progress,
		HealthHandler:     handlers.Health,
	})
}
