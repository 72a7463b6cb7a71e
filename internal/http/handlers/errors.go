package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/coursebridge-backend/internal/domain/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/http/response"
	"github.com/yungbote/coursebridge-backend/internal/platform/apierr"
	"github.com/yungbote/coursebridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

var errUnexpected = errors.New("internal server error")

// statusForError maps an aggregate error code onto an HTTP status.
func statusForError(err error) int {
	switch domainagg.CodeOf(err) {
	case domainagg.CodeValidation, domainagg.CodeInvariantViolation, domainagg.CodePreconditionFailed:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// toAPIError converts any service or aggregate error into the envelope the client sees.
// Server side failures keep their cause out of the message.
func toAPIError(err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	status := statusForError(err)
	code := string(domainagg.CodeOf(err))
	if code == "" {
		code = string(domainagg.CodeInternal)
		if status == http.StatusServiceUnavailable {
			code = string(domainagg.CodeRetryable)
		}
	}
	if status >= http.StatusInternalServerError {
		return apierr.New(status, code, errUnexpected)
	}
	return apierr.New(status, code, errors.New(domainagg.MessageOf(err)))
}

// fail logs err against op and writes the error envelope.
func fail(c *gin.Context, log *logger.Logger, op string, err error) {
	ae := toAPIError(err)
	if log != nil {
		fields := append([]interface{}{"op", op, "status", ae.Status, "error", err}, ctxutil.LogFields(c.Request.Context())...)
		if ae.Status >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Debug("request rejected", fields...)
		}
	}
	response.RespondError(c, ae.Status, ae.Code, ae.Err)
}

func badRequest(c *gin.Context, code string, err error) {
	response.RespondError(c, http.StatusBadRequest, code, err)
}
