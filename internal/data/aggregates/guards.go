package aggregates

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/yungbote/coursebridge-backend/internal/domain/progress"
)

// Int32Position narrows an authored position, rejecting values outside the int32 range.
func Int32Position(field string, v int64) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ValidationError(fmt.Sprintf("%s %d does not fit in 32 bits", field, v))
	}
	return int32(v), nil
}

// RequireBelongs checks a client-supplied parent against the stored one.
func RequireBelongs(kind string, id, claimedParent, actualParent uuid.UUID) error {
	if claimedParent != actualParent {
		return ValidationError(fmt.Sprintf("%s %s does not belong to %s", kind, id, claimedParent))
	}
	return nil
}

// RequireComplete rejects an explicit completion request while children are outstanding.
func RequireComplete(total, done int64, message string) error {
	if !progress.Complete(total, done) {
		return ValidationError(message)
	}
	return nil
}
