package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
)

func readCtx(c *gin.Context) dbctx.Context {
	return dbctx.New(c.Request.Context())
}

// parseUUIDs parses ids in order, naming the first invalid one.
func parseUUIDs(named ...string) ([]uuid.UUID, error) {
	if len(named)%2 != 0 {
		return nil, fmt.Errorf("parseUUIDs: odd argument count")
	}
	out := make([]uuid.UUID, 0, len(named)/2)
	for i := 0; i < len(named); i += 2 {
		id, err := uuid.Parse(named[i+1])
		if err != nil || id == uuid.Nil {
			return nil, fmt.Errorf("invalid %s", named[i])
		}
		out = append(out, id)
	}
	return out, nil
}
