package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

// CourseCache holds authored course trees. Trees never change after authoring, so
// entries are only ever written once and expire by TTL.
type CourseCache interface {
	Get(ctx context.Context, courseID uuid.UUID) (*types.CourseTree, bool, error)
	Set(ctx context.Context, tree *types.CourseTree) error
}

const DefaultCourseTTL = 10 * time.Minute

func CourseKey(courseID uuid.UUID) string {
	return "course:tree:" + courseID.String()
}

type redisCourseCache struct {
	rdb *goredis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewRedisCourseCache(rdb *goredis.Client, ttl time.Duration, log *logger.Logger) CourseCache {
	if rdb == nil {
		return NewNoopCourseCache()
	}
	if ttl <= 0 {
		ttl = DefaultCourseTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &redisCourseCache{rdb: rdb, ttl: ttl, log: log.With("cache", "RedisCourseCache")}
}

func (c *redisCourseCache) Get(ctx context.Context, courseID uuid.UUID) (*types.CourseTree, bool, error) {
	raw, err := c.rdb.Get(ctx, CourseKey(courseID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get course tree: %w", err)
	}
	tree, err := decodeTree(raw)
	if err != nil {
		// A bad entry is treated as a miss and overwritten by the next Set.
		c.log.Warn("Dropping undecodable course tree", "course_id", courseID, "error", err)
		return nil, false, nil
	}
	return tree, true, nil
}

func (c *redisCourseCache) Set(ctx context.Context, tree *types.CourseTree) error {
	if tree == nil || tree.ID == uuid.Nil {
		return nil
	}
	raw, err := encodeTree(tree)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, CourseKey(tree.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set course tree: %w", err)
	}
	return nil
}

// encodeTree drops the per-learner counters; they are live values filled on read.
func encodeTree(tree *types.CourseTree) ([]byte, error) {
	cp := *tree
	cp.NumLearners, cp.NumCompleted = 0, 0
	return json.Marshal(&cp)
}

func decodeTree(raw []byte) (*types.CourseTree, error) {
	var tree types.CourseTree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	if tree.ID == uuid.Nil {
		return nil, errors.New("course tree without id")
	}
	return &tree, nil
}

type noopCourseCache struct{}

func NewNoopCourseCache() CourseCache { return noopCourseCache{} }

func (noopCourseCache) Get(context.Context, uuid.UUID) (*types.CourseTree, bool, error) {
	return nil, false, nil
}

func (noopCourseCache) Set(context.Context, *types.CourseTree) error { return nil }
