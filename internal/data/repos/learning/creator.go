package learning

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type CreatorRepo interface {
	// Ensure creates the creator if absent and reports whether a row was inserted.
	Ensure(dbc dbctx.Context, id string) (bool, error)
	Count(dbc dbctx.Context) (int64, error)
}

type creatorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCreatorRepo(db *gorm.DB, log *logger.Logger) CreatorRepo {
	return &creatorRepo{db: db, log: log.With("repo", "CreatorRepo")}
}

func (r *creatorRepo) Ensure(dbc dbctx.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, fmt.Errorf("missing creator_id")
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.Creator{ID: id})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *creatorRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Creator{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
