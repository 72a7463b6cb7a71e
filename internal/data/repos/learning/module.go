package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type ModuleRepo interface {
	Create(dbc dbctx.Context, rows []*types.Module) ([]*types.Module, error)
	// GetByID returns (nil, nil) when the module does not exist.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Module, error)
	ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Module, error)
	CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, log *logger.Logger) ModuleRepo {
	return &moduleRepo{db: db, log: log.With("repo", "ModuleRepo")}
}

func (r *moduleRepo) Create(dbc dbctx.Context, rows []*types.Module) ([]*types.Module, error) {
	if len(rows) == 0 {
		return []*types.Module{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *moduleRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Module, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Module
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *moduleRepo) ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Module, error) {
	out := []*types.Module{}
	if courseID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *moduleRepo) CountByCourseID(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.Module{}).
		Where("course_id = ?", courseID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
