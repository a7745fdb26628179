package repository

import (
	"context"

	"ElectionSeed/internal/interfaces"
	"ElectionSeed/internal/model"

	"gorm.io/gorm"
)

type importRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) interfaces.ImportRunRepository {
	return &importRunRepository{db: db}
}

func (r *importRunRepository) Create(ctx context.Context, run *model.ImportRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Finish 回写状态、文件清单、行数、错误与结束时间
func (r *importRunRepository) Finish(ctx context.Context, run *model.ImportRun) error {
	return r.db.WithContext(ctx).Model(&model.ImportRun{}).
		Where("id = ?", run.ID).
		Updates(map[string]interface{}{
			"status":      run.Status,
			"files":       run.Files,
			"counts":      run.Counts,
			"error":       run.Error,
			"finished_at": run.FinishedAt,
		}).Error
}

func (r *importRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.ImportRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var runs []*model.ImportRun
	if err := r.db.WithContext(ctx).Order("started_at DESC, id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
