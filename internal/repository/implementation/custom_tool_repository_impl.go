package implementation

import (
	"context"
	"errors"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/mapper"
	"persona-chat-be/internal/model"
	"persona-chat-be/internal/repository/contract"
	"persona-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomToolRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ToolMapper
}

func NewCustomToolRepository(db *gorm.DB) contract.CustomToolRepository {
	return &CustomToolRepositoryImpl{
		db:     db,
		mapper: mapper.NewToolMapper(),
	}
}

func (r *CustomToolRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CustomToolRepositoryImpl) Create(ctx context.Context, tool *entity.CustomTool) error {
	m, err := r.mapper.ToModel(tool)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	saved, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*tool = *saved
	return nil
}

func (r *CustomToolRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CustomTool{}, id).Error
}

func (r *CustomToolRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomTool, error) {
	var m model.CustomTool
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *CustomToolRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomTool, error) {
	var models []*model.CustomTool
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CustomTool, len(models))
	for i, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
