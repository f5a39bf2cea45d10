package implementation

import (
	"context"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/mapper"
	"persona-chat-be/internal/model"
	"persona-chat-be/internal/repository/contract"
	"persona-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UserActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityMapper
}

func NewUserActivityRepository(db *gorm.DB) contract.UserActivityRepository {
	return &UserActivityRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityMapper(),
	}
}

func (r *UserActivityRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserActivityRepositoryImpl) Create(ctx context.Context, activity *entity.UserActivity) error {
	m, err := r.mapper.ToModel(activity)
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
	*activity = *saved
	return nil
}

func (r *UserActivityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserActivity, error) {
	var models []*model.UserActivity
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UserActivity, len(models))
	for i, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
