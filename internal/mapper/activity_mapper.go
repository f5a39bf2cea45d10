package mapper

import (
	"encoding/json"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/model"

	"gorm.io/datatypes"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToModel(a *entity.UserActivity) (*model.UserActivity, error) {
	if a == nil {
		return nil, nil
	}

	metadata := a.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	return &model.UserActivity{
		Id:        a.Id,
		UserId:    a.UserId,
		Kind:      a.Kind,
		Metadata:  datatypes.JSON(raw),
		CreatedAt: a.CreatedAt,
	}, nil
}

func (m *ActivityMapper) ToEntity(a *model.UserActivity) (*entity.UserActivity, error) {
	if a == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		if err := json.Unmarshal(a.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return &entity.UserActivity{
		Id:        a.Id,
		UserId:    a.UserId,
		Kind:      a.Kind,
		Metadata:  metadata,
		CreatedAt: a.CreatedAt,
	}, nil
}
