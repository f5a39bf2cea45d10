package mapper

import (
	"encoding/json"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/model"
	"persona-chat-be/pkg/extract"

	"gorm.io/datatypes"
)

type ToolMapper struct{}

func NewToolMapper() *ToolMapper {
	return &ToolMapper{}
}

func (m *ToolMapper) ToEntity(t *model.CustomTool) (*entity.CustomTool, error) {
	if t == nil {
		return nil, nil
	}

	var docs []extract.FileDescriptor
	if len(t.TrainingDocs) > 0 {
		if err := json.Unmarshal(t.TrainingDocs, &docs); err != nil {
			return nil, err
		}
	}

	return &entity.CustomTool{
		Id:           t.Id,
		UserId:       t.UserId,
		Name:         t.Name,
		Prompt:       t.Prompt,
		TrainingDocs: docs,
		LogoURL:      t.LogoURL,
		CreatedAt:    t.CreatedAt,
	}, nil
}

func (m *ToolMapper) ToModel(t *entity.CustomTool) (*model.CustomTool, error) {
	if t == nil {
		return nil, nil
	}

	docs := t.TrainingDocs
	if docs == nil {
		docs = []extract.FileDescriptor{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}

	return &model.CustomTool{
		Id:           t.Id,
		UserId:       t.UserId,
		Name:         t.Name,
		Prompt:       t.Prompt,
		TrainingDocs: datatypes.JSON(raw),
		LogoURL:      t.LogoURL,
		CreatedAt:    t.CreatedAt,
	}, nil
}
