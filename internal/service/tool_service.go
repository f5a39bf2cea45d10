package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/specification"
	"persona-chat-be/internal/repository/unitofwork"
	"persona-chat-be/pkg/extract"

	"github.com/google/uuid"
)

// IToolService maintains the persona registry: built-ins fixed at
// process start, custom entries loaded per user, the "add tool"
// sentinel always last.
type IToolService interface {
	ListPersonas(ctx context.Context, userId uuid.UUID) ([]entity.Persona, error)
	GetPersona(ctx context.Context, userId uuid.UUID, personaId int) (*entity.Persona, error)
	DefaultPersona() entity.Persona
	ResolvePersonaByName(ctx context.Context, userId uuid.UUID, name string) (*entity.Persona, error)
	CreateTool(ctx context.Context, userId uuid.UUID, req *dto.CreateToolRequest, trainingDocs []extract.FileDescriptor) (*entity.CustomTool, error)
}

type toolService struct {
	uowFactory      unitofwork.RepositoryFactory
	activityService IActivityService
}

func NewToolService(uowFactory unitofwork.RepositoryFactory, activityService IActivityService) IToolService {
	return &toolService{
		uowFactory:      uowFactory,
		activityService: activityService,
	}
}

// ListPersonas builds an immutable merged snapshot: built-ins first,
// then the user's custom tools with synthetic ids, then the sentinel.
func (s *toolService) ListPersonas(ctx context.Context, userId uuid.UUID) ([]entity.Persona, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	customs, err := uow.CustomToolRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	personas := make([]entity.Persona, 0, len(constant.BuiltinPersonas)+len(customs)+1)
	for _, b := range constant.BuiltinPersonas {
		personas = append(personas, entity.Persona{
			Id:     b.ID,
			Name:   b.Name,
			Prompt: b.Prompt,
		})
	}
	for i, c := range customs {
		personas = append(personas, entity.Persona{
			Id:           constant.CustomToolIDOffset + i,
			Name:         c.Name,
			Prompt:       c.Prompt,
			TrainingDocs: c.TrainingDocs,
			LogoURL:      c.LogoURL,
			IsCustom:     true,
		})
	}
	personas = append(personas, entity.Persona{
		Id:              constant.AddToolSentinelID,
		Name:            "+ Add Tool",
		IsAddToolMarker: true,
	})

	return personas, nil
}

func (s *toolService) GetPersona(ctx context.Context, userId uuid.UUID, personaId int) (*entity.Persona, error) {
	personas, err := s.ListPersonas(ctx, userId)
	if err != nil {
		return nil, err
	}
	for i := range personas {
		if personas[i].Id == personaId {
			return &personas[i], nil
		}
	}
	return nil, nil
}

func (s *toolService) DefaultPersona() entity.Persona {
	b := constant.BuiltinPersonas[0]
	return entity.Persona{Id: b.ID, Name: b.Name, Prompt: b.Prompt}
}

// ResolvePersonaByName maps a persisted persona name back to a live
// registry entry. Returns nil when the name no longer resolves (e.g. a
// deleted custom tool).
func (s *toolService) ResolvePersonaByName(ctx context.Context, userId uuid.UUID, name string) (*entity.Persona, error) {
	personas, err := s.ListPersonas(ctx, userId)
	if err != nil {
		return nil, err
	}
	for i := range personas {
		if personas[i].Name == name && personas[i].Usable() {
			return &personas[i], nil
		}
	}
	return nil, nil
}

func (s *toolService) CreateTool(ctx context.Context, userId uuid.UUID, req *dto.CreateToolRequest, trainingDocs []extract.FileDescriptor) (*entity.CustomTool, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.New("tool name and prompt are required")
	}

	tool := &entity.CustomTool{
		Id:           uuid.New(),
		UserId:       userId,
		Name:         strings.TrimSpace(req.Name),
		Prompt:       strings.TrimSpace(req.Prompt),
		TrainingDocs: trainingDocs,
		LogoURL:      req.LogoURL,
		CreatedAt:    time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CustomToolRepository().Create(ctx, tool); err != nil {
		return nil, err
	}

	s.activityService.Track(userId, constant.ActivityToolCreated, map[string]interface{}{
		"tool_id":   tool.Id.String(),
		"tool_name": tool.Name,
	})

	return tool, nil
}
