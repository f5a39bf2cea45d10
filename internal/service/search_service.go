package service

import (
	"context"

	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/websearch"
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*websearch.SearchResponse, error)
}

type searchService struct {
	client *websearch.Client
	logger logger.ILogger
}

func NewSearchService(client *websearch.Client, sysLogger logger.ILogger) ISearchService {
	return &searchService{
		client: client,
		logger: sysLogger,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*websearch.SearchResponse, error) {
	result, err := s.client.SearchAndCrawl(ctx, req.Query, req.Crawl, req.NumResults)
	if err != nil {
		s.logger.Error("search", "Web search failed", map[string]interface{}{"error": err.Error(), "query": req.Query})
		return nil, err
	}
	return result, nil
}
