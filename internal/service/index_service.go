package service

import (
	"context"

	"helpdesk-rag-be/internal/pkg/logger"
	"helpdesk-rag-be/pkg/search/elastic"

	"github.com/gofiber/fiber/v2"
)

type IIndexService interface {
	// EnsureIndex creates the knowledge index with its mapping if missing.
	// Returns true when the index was created by this call.
	EnsureIndex(ctx context.Context) (bool, error)

	DeleteIndex(ctx context.Context) (bool, error)
	IndexInfo(ctx context.Context) (map[string]interface{}, error)
}

type indexService struct {
	client *elastic.Client
	index  string
	dims   int
	log    logger.ILogger
}

func NewIndexService(client *elastic.Client, index string, dims int, log logger.ILogger) IIndexService {
	return &indexService{
		client: client,
		index:  index,
		dims:   dims,
		log:    log,
	}
}

func (s *indexService) EnsureIndex(ctx context.Context) (bool, error) {
	created, err := s.client.CreateIndex(ctx, s.index, elastic.QAMapping(s.dims))
	if err != nil {
		s.log.Error("INDEX", "Failed to ensure index", map[string]interface{}{
			"index": s.index,
			"error": err.Error(),
		})
		return false, fiber.NewError(fiber.StatusBadGateway, "search backend unavailable")
	}
	if created {
		s.log.Info("INDEX", "Index created", map[string]interface{}{"index": s.index, "dims": s.dims})
	}
	return created, nil
}

func (s *indexService) DeleteIndex(ctx context.Context) (bool, error) {
	deleted, err := s.client.DeleteIndex(ctx, s.index)
	if err != nil {
		return false, fiber.NewError(fiber.StatusBadGateway, "search backend unavailable")
	}
	return deleted, nil
}

func (s *indexService) IndexInfo(ctx context.Context) (map[string]interface{}, error) {
	info, err := s.client.IndexInfo(ctx, s.index)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "search backend unavailable")
	}
	return info, nil
}
