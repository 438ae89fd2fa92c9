package service

import (
	"context"

	"helpdesk-rag-be/internal/dto"
	"helpdesk-rag-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQAService interface {
	// Upload accepts one question/answer pair and queues it for indexing.
	Upload(ctx context.Context, req *dto.QAUploadRequest) (*dto.QAUploadResponse, error)

	// UploadBatch queues many pairs at once. Publishing stops at the first
	// failure and reports how many were accepted.
	UploadBatch(ctx context.Context, req *dto.QABatchUploadRequest) (*dto.QABatchUploadResponse, error)
}

type qaService struct {
	publisher IPublisherService
	log       logger.ILogger
}

func NewQAService(publisher IPublisherService, log logger.ILogger) IQAService {
	return &qaService{
		publisher: publisher,
		log:       log,
	}
}

func (s *qaService) Upload(ctx context.Context, req *dto.QAUploadRequest) (*dto.QAUploadResponse, error) {
	docId := uuid.NewString()

	err := s.publisher.PublishIndexQA(indexMessage(docId, req))
	if err != nil {
		s.log.Error("QA", "Failed to queue pair for indexing", map[string]interface{}{"error": err.Error()})
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to queue pair for indexing")
	}

	return &dto.QAUploadResponse{DocId: docId}, nil
}

func (s *qaService) UploadBatch(ctx context.Context, req *dto.QABatchUploadRequest) (*dto.QABatchUploadResponse, error) {
	docIds := make([]string, 0, len(req.Items))

	for _, item := range req.Items {
		docId := uuid.NewString()
		item := item
		err := s.publisher.PublishIndexQA(indexMessage(docId, &item))
		if err != nil {
			s.log.Error("QA", "Batch publish stopped", map[string]interface{}{
				"accepted": len(docIds),
				"error":    err.Error(),
			})
			break
		}
		docIds = append(docIds, docId)
	}

	return &dto.QABatchUploadResponse{
		Accepted: len(docIds),
		DocIds:   docIds,
	}, nil
}

func indexMessage(docId string, req *dto.QAUploadRequest) dto.IndexQAMessage {
	return dto.IndexQAMessage{
		DocId:       docId,
		Question:    req.Question,
		Answer:      req.Answer,
		UserId:      req.UserId,
		ShopId:      req.ShopId,
		ShopName:    req.ShopName,
		ProductId:   req.ProductId,
		ProductName: req.ProductName,
	}
}
