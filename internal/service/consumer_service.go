package service

import (
	"context"
	"encoding/json"
	"time"

	"helpdesk-rag-be/internal/dto"
	"helpdesk-rag-be/internal/pkg/logger"
	"helpdesk-rag-be/pkg/embedding"
	"helpdesk-rag-be/pkg/events"
	pkgNats "helpdesk-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// QAIndexer writes one embedded question/answer document into the search
// backend under the caller's id.
type QAIndexer interface {
	Index(ctx context.Context, docId string, fields map[string]interface{}) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	embedder  embedding.EmbeddingProvider
	indexer   QAIndexer
	natsPub   *pkgNats.Publisher
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	embedder embedding.EmbeddingProvider,
	indexer QAIndexer,
	natsPub *pkgNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		embedder:  embedder,
		indexer:   indexer,
		natsPub:   natsPub,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IndexQAMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("INDEXER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		// Ack malformed messages to prevent infinite retry.
		msg.Ack()
		return
	}

	cs.log.Info("INDEXER", "Indexing pair", map[string]interface{}{"doc_id": payload.DocId})

	questionVector, err := cs.embedder.Embed(ctx, payload.Question)
	if err != nil {
		cs.log.Error("INDEXER", "Failed to embed question", map[string]interface{}{
			"doc_id": payload.DocId,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	answerVector, err := cs.embedder.Embed(ctx, payload.Answer)
	if err != nil {
		cs.log.Error("INDEXER", "Failed to embed answer", map[string]interface{}{
			"doc_id": payload.DocId,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	fields := map[string]interface{}{
		"question":        payload.Question,
		"answer":          payload.Answer,
		"userId":          payload.UserId,
		"shopId":          payload.ShopId,
		"shopName":        payload.ShopName,
		"productId":       payload.ProductId,
		"productName":     payload.ProductName,
		"question_vector": questionVector,
		"answer_vector":   answerVector,
		"createTime":      now,
		"updateTime":      now,
	}

	if err := cs.indexer.Index(ctx, payload.DocId, fields); err != nil {
		cs.log.Error("INDEXER", "Failed to index pair", map[string]interface{}{
			"doc_id": payload.DocId,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	if cs.natsPub != nil {
		event := events.NewKnowledgeIndexed(payload.DocId, payload.Question)
		if err := cs.natsPub.Publish(ctx, event); err != nil {
			cs.log.Warn("INDEXER", "Failed to publish indexed event", map[string]interface{}{"error": err.Error()})
		}
	}

	msg.Ack()
}
