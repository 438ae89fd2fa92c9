package service

import (
	"context"
	"testing"
	"time"

	"helpdesk-rag-be/internal/dto"
	"helpdesk-rag-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingIndexer struct {
	indexed chan indexedDoc
	err     error
}

type indexedDoc struct {
	docId  string
	fields map[string]interface{}
}

func newRecordingIndexer() *recordingIndexer {
	return &recordingIndexer{indexed: make(chan indexedDoc, 8)}
}

func (r *recordingIndexer) Index(ctx context.Context, docId string, fields map[string]interface{}) error {
	if r.err != nil {
		return r.err
	}
	r.indexed <- indexedDoc{docId: docId, fields: fields}
	return nil
}

func TestConsumeIndexesPublishedPair(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	indexer := newRecordingIndexer()
	consumer := NewConsumerService(pubSub, "index-qa", &stubEmbedder{}, indexer, nil, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("index-qa", pubSub)
	require.NoError(t, publisher.PublishIndexQA(dto.IndexQAMessage{
		DocId:    "doc-1",
		Question: "How do I reset my password?",
		Answer:   "Use the forgot-password link on the login page.",
		UserId:   "u-1",
		ShopName: "Acme Outlet",
	}))

	select {
	case doc := <-indexer.indexed:
		assert.Equal(t, "doc-1", doc.docId)
		assert.Equal(t, "How do I reset my password?", doc.fields["question"])
		assert.Equal(t, "u-1", doc.fields["userId"])
		assert.Equal(t, "Acme Outlet", doc.fields["shopName"])
		assert.Len(t, doc.fields["question_vector"], 512)
		assert.Len(t, doc.fields["answer_vector"], 512)
		assert.NotEmpty(t, doc.fields["createTime"])
	case <-time.After(2 * time.Second):
		t.Fatal("indexer was never called")
	}
}

func TestProcessMessageAcksMalformedPayload(t *testing.T) {
	indexer := newRecordingIndexer()
	cs := &consumerService{
		topicName: "index-qa",
		embedder:  &stubEmbedder{},
		indexer:   indexer,
		log:       nopLogger{},
	}

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	cs.processMessage(context.Background(), msg)

	select {
	case <-msg.Acked():
	default:
		t.Fatal("malformed message should be acked, not retried")
	}
	assert.Empty(t, indexer.indexed)
}

func TestProcessMessageNacksOnEmbeddingFailure(t *testing.T) {
	indexer := newRecordingIndexer()
	cs := &consumerService{
		topicName: "index-qa",
		embedder:  &stubEmbedder{err: embedding.ErrEmbeddingUnavailable},
		indexer:   indexer,
		log:       nopLogger{},
	}

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"doc_id":"doc-1","question":"q","answer":"a","user_id":"u-1"}`))
	cs.processMessage(context.Background(), msg)

	select {
	case <-msg.Nacked():
	default:
		t.Fatal("retriable failure should nack")
	}
	assert.Empty(t, indexer.indexed)
}

func TestProcessMessageNacksOnIndexFailure(t *testing.T) {
	indexer := newRecordingIndexer()
	indexer.err = assert.AnError
	cs := &consumerService{
		topicName: "index-qa",
		embedder:  &stubEmbedder{},
		indexer:   indexer,
		log:       nopLogger{},
	}

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"doc_id":"doc-1","question":"q","answer":"a","user_id":"u-1"}`))
	cs.processMessage(context.Background(), msg)

	select {
	case <-msg.Nacked():
	default:
		t.Fatal("index failure should nack")
	}
}
