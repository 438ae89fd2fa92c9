package service

import (
	"context"
	"errors"
	"testing"

	"helpdesk-rag-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublisher struct {
	published []dto.IndexQAMessage
	failAfter int
	err       error
}

func (s *stubPublisher) PublishIndexQA(msg dto.IndexQAMessage) error {
	if s.err != nil && len(s.published) >= s.failAfter {
		return s.err
	}
	s.published = append(s.published, msg)
	return nil
}

func TestUploadQueuesPair(t *testing.T) {
	publisher := &stubPublisher{}
	svc := NewQAService(publisher, nopLogger{})

	resp, err := svc.Upload(context.Background(), &dto.QAUploadRequest{
		Question:    "Where is my order?",
		Answer:      "Check the tracking page.",
		UserId:      "u-1",
		ShopName:    "Acme Outlet",
		ProductName: "Widget",
	})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(resp.DocId)
	assert.NoError(t, parseErr, "doc id is a generated uuid")

	require.Len(t, publisher.published, 1)
	msg := publisher.published[0]
	assert.Equal(t, resp.DocId, msg.DocId)
	assert.Equal(t, "Where is my order?", msg.Question)
	assert.Equal(t, "u-1", msg.UserId)
	assert.Equal(t, "Widget", msg.ProductName)
}

func TestUploadPublishFailure(t *testing.T) {
	publisher := &stubPublisher{err: errors.New("broker down")}
	svc := NewQAService(publisher, nopLogger{})

	_, err := svc.Upload(context.Background(), &dto.QAUploadRequest{
		Question: "q",
		Answer:   "a",
		UserId:   "u-1",
	})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusInternalServerError, fiberErr.Code)
}

func TestUploadBatchStopsAtFirstFailure(t *testing.T) {
	publisher := &stubPublisher{failAfter: 2, err: errors.New("broker down")}
	svc := NewQAService(publisher, nopLogger{})

	resp, err := svc.UploadBatch(context.Background(), &dto.QABatchUploadRequest{
		Items: []dto.QAUploadRequest{
			{Question: "q1", Answer: "a1", UserId: "u-1"},
			{Question: "q2", Answer: "a2", UserId: "u-1"},
			{Question: "q3", Answer: "a3", UserId: "u-1"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Accepted)
	assert.Len(t, resp.DocIds, 2)
	assert.Equal(t, "q1", publisher.published[0].Question)
	assert.Equal(t, "q2", publisher.published[1].Question)
}

func TestUploadBatchAllAccepted(t *testing.T) {
	publisher := &stubPublisher{}
	svc := NewQAService(publisher, nopLogger{})

	resp, err := svc.UploadBatch(context.Background(), &dto.QABatchUploadRequest{
		Items: []dto.QAUploadRequest{
			{Question: "q1", Answer: "a1", UserId: "u-1"},
			{Question: "q2", Answer: "a2", UserId: "u-1"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Accepted)
	assert.Len(t, resp.DocIds, 2)
}
