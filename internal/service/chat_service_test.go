package service

import (
	"context"
	"testing"
	"time"

	"helpdesk-rag-be/internal/config"
	"helpdesk-rag-be/internal/dto"
	"helpdesk-rag-be/pkg/embedding"
	"helpdesk-rag-be/pkg/llm"
	"helpdesk-rag-be/pkg/rag/history"
	"helpdesk-rag-be/pkg/search"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type recordingSearcher struct {
	calls int
	lastQ search.ComposedQuery
	docs  []search.Document
	err   error
}

func (s *recordingSearcher) Search(ctx context.Context, index string, q search.ComposedQuery) ([]search.Document, error) {
	s.calls++
	s.lastQ = q
	return s.docs, s.err
}

type stubEmbedder struct {
	calls int
	err   error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	vec := make([]float32, 512)
	vec[0] = 1
	return vec, nil
}

func (s *stubEmbedder) Dimensions() int { return 512 }

type stubLLM struct {
	calls      int
	lastPrompt string
	answer     string
	err        error
}

func (s *stubLLM) Chat(ctx context.Context, hist []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func retrievalConfig() config.RetrievalConfig {
	return config.RetrievalConfig{
		Threshold:        1.8,
		TopK:             5,
		TextBoost:        0.3,
		VectorBoost:      0.7,
		TieBreaker:       0.3,
		HistoryRetention: 24 * time.Hour,
		SweepInterval:    time.Hour,
	}
}

func newTestChatService(searcher search.Searcher, embedder embedding.EmbeddingProvider, model llm.LLMProvider) (IChatService, *history.Store) {
	store := history.NewStore(24 * time.Hour)
	extractor := search.NewExtractor(search.NewComposer(512), searcher)
	svc := NewChatService(extractor, embedder, model, store, nil, nopLogger{}, "qa_vectors", retrievalConfig())
	return svc, store
}

func relevantDoc(question, answer string, score float64) search.Document {
	return search.Document{
		Fields: map[string]interface{}{"question": question, "answer": answer},
		Score:  score,
	}
}

func TestHybridAnswerWithReferences(t *testing.T) {
	searcher := &recordingSearcher{docs: []search.Document{
		relevantDoc("How do I get a refund?", "Open the order page and click refund.", 2.1),
		relevantDoc("Refund timing", "Refunds settle within 3 days.", 1.7),
	}}
	embedder := &stubEmbedder{}
	model := &stubLLM{answer: "Click refund on the order page."}
	svc, store := newTestChatService(searcher, embedder, model)

	resp, err := svc.HybridAnswer(context.Background(), &dto.ChatRequest{
		TableId:  "t1",
		Question: "refund?",
		UserId:   "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Click refund on the order page.", resp.Answer)
	assert.Equal(t, 1, resp.DocumentsUsed, "only hits above the threshold count")
	assert.Equal(t, 1, embedder.calls)
	assert.Equal(t, 1, searcher.calls)
	assert.Contains(t, model.lastPrompt, "How do I get a refund?")
	assert.NotContains(t, model.lastPrompt, "Refund timing")
	assert.Contains(t, store.History("t1"), "refund?")
}

func TestTextAnswerSkipsEmbedding(t *testing.T) {
	searcher := &recordingSearcher{}
	embedder := &stubEmbedder{}
	model := &stubLLM{answer: "ok"}
	svc, _ := newTestChatService(searcher, embedder, model)

	_, err := svc.TextAnswer(context.Background(), &dto.ChatRequest{
		TableId:  "t1",
		Question: "anything",
		UserId:   "u-1",
	})
	require.NoError(t, err)

	assert.Zero(t, embedder.calls)
	assert.Equal(t, 1, searcher.calls)
}

func TestVectorAnswerEmbeddingFailureSkipsSearch(t *testing.T) {
	searcher := &recordingSearcher{}
	embedder := &stubEmbedder{err: embedding.ErrEmbeddingUnavailable}
	model := &stubLLM{answer: "from general knowledge"}
	svc, _ := newTestChatService(searcher, embedder, model)

	resp, err := svc.VectorAnswer(context.Background(), &dto.ChatRequest{
		TableId:  "t1",
		Question: "anything",
		UserId:   "u-1",
	})
	require.NoError(t, err)

	assert.Zero(t, searcher.calls, "no query branches remain, nothing to search")
	assert.Equal(t, 0, resp.DocumentsUsed)
	assert.Equal(t, "from general knowledge", resp.Answer)
}

func TestHybridAnswerEmbeddingFailureKeepsTextBranch(t *testing.T) {
	searcher := &recordingSearcher{docs: []search.Document{
		relevantDoc("q", "a", 2.0),
	}}
	embedder := &stubEmbedder{err: embedding.ErrEmbeddingUnavailable}
	model := &stubLLM{answer: "ok"}
	svc, _ := newTestChatService(searcher, embedder, model)

	resp, err := svc.HybridAnswer(context.Background(), &dto.ChatRequest{
		TableId:  "t1",
		Question: "anything",
		UserId:   "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.calls, "text branch still searchable")
	assert.Equal(t, 1, resp.DocumentsUsed)
}

func TestAnswerSearchFailureDropsReferences(t *testing.T) {
	searcher := &recordingSearcher{err: search.ErrSearchUnavailable}
	embedder := &stubEmbedder{}
	model := &stubLLM{answer: "general answer"}
	svc, _ := newTestChatService(searcher, embedder, model)

	resp, err := svc.HybridAnswer(context.Background(), &dto.ChatRequest{
		TableId:  "t1",
		Question: "anything",
		UserId:   "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "general answer", resp.Answer)
	assert.Equal(t, 0, resp.DocumentsUsed)
	assert.Contains(t, model.lastPrompt, "No reference material is available")
}

func TestAnswerCompletionFailure(t *testing.T) {
	searcher := &recordingSearcher{docs: []search.Document{relevantDoc("q", "a", 2.0)}}
	embedder := &stubEmbedder{}
	model := &stubLLM{err: llm.ErrCompletionUnavailable}
	svc, store := newTestChatService(searcher, embedder, model)

	resp, err := svc.HybridAnswer(context.Background(), &dto.ChatRequest{
		TableId:  "t1",
		Question: "anything",
		UserId:   "u-1",
	})
	require.NoError(t, err, "completion failure degrades, it does not error")

	assert.Equal(t, unableToAnswer, resp.Answer)
	assert.Empty(t, store.History("t1"), "failed turns are not recorded")
}

func TestAnswerBlankQuestion(t *testing.T) {
	svc, _ := newTestChatService(&recordingSearcher{}, &stubEmbedder{}, &stubLLM{answer: "x"})

	_, err := svc.HybridAnswer(context.Background(), &dto.ChatRequest{
		TableId:  "t1",
		Question: "   ",
		UserId:   "u-1",
	})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestBlankTableIdFallsBackToUserId(t *testing.T) {
	svc, store := newTestChatService(&recordingSearcher{}, &stubEmbedder{}, &stubLLM{answer: "hello"})

	_, err := svc.HybridAnswer(context.Background(), &dto.ChatRequest{
		TableId:  "  ",
		Question: "hi",
		UserId:   "u-7",
	})
	require.NoError(t, err)

	assert.Contains(t, store.History("u-7"), "hi")
}

type warnRecorder struct {
	nopLogger
	details []map[string]interface{}
}

func (l *warnRecorder) Warn(module, message string, details map[string]interface{}) {
	l.details = append(l.details, details)
}

func TestDegradationLogsCarryResolvedConversationId(t *testing.T) {
	recorder := &warnRecorder{}
	store := history.NewStore(24 * time.Hour)
	extractor := search.NewExtractor(search.NewComposer(512), &recordingSearcher{})
	svc := NewChatService(
		extractor,
		&stubEmbedder{err: embedding.ErrEmbeddingUnavailable},
		&stubLLM{answer: "ok"},
		store,
		nil,
		recorder,
		"qa_vectors",
		retrievalConfig(),
	)

	_, err := svc.VectorAnswer(context.Background(), &dto.ChatRequest{
		TableId:  "  ",
		Question: "hi",
		UserId:   "u-7",
	})
	require.NoError(t, err)

	require.NotEmpty(t, recorder.details)
	assert.Equal(t, "u-7", recorder.details[0]["table_id"])
}

func TestClearConversation(t *testing.T) {
	svc, store := newTestChatService(&recordingSearcher{}, &stubEmbedder{}, &stubLLM{answer: "x"})

	store.Append("t1", "q", "a")
	require.NotEmpty(t, store.History("t1"))

	svc.ClearConversation("t1")
	assert.Empty(t, store.History("t1"))
}
