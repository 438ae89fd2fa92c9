package service

import (
	"context"
	"fmt"
	"strings"

	"helpdesk-rag-be/internal/config"
	"helpdesk-rag-be/internal/dto"
	"helpdesk-rag-be/internal/pkg/logger"
	"helpdesk-rag-be/pkg/embedding"
	"helpdesk-rag-be/pkg/events"
	"helpdesk-rag-be/pkg/llm"
	pkgNats "helpdesk-rag-be/pkg/nats"
	"helpdesk-rag-be/pkg/rag/history"
	"helpdesk-rag-be/pkg/rag/prompt"
	"helpdesk-rag-be/pkg/search"
	"helpdesk-rag-be/pkg/search/query"

	"github.com/gofiber/fiber/v2"
)

// unableToAnswer is returned verbatim when the language model cannot be
// reached. The turn is not recorded in history so a retry starts clean.
const unableToAnswer = "Sorry, I am unable to answer your question right now. Please try again later."

type retrievalMode int

const (
	modeHybrid retrievalMode = iota
	modeText
	modeVector
)

type IChatService interface {
	// HybridAnswer scores candidates by text relevance and vector
	// similarity combined. This is the default answering path.
	HybridAnswer(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)

	// VectorAnswer uses similarity alone.
	VectorAnswer(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)

	// TextAnswer uses lexical relevance alone; no embedding round trip.
	TextAnswer(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)

	// ClearConversation drops the stored history for one conversation.
	ClearConversation(tableId string)
}

type chatService struct {
	extractor *search.Extractor
	embedder  embedding.EmbeddingProvider
	llm       llm.LLMProvider
	history   *history.Store
	natsPub   *pkgNats.Publisher
	log       logger.ILogger
	index     string
	retrieval config.RetrievalConfig
}

func NewChatService(
	extractor *search.Extractor,
	embedder embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	historyStore *history.Store,
	natsPub *pkgNats.Publisher,
	log logger.ILogger,
	index string,
	retrieval config.RetrievalConfig,
) IChatService {
	return &chatService{
		extractor: extractor,
		embedder:  embedder,
		llm:       llmProvider,
		history:   historyStore,
		natsPub:   natsPub,
		log:       log,
		index:     index,
		retrieval: retrieval,
	}
}

func (s *chatService) HybridAnswer(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	return s.answer(ctx, req, modeHybrid)
}

func (s *chatService) VectorAnswer(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	return s.answer(ctx, req, modeVector)
}

func (s *chatService) TextAnswer(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	return s.answer(ctx, req, modeText)
}

func (s *chatService) ClearConversation(tableId string) {
	s.history.Clear(tableId)
}

func (s *chatService) answer(ctx context.Context, req *dto.ChatRequest, mode retrievalMode) (*dto.ChatResponse, error) {
	tableId := strings.TrimSpace(req.TableId)
	if tableId == "" {
		tableId = req.UserId
	}

	documents := s.retrieve(ctx, req, tableId, mode)

	built, err := prompt.NewBuilder(s.history.History(tableId), req.Question, documents).Build()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	answer, err := s.llm.Generate(ctx, built)
	if err != nil {
		s.log.Error("CHAT", "Completion failed", map[string]interface{}{
			"table_id": tableId,
			"error":    err.Error(),
		})
		return &dto.ChatResponse{
			Answer:        unableToAnswer,
			DocumentsUsed: len(documents),
		}, nil
	}

	s.history.Append(tableId, req.Question, answer)
	s.publishAnswered(ctx, tableId, req.Question, len(documents))

	return &dto.ChatResponse{
		Answer:        answer,
		DocumentsUsed: len(documents),
	}, nil
}

// retrieve runs the retrieval branch of the pipeline. Retrieval trouble
// never aborts answering: embedding failures drop the vector branch,
// search failures drop the reference material entirely.
func (s *chatService) retrieve(ctx context.Context, req *dto.ChatRequest, tableId string, mode retrievalMode) []search.Document {
	spec := search.HybridQuerySpec{
		Filters: s.filters(req),
		Limit:   s.retrieval.TopK,
	}

	if mode == modeHybrid || mode == modeText {
		spec.Text = &search.TextClause{
			Fields:     []string{"question", "answer"},
			Text:       req.Question,
			TieBreaker: s.retrieval.TieBreaker,
			Boost:      s.retrieval.TextBoost,
		}
	}

	if mode == modeHybrid || mode == modeVector {
		vector, err := s.embedder.Embed(ctx, req.Question)
		if err != nil {
			s.log.Warn("CHAT", "Embedding failed, dropping vector branch", map[string]interface{}{
				"table_id": tableId,
				"error":    err.Error(),
			})
			if spec.Text == nil {
				return nil
			}
		} else {
			spec.Vector = &search.VectorClause{
				Field:  s.vectorField(req),
				Vector: vector,
				Boost:  s.retrieval.VectorBoost,
			}
		}
	}

	documents, err := s.extractor.Retrieve(ctx, s.index, spec, s.retrieval.Threshold)
	if err != nil {
		s.log.Warn("CHAT", "Retrieval failed, answering without references", map[string]interface{}{
			"table_id": tableId,
			"error":    err.Error(),
		})
		return nil
	}
	return documents
}

// filters builds the hard filter set: owner id always, shop name exactly
// when present, product name fuzzily when present.
func (s *chatService) filters(req *dto.ChatRequest) []query.Expr {
	var out []query.Expr

	if owner, err := query.NewEquals("userId", req.UserId); err == nil {
		out = append(out, owner)
	}
	if req.ShopName != "" {
		if shop, err := query.NewEquals("shopName", req.ShopName); err == nil {
			out = append(out, shop)
		}
	}
	if req.ProductName != "" {
		if product, err := query.NewFuzzyMatch("productName", req.ProductName); err == nil {
			out = append(out, product)
		}
	}
	return out
}

func (s *chatService) vectorField(req *dto.ChatRequest) search.VectorField {
	if req.VectorField == "answer" {
		return search.VectorFieldAnswer
	}
	return search.VectorFieldQuestion
}

func (s *chatService) publishAnswered(ctx context.Context, tableId, question string, documentsUsed int) {
	if s.natsPub == nil {
		return
	}
	event := events.NewQuestionAnswered(tableId, question, documentsUsed)
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.log.Warn("CHAT", "Failed to publish answered event", map[string]interface{}{
			"error": fmt.Sprintf("%v", err),
		})
	}
}
