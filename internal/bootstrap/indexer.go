package bootstrap

import (
	"context"
	"fmt"

	"helpdesk-rag-be/internal/service"
	"helpdesk-rag-be/pkg/search/elastic"
	"helpdesk-rag-be/pkg/search/pgsearch"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// elasticIndexer adapts the Elasticsearch client to the consumer's
// QAIndexer port.
type elasticIndexer struct {
	client *elastic.Client
	index  string
}

var _ service.QAIndexer = elasticIndexer{}

func (i elasticIndexer) Index(ctx context.Context, docId string, fields map[string]interface{}) error {
	return i.client.IndexDocumentWithID(ctx, i.index, docId, fields)
}

// pgIndexer adapts the relational searcher: the flat field map becomes one
// qa_documents row.
type pgIndexer struct {
	searcher *pgsearch.Searcher
}

var _ service.QAIndexer = pgIndexer{}

func (i pgIndexer) Index(ctx context.Context, docId string, fields map[string]interface{}) error {
	id, err := uuid.Parse(docId)
	if err != nil {
		return fmt.Errorf("doc id is not a uuid: %w", err)
	}

	doc := &pgsearch.QADocument{
		Id:          id,
		Question:    str(fields, "question"),
		Answer:      str(fields, "answer"),
		UserId:      str(fields, "userId"),
		ShopId:      str(fields, "shopId"),
		ShopName:    str(fields, "shopName"),
		ProductId:   str(fields, "productId"),
		ProductName: str(fields, "productName"),
	}
	if vec, ok := fields["question_vector"].([]float32); ok {
		doc.QuestionVector = pgvector.NewVector(vec)
	}
	if vec, ok := fields["answer_vector"].([]float32); ok {
		doc.AnswerVector = pgvector.NewVector(vec)
	}

	return i.searcher.Save(ctx, doc)
}

func str(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
