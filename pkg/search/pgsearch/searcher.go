// Package pgsearch is the Postgres/pgvector implementation of the search
// collaborator. It interprets the composed query expression tree directly
// as SQL instead of lowering it to a wire DSL: equality filters become
// WHERE clauses and the similarity clause becomes a pgvector cosine
// distance expression. Selected with SEARCH_PROVIDER=pgvector.
package pgsearch

import (
	"context"
	"fmt"
	"strings"

	"helpdesk-rag-be/pkg/search"
	"helpdesk-rag-be/pkg/search/query"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// QADocument is the relational shape of one knowledge record, mirroring the
// qa_vectors mapping on the Elasticsearch side.
type QADocument struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Question       string          `gorm:"type:text"`
	Answer         string          `gorm:"type:text"`
	QuestionVector pgvector.Vector `gorm:"type:vector(512)"`
	AnswerVector   pgvector.Vector `gorm:"type:vector(512)"`
	UserId         string          `gorm:"index"`
	ShopId         string          ``
	ShopName       string          ``
	ProductId      string          ``
	ProductName    string          ``
}

func (QADocument) TableName() string {
	return "qa_documents"
}

type Searcher struct {
	db *gorm.DB
}

var _ search.Searcher = &Searcher{}

func NewSearcher(db *gorm.DB) *Searcher {
	return &Searcher{db: db}
}

// flattened view of the expression tree the SQL backend understands
type plan struct {
	equals map[string]interface{}
	fuzzy  map[string]string
	vector *query.VectorSimilarity
	text   *query.MultiFieldMatch
}

// Search executes the composed query. The index argument is accepted for
// interface parity but the relational backend always reads qa_documents.
func (s *Searcher) Search(ctx context.Context, index string, q search.ComposedQuery) ([]search.Document, error) {
	p := &plan{
		equals: map[string]interface{}{},
		fuzzy:  map[string]string{},
	}
	if err := flatten(q.Root, p); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrSearchUnavailable, err)
	}

	tx := s.db.WithContext(ctx).Table("qa_documents")
	for field, value := range p.equals {
		tx = tx.Where(fmt.Sprintf("%s = ?", column(field)), value)
	}
	for field, text := range p.fuzzy {
		tx = tx.Where(fmt.Sprintf("%s ILIKE ?", column(field)), "%"+text+"%")
	}

	type row struct {
		QADocument
		Score float64
	}
	var rows []row

	// Every scoring branch reports on the [0, 2] scale: 2 - cosine distance
	// equals cosine similarity + 1.0, and pg_trgm similarity is doubled, so
	// the extractor's threshold means the same thing on both backends.
	switch {
	case p.vector != nil && p.text != nil:
		simExpr, simArgs := trigramExpr(p.text)
		queryVector := pgvector.NewVector(p.vector.Vector)
		selectExpr := fmt.Sprintf(
			"qa_documents.*, %g * (2 * %s) + %g * (2 - (%s <=> ?)) AS score",
			p.text.Boost, simExpr, p.vector.Boost, column(p.vector.Field),
		)
		args := append(simArgs, queryVector)
		tx = tx.Select(selectExpr, args...).Order("score DESC")
	case p.vector != nil:
		queryVector := pgvector.NewVector(p.vector.Vector)
		tx = tx.Select(
			fmt.Sprintf("qa_documents.*, 2 - (%s <=> ?) AS score", column(p.vector.Field)),
			queryVector,
		).Order("score DESC")
	case p.text != nil:
		// Substring containment gates eligibility; pg_trgm similarity ranks
		// the survivors so near-misses score below exact restatements.
		var clauses []string
		var whereArgs []interface{}
		for _, f := range p.text.Fields {
			clauses = append(clauses, fmt.Sprintf("%s ILIKE ?", column(f)))
			whereArgs = append(whereArgs, "%"+p.text.Text+"%")
		}
		simExpr, simArgs := trigramExpr(p.text)
		tx = tx.Select(fmt.Sprintf("qa_documents.*, 2 * %s AS score", simExpr), simArgs...).
			Where(strings.Join(clauses, " OR "), whereArgs...).
			Order("score DESC")
	default:
		tx = tx.Select("qa_documents.*, 0.0 AS score")
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if err := tx.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrSearchUnavailable, err)
	}

	docs := make([]search.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, search.Document{
			Fields: map[string]interface{}{
				"_id":         r.Id.String(),
				"question":    r.Question,
				"answer":      r.Answer,
				"userId":      r.UserId,
				"shopName":    r.ShopName,
				"productName": r.ProductName,
			},
			Score: r.Score,
		})
	}
	return docs, nil
}

// Save writes one knowledge record.
func (s *Searcher) Save(ctx context.Context, doc *QADocument) error {
	return s.db.WithContext(ctx).Create(doc).Error
}

func flatten(e query.Expr, p *plan) error {
	switch n := e.(type) {
	case query.Equals:
		p.equals[n.Field] = n.Value
	case query.FuzzyMatch:
		p.fuzzy[n.Field] = n.Text
	case query.MultiFieldMatch:
		p.text = &n
	case query.VectorSimilarity:
		p.vector = &n
		if n.Filter != nil {
			return flatten(n.Filter, p)
		}
	case query.And:
		for _, sub := range n.Exprs {
			if err := flatten(sub, p); err != nil {
				return err
			}
		}
	case query.Or:
		// The hybrid disjunction carries the same filters on both
		// branches; walking every branch collects them once and gathers
		// both scoring clauses for the blended score.
		for _, sub := range n.Exprs {
			if err := flatten(sub, p); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported query expression %T", e)
	}
	return nil
}

// trigramExpr builds the pg_trgm relevance expression for a multi-field
// text clause: the best similarity across the listed columns, in [0, 1].
func trigramExpr(m *query.MultiFieldMatch) (string, []interface{}) {
	parts := make([]string, 0, len(m.Fields))
	args := make([]interface{}, 0, len(m.Fields))
	for _, f := range m.Fields {
		parts = append(parts, fmt.Sprintf("similarity(%s, ?)", column(f)))
		args = append(args, m.Text)
	}
	if len(parts) == 1 {
		return parts[0], args
	}
	return "greatest(" + strings.Join(parts, ", ") + ")", args
}

func column(field string) string {
	switch field {
	case "userId":
		return "user_id"
	case "shopId":
		return "shop_id"
	case "shopName":
		return "shop_name"
	case "productId":
		return "product_id"
	case "productName":
		return "product_name"
	case "question_vector":
		return "question_vector"
	case "answer_vector":
		return "answer_vector"
	default:
		return field
	}
}
