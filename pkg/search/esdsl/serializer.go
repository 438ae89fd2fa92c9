// Package esdsl lowers the engine-agnostic query expression tree into the
// Elasticsearch JSON query DSL.
package esdsl

import (
	"fmt"

	"helpdesk-rag-be/pkg/search"
	"helpdesk-rag-be/pkg/search/query"
)

// cosineScript is the painless score source: cosine similarity biased by
// +1.0 so the score domain is [0, 2] and downstream thresholds operate in a
// purely positive space.
const cosineScript = "cosineSimilarity(params.query_vector, '%s') + 1.0"

// Serialize renders a composed query as the body of an Elasticsearch
// _search request.
func Serialize(q search.ComposedQuery) (map[string]interface{}, error) {
	root, err := lower(q.Root)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"query": root,
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]interface{}{"order": "desc"}},
		},
	}
	if q.Limit > 0 {
		body["size"] = q.Limit
	}

	source := map[string]interface{}{}
	if len(q.Projection.Include) > 0 {
		source["includes"] = q.Projection.Include
	} else if len(q.Projection.Exclude) > 0 {
		source["excludes"] = q.Projection.Exclude
	}
	if len(source) > 0 {
		body["_source"] = source
	}

	return body, nil
}

func lower(e query.Expr) (map[string]interface{}, error) {
	switch n := e.(type) {
	case query.Equals:
		return map[string]interface{}{
			"term": map[string]interface{}{
				n.Field: map[string]interface{}{"value": n.Value},
			},
		}, nil

	case query.FuzzyMatch:
		match := map[string]interface{}{"query": n.Text}
		if n.Boost > 0 {
			match["boost"] = n.Boost
		}
		return map[string]interface{}{
			"match": map[string]interface{}{n.Field: match},
		}, nil

	case query.MultiFieldMatch:
		multi := map[string]interface{}{
			"query":       n.Text,
			"fields":      n.Fields,
			"type":        "best_fields",
			"tie_breaker": n.TieBreaker,
		}
		if n.Boost > 0 {
			multi["boost"] = n.Boost
		}
		return map[string]interface{}{"multi_match": multi}, nil

	case query.VectorSimilarity:
		base := map[string]interface{}{"match_all": map[string]interface{}{}}
		if n.Filter != nil {
			lowered, err := lower(n.Filter)
			if err != nil {
				return nil, err
			}
			base = lowered
		}
		scriptScore := map[string]interface{}{
			"query": base,
			"script": map[string]interface{}{
				"source": fmt.Sprintf(cosineScript, n.Field),
				"params": map[string]interface{}{"query_vector": n.Vector},
			},
		}
		if n.Boost > 0 {
			scriptScore["boost"] = n.Boost
		}
		return map[string]interface{}{"script_score": scriptScore}, nil

	case query.And:
		if len(n.Exprs) == 0 {
			return map[string]interface{}{"match_all": map[string]interface{}{}}, nil
		}
		must, err := lowerAll(n.Exprs)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		}, nil

	case query.Or:
		should, err := lowerAll(n.Exprs)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown query expression %T", e)
	}
}

func lowerAll(exprs []query.Expr) ([]interface{}, error) {
	out := make([]interface{}, 0, len(exprs))
	for _, e := range exprs {
		lowered, err := lower(e)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered)
	}
	return out, nil
}
