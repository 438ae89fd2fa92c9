// Package elastic is a thin HTTP client for the Elasticsearch REST API. It
// executes composed queries lowered through esdsl and offers the small
// admin surface (index lifecycle, document writes) the knowledge base
// needs.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"helpdesk-rag-be/pkg/search"
	"helpdesk-rag-be/pkg/search/esdsl"
)

type Client struct {
	BaseURL string
	Client  *http.Client
}

var _ search.Searcher = &Client{}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:9200"
	}
	return &Client{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// --- Response structures (internal to this package) ---

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string                 `json:"_id"`
			Score  float64                `json:"_score"`
			Source map[string]interface{} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type indexResponse struct {
	ID string `json:"_id"`
}

// Search executes a composed query against the named index and returns the
// hits in engine rank order.
func (c *Client) Search(ctx context.Context, index string, q search.ComposedQuery) ([]search.Document, error) {
	body, err := esdsl.Serialize(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrSearchUnavailable, err)
	}

	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/_search", index), body, &resp); err != nil {
		return nil, err
	}

	docs := make([]search.Document, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		fields := hit.Source
		if fields == nil {
			fields = map[string]interface{}{}
		}
		fields["_id"] = hit.ID
		docs = append(docs, search.Document{Fields: fields, Score: hit.Score})
	}
	return docs, nil
}

// IndexDocument writes one document and returns its generated id.
func (c *Client) IndexDocument(ctx context.Context, index string, doc map[string]interface{}) (string, error) {
	var resp indexResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/_doc", index), doc, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// IndexDocumentWithID writes one document under the caller's id, replacing
// any previous version.
func (c *Client) IndexDocumentWithID(ctx context.Context, index, id string, doc map[string]interface{}) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/_doc/%s", index, id), doc, nil)
}

// CreateIndex creates the index with the given mapping. Returns false when
// the index already exists.
func (c *Client) CreateIndex(ctx context.Context, index string, mapping map[string]interface{}) (bool, error) {
	exists, err := c.IndexExists(ctx, index)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := c.do(ctx, http.MethodPut, "/"+index, mapping, nil); err != nil {
		return false, err
	}
	return true, nil
}

// IndexExists checks for the index with a HEAD request.
func (c *Client) IndexExists(ctx context.Context, index string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.BaseURL+"/"+index, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", search.ErrSearchUnavailable, err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", search.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: unexpected status %d checking index %s", search.ErrSearchUnavailable, resp.StatusCode, index)
	}
}

// DeleteIndex removes the index. Returns false when it did not exist.
func (c *Client) DeleteIndex(ctx context.Context, index string) (bool, error) {
	exists, err := c.IndexExists(ctx, index)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	if err := c.do(ctx, http.MethodDelete, "/"+index, nil, nil); err != nil {
		return false, err
	}
	return true, nil
}

// IndexInfo fetches the index settings and mappings document.
func (c *Client) IndexInfo(ctx context.Context, index string) (map[string]interface{}, error) {
	var info map[string]interface{}
	if err := c.do(ctx, http.MethodGet, "/"+index, nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: marshal request: %v", search.ErrSearchUnavailable, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", search.ErrSearchUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", search.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", search.ErrSearchUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", search.ErrSearchUnavailable, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: unmarshal response: %v", search.ErrSearchUnavailable, err)
		}
	}
	return nil
}

// QAMapping is the qa_vectors index mapping: analyzed question/answer text,
// two dense-vector fields, and the exact-match filter fields.
func QAMapping(dims int) map[string]interface{} {
	return map[string]interface{}{
		"settings": map[string]interface{}{
			"index": map[string]interface{}{
				"number_of_shards":   1,
				"number_of_replicas": 0,
			},
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"question":        map[string]interface{}{"type": "text"},
				"answer":          map[string]interface{}{"type": "text"},
				"question_vector": map[string]interface{}{"type": "dense_vector", "dims": dims},
				"answer_vector":   map[string]interface{}{"type": "dense_vector", "dims": dims},
				"userId":          map[string]interface{}{"type": "keyword"},
				"shopId":          map[string]interface{}{"type": "keyword"},
				"shopName":        map[string]interface{}{"type": "keyword"},
				"productId":       map[string]interface{}{"type": "keyword"},
				"productName":     map[string]interface{}{"type": "text"},
				"createTime":      map[string]interface{}{"type": "date"},
				"updateTime":      map[string]interface{}{"type": "date"},
			},
		},
	}
}
