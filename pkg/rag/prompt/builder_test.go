package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-rag-be/pkg/search"
)

func TestBuildRejectsBlankQuestion(t *testing.T) {
	_, err := NewBuilder("", "   ", nil).Build()
	assert.ErrorIs(t, err, ErrBlankQuestion)
}

func TestBuildWithoutDocumentsFallsBackToGeneralKnowledge(t *testing.T) {
	got, err := NewBuilder("", "What is your refund policy?", nil).Build()
	require.NoError(t, err)

	assert.Contains(t, got, "The user's current question is: What is your refund policy?")
	assert.Contains(t, got, "No reference material is available")
	assert.Contains(t, got, "general knowledge")
	assert.NotContains(t, got, "knowledge base")
}

func TestBuildWithDocumentsInRetrievalOrder(t *testing.T) {
	docs := []search.Document{
		{Fields: map[string]interface{}{"question": "How do refunds work?", "answer": "Within 14 days."}, Score: 2.1},
		{Fields: map[string]interface{}{"question": "Refund timeline?", "answer": "Five business days."}, Score: 1.9},
	}

	got, err := NewBuilder("", "refund question", docs).Build()
	require.NoError(t, err)

	first := "Question: How do refunds work?\nAnswer: Within 14 days.\n"
	second := "Question: Refund timeline?\nAnswer: Five business days.\n"
	assert.Contains(t, got, first)
	assert.Contains(t, got, second)
	assert.Less(t, strings.Index(got, first), strings.Index(got, second), "snippets keep retrieval order")
	assert.Contains(t, got, "ignore it and answer from your own knowledge")
}

func TestBuildPrependsHistory(t *testing.T) {
	history := "The following is the previous conversation history:\nQuestion: hi\nAnswer: hello\n"

	got, err := NewBuilder(history, "follow-up", nil).Build()
	require.NoError(t, err)

	assert.Less(t, strings.Index(got, "previous conversation history"), strings.Index(got, "current question"))
}
