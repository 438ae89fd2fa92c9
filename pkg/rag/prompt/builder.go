package prompt

import (
	"errors"
	"strings"

	"helpdesk-rag-be/pkg/search"
)

// ErrBlankQuestion is the builder's only failure mode.
var ErrBlankQuestion = errors.New("blank question")

// Builder assembles the final prompt handed to the language model from the
// rendered conversation history, the current question and the retrieved
// knowledge snippets. Pure data transformation, no I/O.
type Builder struct {
	history   string
	question  string
	documents []search.Document
}

func NewBuilder(history, question string, documents []search.Document) *Builder {
	return &Builder{
		history:   history,
		question:  question,
		documents: documents,
	}
}

// Build renders the prompt. With no retrieved documents the prompt ends
// with the answer-from-general-knowledge instruction; otherwise it carries
// a labelled snippet section in retrieval order plus the closing grounding
// instruction.
func (b *Builder) Build() (string, error) {
	if strings.TrimSpace(b.question) == "" {
		return "", ErrBlankQuestion
	}

	var sb strings.Builder

	if b.history != "" {
		sb.WriteString(b.history)
		sb.WriteString("\n")
	}

	b.writeQuestion(&sb)

	if len(b.documents) == 0 {
		sb.WriteString("No reference material is available for this question. Answer it from your own general knowledge, in a professional and concise tone.")
		return sb.String(), nil
	}

	b.writeKnowledge(&sb)
	b.writeClosing(&sb)

	return sb.String(), nil
}

func (b *Builder) writeQuestion(sb *strings.Builder) {
	sb.WriteString("The user's current question is: ")
	sb.WriteString(b.question)
	sb.WriteString("\n\n")
}

func (b *Builder) writeKnowledge(sb *strings.Builder) {
	sb.WriteString("Here are some related question/answer pairs from the knowledge base. Use them as reference when answering:\n\n")
	for _, doc := range b.documents {
		sb.WriteString("Question: ")
		sb.WriteString(doc.Field("question"))
		sb.WriteString("\n")
		sb.WriteString("Answer: ")
		sb.WriteString(doc.Field("answer"))
		sb.WriteString("\n\n")
	}
}

func (b *Builder) writeClosing(sb *strings.Builder) {
	sb.WriteString("Answer the question in a professional, concise tone based on the information above and the conversation history. ")
	sb.WriteString("If the information above is insufficient or unrelated to the question, ignore it and answer from your own knowledge instead.")
}
