package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerPrompt(t *testing.T) {
	p := AnswerPrompt("[Page 0] Cats are mammals.", "Are cats mammals?")

	assert.Contains(t, p, "[Page 0] Cats are mammals.")
	assert.Contains(t, p, "Question: Are cats mammals?")
	assert.Contains(t, p, "Not present in the PDF.")
}

func TestSummaryPrompt(t *testing.T) {
	p := SummaryPrompt("some document text", 5)

	assert.Contains(t, p, "5 concise bullet points")
	assert.Contains(t, p, "some document text")
}
