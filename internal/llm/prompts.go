package llm

import "fmt"

// AnswerPrompt builds the grounded question prompt. The model is told
// to answer only from the provided context so retrieval stays the
// source of truth.
func AnswerPrompt(context, question string) string {
	return fmt.Sprintf("Answer the question based only on the context below. If not found, reply: 'Not present in the PDF.'\n\nContext:\n%s\n\nQuestion: %s", context, question)
}

// SummaryPrompt builds the upload-time summary prompt.
func SummaryPrompt(text string, bullets int) string {
	return fmt.Sprintf("Summarize the following text into %d concise bullet points:\n\n%s", bullets, text)
}
