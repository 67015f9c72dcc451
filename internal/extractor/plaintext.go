package extractor

import (
	"os"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

// Plaintext treats the whole file as a single page 0.
type Plaintext struct{}

func (Plaintext) Extract(path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []domain.Page{{Number: 0, Text: string(data)}}, nil
}
