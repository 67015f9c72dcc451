package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

// ForFile picks an extractor based on the file extension.
func ForFile(path string) (domain.Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDF{}, nil
	case ".md", ".markdown":
		return Markdown{}, nil
	case ".txt", ".text":
		return Plaintext{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}
