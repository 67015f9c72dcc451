package service

import (
	"fmt"
	"strings"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

// ComposeContext linearizes matches into a prompt-ready string, one
// block per match with its page provenance, separated by blank lines.
// Pure and deterministic; empty input yields an empty string.
func ComposeContext(matches []domain.Match) string {
	if len(matches) == 0 {
		return ""
	}
	blocks := make([]string, len(matches))
	for i, m := range matches {
		blocks[i] = fmt.Sprintf("[Page %d] %s", m.Page, m.Text)
	}
	return strings.Join(blocks, "\n\n")
}
