package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestForFile(t *testing.T) {
	e, err := ForFile("report.pdf")
	require.NoError(t, err)
	assert.IsType(t, PDF{}, e)

	e, err = ForFile("notes.md")
	require.NoError(t, err)
	assert.IsType(t, Markdown{}, e)

	e, err = ForFile("readme.TXT")
	require.NoError(t, err)
	assert.IsType(t, Plaintext{}, e)

	_, err = ForFile("image.png")
	assert.Error(t, err)
}

func TestPlaintextSinglePage(t *testing.T) {
	path := writeTemp(t, "doc.txt", "one two three")

	pages, err := Plaintext{}.Extract(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 0, pages[0].Number)
	assert.Equal(t, "one two three", pages[0].Text)
}

func TestMarkdownSectionsBecomePages(t *testing.T) {
	src := "# Intro\n\nFirst section text.\n\n## Details\n\nSecond section text.\n\n### Sub\n\nStays with details.\n"
	path := writeTemp(t, "doc.md", src)

	pages, err := Markdown{}.Extract(path)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, 0, pages[0].Number)
	assert.Contains(t, pages[0].Text, "Intro")
	assert.Contains(t, pages[0].Text, "First section text.")

	assert.Equal(t, 1, pages[1].Number)
	assert.Contains(t, pages[1].Text, "Details")
	assert.Contains(t, pages[1].Text, "Second section text.")
	assert.Contains(t, pages[1].Text, "Stays with details.")
}

func TestMarkdownWithoutHeadings(t *testing.T) {
	path := writeTemp(t, "doc.md", "just a paragraph\n")

	pages, err := Markdown{}.Extract(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0].Text, "just a paragraph")
}
