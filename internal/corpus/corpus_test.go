package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizkb/internal/domain"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsSamples(t *testing.T) {
	docs, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	ids := make(map[string]bool, len(docs))
	for _, d := range docs {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Content)
		assert.False(t, ids[d.ID], "sample ids must be unique")
		ids[d.ID] = true
	}
	assert.True(t, ids["POLICY-001"])
}

func TestLoad_FromFile(t *testing.T) {
	path := writeCorpus(t, `
documents:
  - id: DOC-001
    title: First
    content: first content
    category: HR
  - id: DOC-002
    title: Second
    content: second content
    category: Finance
`)
	docs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "DOC-001", docs[0].ID)
	assert.Equal(t, "Finance", docs[1].Category)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeCorpus(t, "documents: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptyCorpus(t *testing.T) {
	path := writeCorpus(t, "documents: []")
	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_MissingID(t *testing.T) {
	path := writeCorpus(t, `
documents:
  - title: No ID
    content: text
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_DuplicateID(t *testing.T) {
	path := writeCorpus(t, `
documents:
  - id: DOC-001
    content: first
  - id: DOC-001
    content: second
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
