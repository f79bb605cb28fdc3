// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesNonEmpty(t *testing.T) {
	kw := Default()
	assert.NotEmpty(t, kw.Academic)
	assert.NotEmpty(t, kw.Company)
	assert.NotEmpty(t, kw.KnownCompanies)
}

func TestLoadKeywords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	content := `academic:
  - academy
company:
  - widgets
known_companies:
  - initech
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	kw, err := LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"academy"}, kw.Academic)
	assert.Equal(t, []string{"widgets"}, kw.Company)
	assert.Equal(t, []string{"initech"}, kw.KnownCompanies)
}

func TestLoadKeywordsPartialFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	content := `known_companies:
  - initech
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	kw, err := LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"initech"}, kw.KnownCompanies)
	assert.Equal(t, Default().Academic, kw.Academic)
	assert.Equal(t, Default().Company, kw.Company)
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	_, err := LoadKeywords(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadKeywordsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t-bad"), 0o644))

	_, err := LoadKeywords(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing keywords file")
}
