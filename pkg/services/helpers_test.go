package services

import (
	"os"
	"path/filepath"
	"testing"

	"landing-cms/pkg/config"
	"landing-cms/pkg/models"

	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func setupRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	prevRepo, prevFormat := config.RepoPath, config.SectionFormat
	config.RepoPath = root
	config.SectionFormat = "yaml"
	InvalidateCache()
	t.Cleanup(func() {
		config.RepoPath = prevRepo
		config.SectionFormat = prevFormat
		InvalidateCache()
	})
	return root
}

func writeRepoFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	InvalidateCache()
}

func intPtr(v int) *int { return &v }

func heroDoc(title string, order int) models.SectionDocument {
	return models.SectionDocument{
		Title:   title,
		Type:    models.SectionHero,
		Order:   intPtr(order),
		Content: "Welcome to the show",
	}
}
