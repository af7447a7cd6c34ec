package services

import (
	"testing"

	"reko-cms/pkg/blocks"
	"reko-cms/pkg/config"

	"github.com/stretchr/testify/require"
)

// setupRepo points the services at an empty temporary repository.
func setupRepo(t *testing.T) string {
	t.Helper()
	oldRepo, oldFormat := config.RepoPath, config.DefaultFormat
	config.RepoPath = t.TempDir()
	config.DefaultFormat = "yaml"
	InvalidateCache()

	sessionsMu.Lock()
	sessions = map[string]*EditorSession{}
	sessionsMu.Unlock()

	t.Cleanup(func() {
		config.RepoPath, config.DefaultFormat = oldRepo, oldFormat
		InvalidateCache()
	})
	return config.RepoPath
}

func sampleBlocks(t *testing.T) blocks.Document {
	t.Helper()
	doc, err := blocks.FromBlocks([]blocks.Block{
		{Style: blocks.H2, Content: "Intro"},
		{Style: blocks.Text, Content: "Hello there."},
		{Style: blocks.Bullet, Points: []string{"one", "two"}},
	})
	require.NoError(t, err)
	return doc
}
