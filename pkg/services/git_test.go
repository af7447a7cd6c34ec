package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTempFile(t *testing.T) {
	name, err := writeTempFile("diff_test_*", []byte("body\n"))
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "body\n", string(data))
}

func TestWriteTempFileFailure(t *testing.T) {
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))

	_, err := writeTempFile("diff_test_*", []byte("x"))
	assert.Error(t, err)

	_, err = Diff([]byte("a"), []byte("b"))
	assert.Error(t, err)
}
