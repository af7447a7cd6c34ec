package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	for _, info := range Styles() {
		s, err := ParseStyle(string(info.Style))
		require.NoError(t, err)
		assert.Equal(t, info.Style, s)
	}

	for _, bad := range []string{"", "H1", "h5", "paragraph"} {
		_, err := ParseStyle(bad)
		assert.ErrorIs(t, err, ErrUnknownStyle, bad)
	}
}

func TestStyleTable(t *testing.T) {
	infos := Styles()
	require.Len(t, infos, 10)
	for _, info := range infos {
		assert.Equal(t, info.Style == Bullet || info.Style == Enumerate, info.List, info.Style)
		assert.NotEmpty(t, info.Placeholder)
		assert.NotEmpty(t, info.Class)
	}
	assert.Panics(t, func() { Style("table").Info() })
	assert.False(t, Style("table").IsList())
}
