package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-assets/engine/core"
)

type csvFormat struct{}

func (csvFormat) Extension() string              { return "csv" }
func (csvFormat) Parse(b []byte) (string, error) { return string(b), nil }

func TestFormatSetLookup(t *testing.T) {
	fs, err := NewFormatSet[string](&textFormat{}, csvFormat{})
	require.NoError(t, err)

	for _, ext := range []string{"txt", ".txt", "TXT"} {
		f, err := fs.Lookup(ext)
		require.NoError(t, err, ext)
		assert.Equal(t, "txt", f.Extension())
	}

	_, err = fs.Lookup("png")
	assert.ErrorIs(t, err, core.ErrUnknownFormat)
	assert.Equal(t, []string{"csv", "txt"}, fs.Extensions())
}

func TestFormatSetDuplicate(t *testing.T) {
	_, err := NewFormatSet[string](csvFormat{}, csvFormat{})
	assert.ErrorIs(t, err, core.ErrDuplicateFormat)
}
