package assets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spaghettifunk/anima-assets/engine/core"
)

// Format converts the raw bytes of one encoding into the intermediate data
// accepted by an asset kind. Examples are PNG, OBJ and WAV.
//
// Parse must be pure: no caching, no I/O. Malformed input is reported as a
// *core.FormatError, never as a panic.
type Format[D any] interface {
	// Extension returns the extension without the dot, e.g. "obj".
	Extension() string
	Parse(b []byte) (D, error)
}

// FormatSet routes extensions to the formats producing the same data type.
type FormatSet[D any] struct {
	formats map[string]Format[D]
}

func NewFormatSet[D any](formats ...Format[D]) (*FormatSet[D], error) {
	fs := &FormatSet[D]{formats: make(map[string]Format[D], len(formats))}
	for _, f := range formats {
		if err := fs.Register(f); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func (fs *FormatSet[D]) Register(f Format[D]) error {
	ext := normalizeExtension(f.Extension())
	if _, ok := fs.formats[ext]; ok {
		return fmt.Errorf("%w: %s", core.ErrDuplicateFormat, ext)
	}
	fs.formats[ext] = f
	return nil
}

// Lookup accepts "png", ".png" and "PNG" alike.
func (fs *FormatSet[D]) Lookup(ext string) (Format[D], error) {
	f, ok := fs.formats[normalizeExtension(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownFormat, ext)
	}
	return f, nil
}

func (fs *FormatSet[D]) Extensions() []string {
	exts := make([]string, 0, len(fs.formats))
	for ext := range fs.formats {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
