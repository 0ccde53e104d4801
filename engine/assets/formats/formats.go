// Package formats holds the byte encodings the engine understands. Every
// format is a pure parser: it never touches the filesystem and never caches.
package formats

import (
	"fmt"

	"github.com/spaghettifunk/anima-assets/engine/core"
)

// recoverParse turns a decoder panic into a FormatError for the given format.
func recoverParse(ext string, err *error) {
	if r := recover(); r != nil {
		*err = core.NewFormatError(ext, "decoder panicked", fmt.Errorf("%v", r))
	}
}
