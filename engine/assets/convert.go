package assets

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/spaghettifunk/anima-assets/engine/core"
)

// Converter runs the conversion sequence for bytes the caller already read:
// Retrieve, then Parse and FromData on a miss, then Cache. It does no I/O
// and keeps no state besides the in-flight conversions, which are shared
// between concurrent callers asking for the same key.
type Converter[A, C, D any] struct {
	kind  Kind[A, C, D]
	ctx   C
	group singleflight.Group
}

func NewConverter[A, C, D any](kind Kind[A, C, D], ctx C) *Converter[A, C, D] {
	return &Converter[A, C, D]{
		kind: kind,
		ctx:  ctx,
	}
}

func (cv *Converter[A, C, D]) Kind() Kind[A, C, D] { return cv.kind }
func (cv *Converter[A, C, D]) Context() C          { return cv.ctx }

func (cv *Converter[A, C, D]) Convert(key ResourceKey, format Format[D], b []byte) (A, error) {
	var zero A

	if normalizeExtension(key.Extension()) != normalizeExtension(format.Extension()) {
		return zero, fmt.Errorf("%w: key '%s', format '%s'", core.ErrExtensionMismatch, key.Extension(), format.Extension())
	}

	if asset, ok := cv.kind.Retrieve(cv.ctx, key); ok {
		core.LogDebug("%s cache hit for %s", cv.kind.Category(), key)
		return asset, nil
	}

	v, err, _ := cv.group.Do(flightKey(key), func() (interface{}, error) {
		// Another flight may have finished between our miss and this call.
		if asset, ok := cv.kind.Retrieve(cv.ctx, key); ok {
			return asset, nil
		}

		data, err := format.Parse(b)
		if err != nil {
			return nil, err
		}

		asset, err := cv.kind.FromData(data, cv.ctx)
		if err != nil {
			return nil, err
		}

		cv.kind.Cache(cv.ctx, key, asset)
		core.LogDebug("%s converted %s", cv.kind.Category(), key)
		return asset, nil
	})
	if err != nil {
		core.LogError("%s conversion of %s failed: %s", cv.kind.Category(), key, err)
		return zero, err
	}

	// Every caller gets its own duplicate when the kind caches, so nobody
	// holds the stored entry.
	if asset, ok := cv.kind.Retrieve(cv.ctx, key); ok {
		return asset, nil
	}
	asset, _ := v.(A)
	return asset, nil
}

// ConvertWith picks the format from the key's extension.
func (cv *Converter[A, C, D]) ConvertWith(formats *FormatSet[D], key ResourceKey, b []byte) (A, error) {
	format, err := formats.Lookup(key.Extension())
	if err != nil {
		var zero A
		return zero, err
	}
	return cv.Convert(key, format, b)
}

func (cv *Converter[A, C, D]) Clear() {
	cv.kind.Clear(cv.ctx)
}

func (cv *Converter[A, C, D]) ClearAll() {
	cv.kind.ClearAll(cv.ctx)
}

func flightKey(key ResourceKey) string {
	return key.extension + "\x00" + key.name + "\x00" + key.store.String()
}
