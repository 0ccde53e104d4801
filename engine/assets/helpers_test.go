package assets

import (
	"strings"
	"sync/atomic"

	"github.com/spaghettifunk/anima-assets/engine/core"
)

// textFormat parses "txt" bytes into a string and counts its calls.
type textFormat struct {
	calls atomic.Int32
	gate  chan struct{}
}

func (*textFormat) Extension() string { return "txt" }

func (f *textFormat) Parse(b []byte) (string, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if strings.HasPrefix(string(b), "\xff") {
		return "", core.NewFormatError("txt", "not utf-8 text", nil)
	}
	return string(b), nil
}

type upperContext struct {
	cache *Cache[string]
}

// upperKind upper-cases text and caches the result in its context.
type upperKind struct {
	CacheHooks[string, *upperContext]
}

func newUpperKind() upperKind {
	return upperKind{
		CacheHooks: CacheHooks[string, *upperContext]{
			From: func(ctx *upperContext) *Cache[string] { return ctx.cache },
			Keep: func(_ ResourceKey, v *string) bool { return !strings.HasPrefix(*v, "TMP") },
		},
	}
}

func (upperKind) Category() string { return "upper" }

func (upperKind) FromData(data string, _ *upperContext) (string, error) {
	if data == "" {
		return "", core.NewAssetError("upper", "empty text", nil)
	}
	return strings.ToUpper(data), nil
}

// plainKind relies on the default hooks.
type plainKind struct {
	NoCache[string, *upperContext]
}

func (plainKind) Category() string { return "plain" }

func (plainKind) FromData(data string, _ *upperContext) (string, error) {
	return data, nil
}
