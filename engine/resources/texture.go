package resources

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-assets/engine/assets"
	"github.com/spaghettifunk/anima-assets/engine/assets/formats"
	"github.com/spaghettifunk/anima-assets/engine/core"
)

type TextureFlag int

const (
	/** @brief Indicates if the texture has transparency. */
	TextureFlagHasTransparency TextureFlag = 0x1
	/** @brief Indicates if the texture can be written (rendered) to. */
	TextureFlagIsWriteable TextureFlag = 0x2
)

/** @brief Holds bit flags for textures.. */
type TextureFlagBits uint8

func (f TextureFlagBits) Has(flag TextureFlag) bool {
	return f&TextureFlagBits(flag) != 0
}

/**
 * @brief Represents a texture.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uuid.UUID
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief Released on the next Clear of its cache. */
	AutoRelease bool
	/** @brief The raw texture data (pixels). */
	Pixels []uint8
}

// Clone returns a deep copy, so a cached texture cannot be changed through a
// retrieved one.
func (t *Texture) Clone() *Texture {
	if t == nil {
		return nil
	}
	c := *t
	c.Pixels = slices.Clone(t.Pixels)
	return &c
}

type TextureContext struct {
	/** @brief Holds converted textures. Retrieval hands out deep copies. */
	Cache *assets.Cache[*Texture]
	/** @brief Largest accepted width or height. Zero disables the check. */
	MaxDimension uint32
	/** @brief Marks new textures as auto release. */
	AutoRelease bool
}

func NewTextureContext(config core.TextureConfig) *TextureContext {
	return &TextureContext{
		Cache:        assets.NewCache[*Texture](),
		MaxDimension: config.MaxDimension,
		AutoRelease:  config.AutoRelease,
	}
}

// TextureKind converts decoded images into textures. Textures are cached in
// the context; Clear drops the auto release ones.
type TextureKind struct {
	assets.CacheHooks[*Texture, *TextureContext]
}

var _ assets.Kind[*Texture, *TextureContext, formats.ImageData] = TextureKind{}

func NewTextureKind() TextureKind {
	return TextureKind{
		CacheHooks: assets.CacheHooks[*Texture, *TextureContext]{
			From: func(ctx *TextureContext) *assets.Cache[*Texture] {
				return ctx.Cache
			},
			Keep: func(_ assets.ResourceKey, t **Texture) bool {
				return *t != nil && !(*t).AutoRelease
			},
		},
	}
}

func (TextureKind) Category() string { return "texture" }

func (k TextureKind) FromData(data formats.ImageData, ctx *TextureContext) (*Texture, error) {
	if data.Width == 0 || data.Height == 0 {
		return nil, core.NewAssetError(k.Category(), fmt.Sprintf("invalid dimensions %dx%d", data.Width, data.Height), nil)
	}
	if ctx.MaxDimension > 0 && (data.Width > ctx.MaxDimension || data.Height > ctx.MaxDimension) {
		return nil, core.NewAssetError(k.Category(), fmt.Sprintf("dimensions %dx%d exceed the maximum of %d", data.Width, data.Height, ctx.MaxDimension), nil)
	}
	if data.ChannelCount == 0 || data.ChannelCount > 4 {
		return nil, core.NewAssetError(k.Category(), fmt.Sprintf("unsupported channel count %d", data.ChannelCount), nil)
	}

	expected := uint64(data.Width) * uint64(data.Height) * uint64(data.ChannelCount)
	if uint64(len(data.Pixels)) != expected {
		return nil, core.NewAssetError(k.Category(), fmt.Sprintf("pixel buffer holds %d bytes, expected %d", len(data.Pixels), expected), nil)
	}

	t := &Texture{
		ID:           uuid.New(),
		Width:        data.Width,
		Height:       data.Height,
		ChannelCount: data.ChannelCount,
		AutoRelease:  ctx.AutoRelease,
		Pixels:       slices.Clone(data.Pixels),
	}
	if data.HasTransparency {
		t.Flags |= TextureFlagBits(TextureFlagHasTransparency)
	}
	return t, nil
}
