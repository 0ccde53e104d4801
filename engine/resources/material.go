package resources

import (
	"fmt"

	"github.com/spaghettifunk/anima-assets/engine/assets"
	"github.com/spaghettifunk/anima-assets/engine/assets/formats"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/math"
)

/** @brief A collection of texture uses */
type TextureUse int

const (
	/** @brief An unknown use. This is default, but should never actually be used. */
	TextureUseUnknown TextureUse = 0x00
	/** @brief The texture is used as a diffuse map. */
	TextureUseMapDiffuse TextureUse = 0x01
	/** @brief The texture is used as a specular map. */
	TextureUseMapSpecular TextureUse = 0x02
	/** @brief The texture is used as a normal map. */
	TextureUseMapNormal TextureUse = 0x03
)

/**
 * @brief Names the texture a material samples for one use. The texture
 * itself is resolved by whoever renders the material.
 */
type TextureMap struct {
	TextureName string
	Use         TextureUse
}

/**
 * @brief A material, which represents various properties
 * of a surface in the world such as texture, colour,
 * bumpiness, shininess and more.
 */
type Material struct {
	Name          string
	ShaderName    string
	DiffuseColour math.Vec4
	DiffuseMap    TextureMap
	SpecularMap   TextureMap
	NormalMap     TextureMap
	/** @brief The material shininess, determines how concentrated the specular lighting is. */
	Shininess   float32
	AutoRelease bool
}

type MaterialContext struct {
	/** @brief Used when the material file names no shader. */
	DefaultShader string
}

// MaterialKind converts material configs into materials. Materials are
// small, so they are never cached.
type MaterialKind struct {
	assets.NoCache[Material, *MaterialContext]
}

var _ assets.Kind[Material, *MaterialContext, formats.MaterialData] = MaterialKind{}

func (MaterialKind) Category() string { return "material" }

func (k MaterialKind) FromData(data formats.MaterialData, ctx *MaterialContext) (Material, error) {
	shader := data.ShaderName
	if shader == "" {
		shader = ctx.DefaultShader
	}

	if data.Name == "" {
		return Material{}, core.NewAssetError(k.Category(), "material name is required", nil)
	}
	if shader == "" {
		return Material{}, core.NewAssetError(k.Category(), "shader name is required", nil)
	}
	if !isValidColour(data.DiffuseColour) {
		return Material{}, core.NewAssetError(k.Category(), fmt.Sprintf("diffuse_colour values must be between 0.0 and 1.0, got %v", data.DiffuseColour), nil)
	}
	if data.Shininess < 0 {
		return Material{}, core.NewAssetError(k.Category(), "shininess must be a non-negative value", nil)
	}

	return Material{
		Name:          data.Name,
		ShaderName:    shader,
		DiffuseColour: data.DiffuseColour,
		DiffuseMap:    TextureMap{TextureName: data.DiffuseMapName, Use: TextureUseMapDiffuse},
		SpecularMap:   TextureMap{TextureName: data.SpecularMapName, Use: TextureUseMapSpecular},
		NormalMap:     TextureMap{TextureName: data.NormalMapName, Use: TextureUseMapNormal},
		Shininess:     data.Shininess,
		AutoRelease:   data.AutoRelease,
	}, nil
}

func isValidColour(v math.Vec4) bool {
	return math.InRange(v.X, 0, 1) && math.InRange(v.Y, 0, 1) && math.InRange(v.Z, 0, 1) && math.InRange(v.W, 0, 1)
}
