package formats

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/math"
)

/**
 * @brief Material configuration as read from a material file.
 */
type MaterialData struct {
	Name string
	/** @brief The name of the shader the material is rendered with. */
	ShaderName    string
	DiffuseColour math.Vec4
	Shininess     float32
	/** @brief Texture names; empty means the renderer's default map. */
	DiffuseMapName  string
	SpecularMapName string
	NormalMapName   string
	AutoRelease     bool
}

type materialFile struct {
	Name            string    `toml:"name"`
	Shader          string    `toml:"shader"`
	DiffuseColour   []float32 `toml:"diffuse_colour"`
	Shininess       float32   `toml:"shininess"`
	DiffuseMapName  string    `toml:"diffuse_map_name"`
	SpecularMapName string    `toml:"specular_map_name"`
	NormalMapName   string    `toml:"normal_map_name"`
	AutoRelease     bool      `toml:"auto_release"`
}

// MaterialTOML reads material files written in TOML:
//
//	name = "wood"
//	shader = "Builtin.MaterialShader"
//	diffuse_colour = [1.0, 1.0, 1.0, 1.0]
//	shininess = 8.0
//	diffuse_map_name = "wood_diffuse"
type MaterialTOML struct{}

func (MaterialTOML) Extension() string { return "toml" }

func (MaterialTOML) Parse(b []byte) (data MaterialData, err error) {
	defer recoverParse("toml", &err)

	var mf materialFile
	dec := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields()
	if err := dec.Decode(&mf); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return MaterialData{}, core.NewFormatError("toml", fmt.Sprintf("syntax error at %d:%d", row, col), err)
		}
		return MaterialData{}, core.NewFormatError("toml", "invalid material", err)
	}

	if mf.DiffuseColour == nil {
		mf.DiffuseColour = []float32{1, 1, 1, 1}
	}
	if len(mf.DiffuseColour) != 4 {
		return MaterialData{}, core.NewFormatError("toml", fmt.Sprintf("diffuse_colour expects 4 values, got %d", len(mf.DiffuseColour)), nil)
	}

	return MaterialData{
		Name:            mf.Name,
		ShaderName:      mf.Shader,
		DiffuseColour:   math.NewVec4(mf.DiffuseColour[0], mf.DiffuseColour[1], mf.DiffuseColour[2], mf.DiffuseColour[3]),
		Shininess:       mf.Shininess,
		DiffuseMapName:  mf.DiffuseMapName,
		SpecularMapName: mf.SpecularMapName,
		NormalMapName:   mf.NormalMapName,
		AutoRelease:     mf.AutoRelease,
	}, nil
}
