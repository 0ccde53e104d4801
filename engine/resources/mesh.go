package resources

import (
	"fmt"
	"slices"

	"github.com/spaghettifunk/anima-assets/engine/assets"
	"github.com/spaghettifunk/anima-assets/engine/assets/formats"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/math"
)

/**
 * @brief Represents actual geometry in the world, as a triangle list.
 */
type Mesh struct {
	Name     string
	Vertices []math.Vertex3D
	Indices  []uint32
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
}

// Clone returns a deep copy, so meshes read from a cache never alias the
// cached buffers.
func (m Mesh) Clone() Mesh {
	m.Vertices = slices.Clone(m.Vertices)
	m.Indices = slices.Clone(m.Indices)
	return m
}

type MeshContext struct {
	Cache           *assets.Cache[Mesh]
	GenerateNormals bool
	Deduplicate     bool
}

func NewMeshContext(config core.MeshConfig) *MeshContext {
	return &MeshContext{
		Cache:           assets.NewCache[Mesh](),
		GenerateNormals: config.GenerateNormals,
		Deduplicate:     config.Deduplicate,
	}
}

// MeshKind converts model geometry into meshes. Meshes are cached by value
// and deep copied on retrieval. Clear keeps everything; only ClearAll drops
// cached meshes.
type MeshKind struct {
	assets.CacheHooks[Mesh, *MeshContext]
}

var _ assets.Kind[Mesh, *MeshContext, formats.MeshData] = MeshKind{}

func NewMeshKind() MeshKind {
	return MeshKind{
		CacheHooks: assets.CacheHooks[Mesh, *MeshContext]{
			From: func(ctx *MeshContext) *assets.Cache[Mesh] {
				return ctx.Cache
			},
		},
	}
}

func (MeshKind) Category() string { return "mesh" }

func (k MeshKind) FromData(data formats.MeshData, ctx *MeshContext) (Mesh, error) {
	if err := k.validate(data); err != nil {
		return Mesh{}, err
	}

	// The data may still be referenced by the caller.
	vertices := slices.Clone(data.Vertices)
	indices := slices.Clone(data.Indices)

	if !data.HasNormals {
		if ctx.GenerateNormals {
			math.GenerateNormals(vertices, indices)
		} else {
			core.LogWarn("Mesh '%s' has no normals and normal generation is disabled.", data.Name)
		}
	}
	if ctx.Deduplicate {
		vertices, indices = math.DeduplicateVertices(vertices, indices)
	}

	ext := math.CalculateExtents(vertices)
	return Mesh{
		Name:     data.Name,
		Vertices: vertices,
		Indices:  indices,
		Extents:  ext,
		Center: math.NewVec3(
			(ext.Min.X+ext.Max.X)*0.5,
			(ext.Min.Y+ext.Max.Y)*0.5,
			(ext.Min.Z+ext.Max.Z)*0.5),
	}, nil
}

func (k MeshKind) validate(data formats.MeshData) error {
	if len(data.Vertices) == 0 {
		return core.NewAssetError(k.Category(), "mesh has no vertices", nil)
	}
	if len(data.Indices) == 0 || len(data.Indices)%3 != 0 {
		return core.NewAssetError(k.Category(), fmt.Sprintf("index count %d is not a triangle list", len(data.Indices)), nil)
	}
	for i, idx := range data.Indices {
		if int(idx) >= len(data.Vertices) {
			return core.NewAssetError(k.Category(), fmt.Sprintf("index %d at position %d out of range (vertices=%d)", idx, i, len(data.Vertices)), nil)
		}
	}
	return nil
}
