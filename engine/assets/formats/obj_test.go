package formats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/math"
)

const quadOBJ = `# a unit quad
mtllib quad.mtl
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl default
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestOBJQuad(t *testing.T) {
	data, err := OBJ{}.Parse([]byte(quadOBJ))
	require.NoError(t, err)

	assert.Equal(t, "Quad", data.Name)
	assert.True(t, data.HasNormals)
	require.Len(t, data.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, data.Indices)

	assert.Equal(t, math.NewVec3(1, 1, 0), data.Vertices[2].Position)
	assert.Equal(t, math.Vec2{X: 1, Y: 1}, data.Vertices[2].Texcoord)
	assert.Equal(t, math.NewVec3(0, 0, 1), data.Vertices[2].Normal)
	assert.Equal(t, math.NewVec4One(), data.Vertices[2].Colour)
}

func TestOBJSharedCornersAndNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f -4 -3 -2
f 2 4 3
`
	data, err := OBJ{}.Parse([]byte(src))
	require.NoError(t, err)

	assert.False(t, data.HasNormals)
	assert.Len(t, data.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 1, 3, 2}, data.Indices)
}

func TestOBJPositionOnlyAndNormalOnlyRefs(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`
	data, err := OBJ{}.Parse([]byte(src))
	require.NoError(t, err)
	assert.True(t, data.HasNormals)
	assert.Equal(t, math.Vec2{}, data.Vertices[0].Texcoord)
}

func TestOBJMalformed(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"no faces":       "v 0 0 0\nv 1 0 0\n",
		"bad float":      "v 0 zero 0\n",
		"short vertex":   "v 0 0\n",
		"short face":     "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"index zero":     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"out of range":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"bad reference":  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1/1 2 3\n",
		"missing normal": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := OBJ{}.Parse([]byte(src))
			var ferr *core.FormatError
			require.True(t, errors.As(err, &ferr), "got %v", err)
			assert.Equal(t, "obj", ferr.Format)
		})
	}
}
