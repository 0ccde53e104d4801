package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/math"
)

/**
 * @brief Geometry decoded from a model file, ready to be turned into a mesh.
 */
type MeshData struct {
	/** @brief The name of the first object or group, if any. */
	Name string
	/** @brief The vertex buffer. */
	Vertices []math.Vertex3D
	/** @brief Triangle list indices into Vertices. */
	Indices []uint32
	/** @brief True when every vertex got its normal from the file. */
	HasNormals bool
}

// OBJ reads the geometry subset of Wavefront OBJ: v, vt, vn, f (polygons are
// fan triangulated, negative indices are relative) and o/g names. Material
// and smoothing statements are skipped.
type OBJ struct{}

func (OBJ) Extension() string { return "obj" }

type objCorner struct {
	v, vt, vn int
}

func (OBJ) Parse(b []byte) (data MeshData, err error) {
	defer recoverParse("obj", &err)

	var (
		positions []math.Vec3
		texcoords []math.Vec2
		normals   []math.Vec3
		corners   = make(map[objCorner]uint32)
	)
	data.HasNormals = true

	scanner := bufio.NewScanner(bytes.NewReader(b))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			f, err := parseFloats(fields[1:], 3)
			if err != nil {
				return MeshData{}, objError(lineNo, "invalid vertex position", err)
			}
			positions = append(positions, math.NewVec3(f[0], f[1], f[2]))
		case "vt":
			f, err := parseFloats(fields[1:], 2)
			if err != nil {
				return MeshData{}, objError(lineNo, "invalid texture coordinate", err)
			}
			texcoords = append(texcoords, math.Vec2{X: f[0], Y: f[1]})
		case "vn":
			f, err := parseFloats(fields[1:], 3)
			if err != nil {
				return MeshData{}, objError(lineNo, "invalid normal", err)
			}
			normals = append(normals, math.NewVec3(f[0], f[1], f[2]))
		case "f":
			if len(fields) < 4 {
				return MeshData{}, objError(lineNo, "face needs at least 3 vertices", nil)
			}
			face := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				c, err := parseCorner(ref, len(positions), len(texcoords), len(normals))
				if err != nil {
					return MeshData{}, objError(lineNo, "invalid face", err)
				}
				idx, ok := corners[c]
				if !ok {
					vert := math.Vertex3D{
						Position: positions[c.v],
						Colour:   math.NewVec4One(),
					}
					if c.vt >= 0 {
						vert.Texcoord = texcoords[c.vt]
					}
					if c.vn >= 0 {
						vert.Normal = normals[c.vn]
					} else {
						data.HasNormals = false
					}
					idx = uint32(len(data.Vertices))
					data.Vertices = append(data.Vertices, vert)
					corners[c] = idx
				}
				face = append(face, idx)
			}
			for i := 1; i+1 < len(face); i++ {
				data.Indices = append(data.Indices, face[0], face[i], face[i+1])
			}
		case "o", "g":
			if data.Name == "" && len(fields) > 1 {
				data.Name = strings.Join(fields[1:], " ")
			}
		default:
			// mtllib, usemtl, s, l, p ...
		}
	}
	if err := scanner.Err(); err != nil {
		return MeshData{}, core.NewFormatError("obj", "failed to read input", err)
	}

	if len(data.Indices) == 0 {
		return MeshData{}, core.NewFormatError("obj", "no faces found", nil)
	}
	return data, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseCorner resolves "v", "v/vt", "v//vn" or "v/vt/vn" into zero based
// indices; a missing component is -1.
func parseCorner(ref string, nv, nvt, nvn int) (objCorner, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return objCorner{}, fmt.Errorf("malformed vertex reference '%s'", ref)
	}

	c := objCorner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], nv); err != nil {
		return objCorner{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], nvt); err != nil {
			return objCorner{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], nvn); err != nil {
			return objCorner{}, err
		}
	}
	return c, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index '%s'", s)
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range (count=%d)", i, count)
	}
}

func objError(line int, reason string, cause error) error {
	return core.NewFormatError("obj", fmt.Sprintf("line %d: %s", line, reason), cause)
}
