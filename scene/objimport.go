package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/achilleasa/scenecore/types"
)

// ImportWavefrontMesh parses position/normal/uv/face data out of a
// wavefront OBJ stream into a single triangle-mesh prototype, ignoring mtl
// references and every other OBJ directive: USD scene loading is this
// spec's external, out-of-scope ingestion path (see spec.md's Non-goals),
// so this exists purely to give the CLI commands a concrete, easy-to-author
// mesh source to instance. Grounded on
// asset/scene/reader/wavefront.go's line-tokenizing loop, stripped of that
// file's material-expression compilation (scenecore prototypes carry a
// single principled Material, bound separately by the caller).
func ImportWavefrontMesh(r io.Reader, orientation Orientation) (positions []types.Vec3, normals []types.Vec3, uvs []types.Vec2, triangles []Triangle, err error) {
	var haveNormals, haveUVs bool

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		switch tokens[0] {
		case "v":
			v, perr := parseVec3(tokens[1:])
			if perr != nil {
				return nil, nil, nil, nil, fmt.Errorf("line %d: %w", lineNo, perr)
			}
			positions = append(positions, v)
		case "vn":
			v, perr := parseVec3(tokens[1:])
			if perr != nil {
				return nil, nil, nil, nil, fmt.Errorf("line %d: %w", lineNo, perr)
			}
			normals = append(normals, v)
			haveNormals = true
		case "vt":
			if len(tokens) < 3 {
				return nil, nil, nil, nil, fmt.Errorf("line %d: malformed vt directive", lineNo)
			}
			u, perr := strconv.ParseFloat(tokens[1], 32)
			if perr != nil {
				return nil, nil, nil, nil, fmt.Errorf("line %d: %w", lineNo, perr)
			}
			v, perr := strconv.ParseFloat(tokens[2], 32)
			if perr != nil {
				return nil, nil, nil, nil, fmt.Errorf("line %d: %w", lineNo, perr)
			}
			uvs = append(uvs, types.Vec2{float32(u), float32(v)})
			haveUVs = true
		case "f":
			face, perr := parseFace(tokens[1:], len(positions))
			if perr != nil {
				return nil, nil, nil, nil, fmt.Errorf("line %d: %w", lineNo, perr)
			}
			triangles = append(triangles, Triangulate(face, orientation)...)
		}
	}
	if serr := scanner.Err(); serr != nil {
		return nil, nil, nil, nil, serr
	}

	if !haveNormals {
		normals = nil
	} else if len(normals) != len(positions) {
		return nil, nil, nil, nil, fmt.Errorf("vertex/normal count mismatch: %d positions, %d normals", len(positions), len(normals))
	}
	if !haveUVs {
		uvs = nil
	} else if len(uvs) != len(positions) {
		return nil, nil, nil, nil, fmt.Errorf("vertex/uv count mismatch: %d positions, %d uvs", len(positions), len(uvs))
	}

	return positions, normals, uvs, triangles, nil
}

func parseVec3(tokens []string) (types.Vec3, error) {
	if len(tokens) < 3 {
		return types.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(tokens))
	}
	var v types.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(tokens[i], 32)
		if err != nil {
			return types.Vec3{}, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseFace extracts only the position index out of each "v/vt/vn"
// vertex reference, resolving OBJ's 1-based (or negative, relative-to-end)
// indexing to a 0-based index into the positions slice parsed so far.
func parseFace(tokens []string, vertexCount int) ([]uint32, error) {
	if len(tokens) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(tokens))
	}
	face := make([]uint32, len(tokens))
	for i, tok := range tokens {
		posTok := strings.SplitN(tok, "/", 2)[0]
		idx, err := strconv.Atoi(posTok)
		if err != nil {
			return nil, err
		}
		switch {
		case idx > 0:
			face[i] = uint32(idx - 1)
		case idx < 0:
			face[i] = uint32(vertexCount + idx)
		default:
			return nil, fmt.Errorf("vertex index must not be 0")
		}
	}
	return face, nil
}
