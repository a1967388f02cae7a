package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/achilleasa/scenecore/types"
)

func triangleMesh() ([]types.Vec3, []Triangle) {
	positions := []types.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}
	triangles := []Triangle{{0, 1, 2}}
	return positions, triangles
}

func TestAddPrototypeAssignsSequentialIDs(t *testing.T) {
	scn := New()
	positions, triangles := triangleMesh()

	id0, err := scn.AddPrototype("tri0", positions, nil, nil, triangles, nil)
	if err != nil {
		t.Fatal(err)
	}
	id1, err := scn.AddPrototype("tri1", positions, nil, nil, triangles, nil)
	if err != nil {
		t.Fatal(err)
	}

	if id0 != 0 || id1 != 1 {
		t.Fatalf("expected ids 0,1; got %d,%d", id0, id1)
	}
}

func TestAddPrototypeRejectsNonFiniteVertex(t *testing.T) {
	scn := New()
	positions := []types.Vec3{{0, 0, 0}, {1, 0, 0}, {float32(math.Inf(1)), 1, 0}}
	_, err := scn.AddPrototype("bad", positions, nil, nil, []Triangle{{0, 1, 2}}, nil)
	if err != ErrInvalidGeometry {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestAddPrototypeRejectsOutOfRangeIndex(t *testing.T) {
	scn := New()
	positions, _ := triangleMesh()
	_, err := scn.AddPrototype("bad", positions, nil, nil, []Triangle{{0, 1, 5}}, nil)
	if err != ErrInvalidGeometry {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestAddPrototypeComputesNormalsWhenAbsent(t *testing.T) {
	scn := New()
	positions, triangles := triangleMesh()
	id, err := scn.AddPrototype("tri", positions, nil, nil, triangles, nil)
	if err != nil {
		t.Fatal(err)
	}
	proto, ok := scn.Prototype(id)
	if !ok {
		t.Fatal("expected prototype to be registered")
	}
	if len(proto.Normals) != len(positions) {
		t.Fatalf("expected %d normals, got %d", len(positions), len(proto.Normals))
	}
	for _, n := range proto.Normals {
		if n != (types.Vec3{0, 0, 1}) {
			t.Fatalf("expected +Z face normal, got %v", n)
		}
	}
}

func TestAddInstanceUnknownPrototype(t *testing.T) {
	scn := New()
	_, err := scn.AddInstance(PrototypeID(99), types.Ident4())
	if err != ErrUnknownPrototype {
		t.Fatalf("expected ErrUnknownPrototype, got %v", err)
	}
}

func TestGenerationBumpsOnEveryStructuralEdit(t *testing.T) {
	scn := New()
	g0 := scn.Generation()

	positions, triangles := triangleMesh()
	protoID, err := scn.AddPrototype("tri", positions, nil, nil, triangles, nil)
	if err != nil {
		t.Fatal(err)
	}
	g1 := scn.Generation()
	if g1 == g0 {
		t.Fatal("expected generation to bump after AddPrototype")
	}

	instID, err := scn.AddInstance(protoID, types.Ident4())
	if err != nil {
		t.Fatal(err)
	}
	g2 := scn.Generation()
	if g2 == g1 {
		t.Fatal("expected generation to bump after AddInstance")
	}

	if err := scn.SetInstanceTransform(instID, types.Translate4(types.Vec3{1, 0, 0})); err != nil {
		t.Fatal(err)
	}
	g3 := scn.Generation()
	if g3 == g2 {
		t.Fatal("expected generation to bump after SetInstanceTransform")
	}
}

func TestTotalTriangleCountSumsAcrossInstances(t *testing.T) {
	scn := New()
	positions, triangles := triangleMesh()
	protoID, err := scn.AddPrototype("tri", positions, nil, nil, triangles, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := scn.AddInstance(protoID, types.Ident4()); err != nil {
			t.Fatal(err)
		}
	}

	if got, want := scn.TotalTriangleCount(), uint64(3); got != want {
		t.Fatalf("expected total triangle count %d, got %d", want, got)
	}
}

func TestImportWavefrontMeshTriangulatesQuad(t *testing.T) {
	obj := strings.NewReader(`
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)
	positions, normals, uvs, triangles, err := ImportWavefrontMesh(obj, RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	if len(positions) != 4 {
		t.Fatalf("expected 4 positions, got %d", len(positions))
	}
	if normals != nil || uvs != nil {
		t.Fatalf("expected no normals/uvs when source omits vn/vt")
	}
	if len(triangles) != 2 {
		t.Fatalf("expected quad to fan-triangulate into 2 triangles, got %d", len(triangles))
	}
	want := []Triangle{{0, 1, 2}, {0, 2, 3}}
	for i, tri := range triangles {
		if tri != want[i] {
			t.Fatalf("triangle %d: expected %v, got %v", i, want[i], tri)
		}
	}
}

func TestImportWavefrontMeshResolvesNegativeFaceIndices(t *testing.T) {
	obj := strings.NewReader(`
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)
	_, _, _, triangles, err := ImportWavefrontMesh(obj, RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	if len(triangles) != 1 || triangles[0] != (Triangle{0, 1, 2}) {
		t.Fatalf("expected negative indices to resolve to {0,1,2}, got %v", triangles)
	}
}

func TestImportWavefrontMeshIgnoresVTVNIndicesInFaceRefs(t *testing.T) {
	obj := strings.NewReader(`
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
vn 0 0 1
vn 0 0 1
f 1/1/1 2/2/2 3/3/3
`)
	positions, normals, uvs, triangles, err := ImportWavefrontMesh(obj, RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	if len(positions) != 3 || len(normals) != 3 || len(uvs) != 3 {
		t.Fatalf("expected 3 positions/normals/uvs, got %d/%d/%d", len(positions), len(normals), len(uvs))
	}
	if len(triangles) != 1 || triangles[0] != (Triangle{0, 1, 2}) {
		t.Fatalf("expected triangle {0,1,2}, got %v", triangles)
	}
}

func TestTriangulateLeftHandedFlipsWinding(t *testing.T) {
	face := []uint32{0, 1, 2, 3}
	tris := Triangulate(face, LeftHanded)
	want := []Triangle{{0, 2, 1}, {0, 3, 2}}
	for i, tri := range tris {
		if tri != want[i] {
			t.Fatalf("triangle %d: expected %v, got %v", i, want[i], tri)
		}
	}
}
