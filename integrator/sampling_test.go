package integrator

import (
	"math"
	"testing"

	"github.com/achilleasa/scenecore/types"
)

func TestRNGFloat32StaysInUnitInterval(t *testing.T) {
	r := newRNG(1)
	for i := 0; i < 10000; i++ {
		v := r.float32()
		if v < 0 || v >= 1 {
			t.Fatalf("rng produced out-of-range value %f", v)
		}
	}
}

func TestRNGZeroSeedFallsBackToFixedConstant(t *testing.T) {
	a := newRNG(0)
	b := newRNG(0)
	if a.next() != b.next() {
		t.Fatal("expected two zero-seeded rngs to produce identical sequences")
	}
}

func TestCosineSampleHemisphereStaysInHemisphere(t *testing.T) {
	n := types.Vec3{0, 0, 1}
	r := newRNG(42)
	for i := 0; i < 1000; i++ {
		dir, pdf := cosineSampleHemisphere(n, r)
		if dir.Dot(n) < 0 {
			t.Fatalf("sampled direction %v is below the hemisphere around %v", dir, n)
		}
		if pdf < 0 {
			t.Fatalf("expected non-negative pdf, got %f", pdf)
		}
		if math.Abs(float64(dir.Len()-1)) > 1e-4 {
			t.Fatalf("expected unit-length direction, got length %f", dir.Len())
		}
	}
}

func TestReflectMirrorsAboutNormal(t *testing.T) {
	v := types.Vec3{1, -1, 0}.Normalize()
	n := types.Vec3{0, 1, 0}
	got := reflect(v, n)
	want := types.Vec3{1, 1, 0}.Normalize()
	if got.Sub(want).Len() > 1e-5 {
		t.Fatalf("expected reflected vector %v, got %v", want, got)
	}
}

func TestSchlickWeightEndpoints(t *testing.T) {
	if w := schlickWeight(1); w != 0 {
		t.Fatalf("expected schlickWeight(1) == 0, got %f", w)
	}
	if w := schlickWeight(0); w != 1 {
		t.Fatalf("expected schlickWeight(0) == 1, got %f", w)
	}
}

func TestBuildOrthonormalBasisIsOrthogonal(t *testing.T) {
	normals := []types.Vec3{
		{0, 0, 1}, {0, 0, -1}, {1, 0, 0}, {0, 1, 0}, {1, 1, 1},
	}
	for _, n := range normals {
		n = n.Normalize()
		tangent, bitangent := buildOrthonormalBasis(n)
		if math.Abs(float64(tangent.Dot(n))) > 1e-4 {
			t.Fatalf("tangent not orthogonal to normal %v", n)
		}
		if math.Abs(float64(bitangent.Dot(n))) > 1e-4 {
			t.Fatalf("bitangent not orthogonal to normal %v", n)
		}
		if math.Abs(float64(tangent.Dot(bitangent))) > 1e-4 {
			t.Fatalf("tangent not orthogonal to bitangent for normal %v", n)
		}
	}
}
