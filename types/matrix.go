package types

import "math"

// floatCmpEpsilon is the tolerance used when comparing lengths/norms that
// should be unit but may have accumulated floating point error.
const floatCmpEpsilon = 1e-6

// Mat4 is a 4x4 matrix stored in row-major order as a flat 16 element array.
type Mat4 [16]float32

// Mat3 is a 3x3 matrix stored in row-major order, usually the upper-left
// block of a Mat4 (rotation/scale only, no translation).
type Mat3 [9]float32

// Ident4 returns the 4x4 identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ident3 returns the 3x3 identity matrix.
func Ident3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translate4 builds a translation matrix.
func Translate4(v Vec3) Mat4 {
	m := Ident4()
	m[3] = v[0]
	m[7] = v[1]
	m[11] = v[2]
	return m
}

// Scale4 builds a scale matrix.
func Scale4(v Vec3) Mat4 {
	m := Ident4()
	m[0] = v[0]
	m[5] = v[1]
	m[10] = v[2]
	return m
}

// Perspective4 builds a right-handed perspective projection matrix mapping
// the view-space near/far planes to clip-space [-1, 1] (OpenGL convention).
// fovY is in radians.
func Perspective4(fovY, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovY)/2.0))
	m := Mat4{}
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = (2 * far * near) / (near - far)
	m[14] = -1
	return m
}

// LookAtV builds a right-handed view matrix from an eye position, a target
// to look at, and an up vector.
func LookAtV(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s[0], s[1], s[2], -s.Dot(eye),
		u[0], u[1], u[2], -u.Dot(eye),
		-f[0], -f[1], -f[2], f.Dot(eye),
		0, 0, 0, 1,
	}
}

// Mul4 multiplies two 4x4 matrices, returning m*other.
func (m Mat4) Mul4(other Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Mul4x1 transforms a Vec4 by the matrix (m * v).
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// TransformPoint transforms a point (implicit w=1) and returns the result
// with the perspective divide applied.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	r := m.Mul4x1(p.Vec4(1))
	if r[3] != 0 && r[3] != 1 {
		inv := 1.0 / r[3]
		return Vec3{r[0] * inv, r[1] * inv, r[2] * inv}
	}
	return r.Vec3()
}

// TransformVector transforms a direction vector (implicit w=0), ignoring
// translation.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

// Transpose returns the transpose of the matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[col*4+row] = m[row*4+col]
		}
	}
	return out
}

// Inv returns the inverse of the matrix, or the identity if the matrix is
// singular.
func (m Mat4) Inv() Mat4 {
	a := m
	var inv Mat4

	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] + a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] - a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] + a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] - a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]

	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] - a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] + a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] - a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] + a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]

	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] + a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] - a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] + a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] - a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]

	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] - a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] + a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] - a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] + a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	det := a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
	if det == 0 {
		return Ident4()
	}
	invDet := 1.0 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv
}

// Row returns the four elements of the given row (0-indexed).
func (m Mat4) Row(i int) Vec4 {
	return Vec4{m[i*4+0], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// Col returns the four elements of the given column (0-indexed). Used to
// stream a row-major Mat4 into the four vec4 per-instance attributes a
// GLSL vertex shader reconstructs with mat4(col0, col1, col2, col3) —
// that constructor is column-major, so uploading Col(i) rather than
// Row(i) is what keeps model*vec4(pos,1) in the shader equivalent to
// TransformPoint on the CPU side.
func (m Mat4) Col(i int) Vec4 {
	return Vec4{m[0*4+i], m[1*4+i], m[2*4+i], m[3*4+i]}
}

// Mul3x1 transforms a Vec3 by a 3x3 matrix.
func (m Mat3) Mul3x1(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Transpose returns the transpose of the 3x3 matrix. Used to build the
// inverse-transpose normal matrix from an affine transform's upper block.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}
