package raster

import (
	"unsafe"

	"github.com/achilleasa/scenecore/scene"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// vertexStride is the byte size of one interleaved mesh vertex:
// position, normal, uv (vertex color is carried by the material uniform
// rather than per-vertex here, since scenecore prototypes have no vertex
// color attribute — see scene/prototype.go).
const vertexStride = (3 + 3 + 2) * 4

// instanceStride is the byte size of one instance's streamed model
// matrix, as four vec4 columns.
const instanceStride = 16 * 4

// GPUMesh is the GPU-resident form of one prototype: a single vertex
// buffer (position/normal/uv) and index buffer, shared across every
// instance of that prototype, plus an instance buffer of model matrices
// that is rewritten every frame by UploadInstances. Grounded on the
// teacher pack's core-profile buffer idiom (cogentcore-core's
// oswin/driver/internal/glgpu/indexes.go: GenBuffers once, BindBuffer +
// BufferData per transfer, STATIC_DRAW for data that doesn't change).
type GPUMesh struct {
	vao         uint32
	vbo         uint32
	ebo         uint32
	instanceVBO uint32

	indexCount    int32
	triangleCount uint32

	instanceCapacity int
}

// BuildGeometry uploads a prototype's mesh data once. The instance
// buffer is allocated once with the given initial capacity; UploadInstances
// never grows it and uploads at most that many instances.
func BuildGeometry(proto *scene.Prototype, initialInstanceCapacity int) *GPUMesh {
	vertices := make([]float32, 0, len(proto.Positions)*8)
	for i, p := range proto.Positions {
		n := proto.Normals[i]
		var uv [2]float32
		if proto.UVs != nil {
			uv = [2]float32{proto.UVs[i][0], proto.UVs[i][1]}
		}
		vertices = append(vertices, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}

	indices := make([]uint32, 0, len(proto.Triangles)*3)
	for _, tri := range proto.Triangles {
		indices = append(indices, tri[0], tri[1], tri[2])
	}

	return buildGeometryRaw(vertices, indices, proto.TriangleCount(), initialInstanceCapacity)
}

// buildGeometryRaw is the shared upload path for both prototype meshes
// and the procedural proxy box (frame.go's buildProxyBox), taking
// already-interleaved vertex data (position, normal, uv per vertex).
func buildGeometryRaw(vertices []float32, indices []uint32, triangleCount uint32, initialInstanceCapacity int) *GPUMesh {
	m := &GPUMesh{triangleCount: triangleCount}
	m.indexCount = int32(len(indices))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*4)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	if initialInstanceCapacity < 1 {
		initialInstanceCapacity = 1
	}
	m.instanceCapacity = initialInstanceCapacity
	gl.GenBuffers(1, &m.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, m.instanceCapacity*instanceStride, nil, gl.DYNAMIC_DRAW)

	for col := 0; col < 4; col++ {
		loc := uint32(3 + col)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, instanceStride, uintptr(col*16))
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.BindVertexArray(0)
	return m
}

// UploadInstances writes model-matrix columns (already laid out as 16
// float32s per instance by the caller) into the instance buffer. If data
// exceeds the buffer's capacity, it is clamped rather than reallocated
// mid-frame — spec §4.5's explicit requirement — and the caller is
// expected to have already logged the warning (see pipeline.go).
func (m *GPUMesh) UploadInstances(columns []float32) (uploaded int) {
	count := len(columns) / 16
	if count > m.instanceCapacity {
		count = m.instanceCapacity
		columns = columns[:count*16]
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(columns)*4, gl.Ptr(columns))
	return count
}

// Draw issues one instanced indexed draw call over the first
// instanceCount instances currently resident in the instance buffer.
func (m *GPUMesh) Draw(instanceCount int) {
	if instanceCount <= 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, unsafe.Pointer(nil), int32(instanceCount))
}

func (m *GPUMesh) Delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteBuffers(1, &m.instanceVBO)
}
