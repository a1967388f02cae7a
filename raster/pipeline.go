package raster

import (
	"github.com/achilleasa/scenecore/log"
	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var rasterLog = log.New("raster")

// Pipeline is the real-time preview renderer (spec §4.5): it owns the
// window/GL context, one GPUMesh per prototype plus a shared proxy box,
// and the per-frame cull/LOD/upload/draw protocol.
type Pipeline struct {
	window *glfw.Window
	opts   Options

	meshProgram uint32
	uiProgram   uint32

	meshes   map[scene.PrototypeID]*GPUMesh
	proxyBox *GPUMesh
	scratch  *CullScratch

	haveLastViewProj bool
	lastViewProj     types.Mat4
	cachedFrustum    types.Frustum
}

// New opens the viewport window and compiles the mesh/UI shader
// programs. BuildMeshes must be called once the scene's prototypes are
// known before the first RenderFrame.
func New(opts Options) (*Pipeline, error) {
	window, err := openWindow(opts)
	if err != nil {
		return nil, err
	}

	meshProgram, err := linkProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, err
	}
	uiProgram, err := linkProgram(uiVertexShader, uiFragmentShader)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		window:      window,
		opts:        opts,
		meshProgram: meshProgram,
		uiProgram:   uiProgram,
		meshes:      make(map[scene.PrototypeID]*GPUMesh),
		proxyBox:    buildProxyBox(256),
		scratch:     NewCullScratch(4096),
	}, nil
}

// BuildMeshes uploads GPU geometry for every prototype currently in the
// scene, sized to its current instance count. Called again after a
// scene edit that adds new prototypes (existing ones are left as-is).
func (p *Pipeline) BuildMeshes(scn *scene.Scene) {
	counts := make(map[scene.PrototypeID]int)
	for _, inst := range scn.IterInstances() {
		counts[inst.PrototypeID]++
	}
	for _, proto := range scn.IterPrototypes() {
		if _, ok := p.meshes[proto.ID]; ok {
			continue
		}
		cap := counts[proto.ID]
		if cap < 1 {
			cap = 1
		}
		p.meshes[proto.ID] = BuildGeometry(proto, cap)
		rasterLog.Debugf("uploaded geometry for prototype %d (%d instances capacity)", proto.ID, cap)
	}
}

// Window exposes the underlying GLFW window so a driver can register its
// own input callbacks (camera controls, escape-to-quit); the pipeline
// itself has no opinion on input handling, per the windowing/event loop
// being explicitly out of this core's scope.
func (p *Pipeline) Window() *glfw.Window { return p.window }

func (p *Pipeline) ShouldClose() bool { return p.window.ShouldClose() }
func (p *Pipeline) PollEvents()       { glfw.PollEvents() }
func (p *Pipeline) SwapBuffers()      { p.window.SwapBuffers() }

// RenderFrame implements spec §4.5's six-step per-frame protocol.
func (p *Pipeline) RenderFrame(scn *scene.Scene, cam *types.Camera) {
	// 1 & 2: extract or reuse the cached frustum.
	vp := cam.ViewProjection()
	if !p.haveLastViewProj || vp != p.lastViewProj {
		p.cachedFrustum = types.FrustumFromViewProjection(vp)
		p.lastViewProj = vp
		p.haveLastViewProj = true
	}

	instances := scn.IterInstances()

	// 3: cull.
	visible, distSq := Cull(p.cachedFrustum, instances, cam.Position, p.scratch)

	// 4: LOD partition.
	triCountOf := func(id scene.PrototypeID) int {
		if proto, ok := scn.Prototype(id); ok {
			return proto.TriangleCount()
		}
		return 0
	}
	near, far := Partition(visible, distSq, instances, triCountOf, p.opts.PolyBudget)

	// 5: upload, grouped by prototype for the near set.
	byProto := make(map[scene.PrototypeID][]float32)
	for _, idx := range near {
		inst := instances[idx]
		m := inst.Transform
		byProto[inst.PrototypeID] = append(byProto[inst.PrototypeID],
			m.Col(0)[0], m.Col(0)[1], m.Col(0)[2], m.Col(0)[3],
			m.Col(1)[0], m.Col(1)[1], m.Col(1)[2], m.Col(1)[3],
			m.Col(2)[0], m.Col(2)[1], m.Col(2)[2], m.Col(2)[3],
			m.Col(3)[0], m.Col(3)[1], m.Col(3)[2], m.Col(3)[3],
		)
	}

	farColumns := make([]float32, 0, len(far)*16)
	for _, idx := range far {
		inst := instances[idx]
		m := inst.Transform
		farColumns = append(farColumns,
			m.Col(0)[0], m.Col(0)[1], m.Col(0)[2], m.Col(0)[3],
			m.Col(1)[0], m.Col(1)[1], m.Col(1)[2], m.Col(1)[3],
			m.Col(2)[0], m.Col(2)[1], m.Col(2)[2], m.Col(2)[3],
			m.Col(3)[0], m.Col(3)[1], m.Col(3)[2], m.Col(3)[3],
		)
	}

	// 6: draw, two passes.
	gl.Viewport(0, 0, int32(p.opts.FrameW), int32(p.opts.FrameH))
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.05, 0.05, 0.08, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(p.meshProgram)
	p.setCameraUniforms(cam, vp)

	for protoID, columns := range byProto {
		mesh, ok := p.meshes[protoID]
		if !ok {
			continue
		}
		requested := len(columns) / 16
		uploaded := mesh.UploadInstances(columns)
		if uploaded < requested {
			rasterLog.Warningf("prototype %d: %d visible instances exceed instance buffer capacity, clamped to %d", protoID, requested, uploaded)
		}
		p.setMaterialUniforms(protoID, scn)
		mesh.Draw(uploaded)
	}

	if len(farColumns) > 0 {
		uploaded := p.proxyBox.UploadInstances(farColumns)
		if uploaded < len(far) {
			rasterLog.Warningf("far set: %d visible instances exceed proxy instance buffer capacity, clamped to %d", len(far), uploaded)
		}
		gl.Uniform4f(gl.GetUniformLocation(p.meshProgram, gl.Str("baseColor\x00")), 0.5, 0.5, 0.5, 1.0)
		gl.Uniform4f(gl.GetUniformLocation(p.meshProgram, gl.Str("materialParams\x00")), 0, 1, 0.5, 0)
		gl.Uniform3f(gl.GetUniformLocation(p.meshProgram, gl.Str("emissiveColor\x00")), 0, 0, 0)
		p.proxyBox.Draw(uploaded)
	}

	// UI overlay: no depth test, orthographic projection. Currently a
	// no-op draw target — stat text is rendered to the terminal via
	// tablewriter (see cmd/) rather than an in-viewport text renderer,
	// which scenecore has no library for; the pass exists so overlay
	// elements (selection outlines, gizmos) have a place to go later.
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(p.uiProgram)
}

func (p *Pipeline) setCameraUniforms(cam *types.Camera, vp types.Mat4) {
	loc := gl.GetUniformLocation(p.meshProgram, gl.Str("viewProj\x00"))
	gl.UniformMatrix4fv(loc, 1, true, &vp[0])

	camLoc := gl.GetUniformLocation(p.meshProgram, gl.Str("cameraPos\x00"))
	gl.Uniform3f(camLoc, cam.Position[0], cam.Position[1], cam.Position[2])

	lightLoc := gl.GetUniformLocation(p.meshProgram, gl.Str("lightDir\x00"))
	gl.Uniform3f(lightLoc, -0.4, -1.0, -0.3)
}

func (p *Pipeline) setMaterialUniforms(protoID scene.PrototypeID, scn *scene.Scene) {
	proto, ok := scn.Prototype(protoID)
	if !ok || proto.Material == nil {
		return
	}
	mat := proto.Material

	gl.Uniform4f(gl.GetUniformLocation(p.meshProgram, gl.Str("baseColor\x00")), mat.BaseColor[0], mat.BaseColor[1], mat.BaseColor[2], mat.Opacity)
	gl.Uniform4f(gl.GetUniformLocation(p.meshProgram, gl.Str("materialParams\x00")), mat.Metallic, mat.Roughness, mat.Specular, 0)
	gl.Uniform3f(gl.GetUniformLocation(p.meshProgram, gl.Str("emissiveColor\x00")), mat.Emissive[0], mat.Emissive[1], mat.Emissive[2])
}

func (p *Pipeline) Close() {
	for _, m := range p.meshes {
		m.Delete()
	}
	p.proxyBox.Delete()
	gl.DeleteProgram(p.meshProgram)
	gl.DeleteProgram(p.uiProgram)
	p.window.SetShouldClose(true)
}
