// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/globeview/internal/engine/shader"
	"github.com/Faultbox/globeview/internal/logger"
)

// ClearColor is the background, 0xbfd1e5.
var ClearColor = [3]float32{0xbf / 255.0, 0xd1 / 255.0, 0xe5 / 255.0}

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uMVP;

out vec3 vertexColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vertexColor = aColor;
}
`

const lineFragmentShader = `
#version 410 core

in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// lineBatch is a VAO holding interleaved [x, y, z, r, g, b] line vertices.
type lineBatch struct {
	vao, vbo uint32
	count    int32
}

// Renderer draws the globe debug geometry.
type Renderer struct {
	config Config

	lineProgram uint32
	locMVP      int32

	graticule lineBatch
	tile      lineBatch
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], 1.0)

	var err error
	r.lineProgram, err = shader.CompileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	r.locMVP, err = shader.Uniform(r.lineProgram, "uMVP")
	if err != nil {
		gl.DeleteProgram(r.lineProgram)
		return nil, err
	}

	r.graticule = newLineBatch()
	r.tile = newLineBatch()
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

func newLineBatch() lineBatch {
	var b lineBatch
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b
}

func (b *lineBatch) upload(vertices []float32, usage uint32) {
	b.count = int32(len(vertices) / 6)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usage)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), usage)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *lineBatch) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *lineBatch) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.graticule.delete()
	r.tile.delete()
	if r.lineProgram != 0 {
		gl.DeleteProgram(r.lineProgram)
	}
}

// SetGraticule uploads the static graticule lines.
func (r *Renderer) SetGraticule(vertices []float32) {
	r.graticule.upload(vertices, gl.STATIC_DRAW)
	logger.Debug("graticule uploaded", zap.Int32("vertices", r.graticule.count))
}

// SetTileOutline replaces the highlighted coverage tile outline.
func (r *Renderer) SetTileOutline(vertices []float32) {
	r.tile.upload(vertices, gl.DYNAMIC_DRAW)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawLines draws the graticule and tile outline with the given
// view-projection matrix.
func (r *Renderer) DrawLines(mvp [16]float32) {
	gl.UseProgram(r.lineProgram)
	gl.UniformMatrix4fv(r.locMVP, 1, false, &mvp[0])
	r.graticule.draw()
	r.tile.draw()
	gl.UseProgram(0)
}

// End finishes the current frame.
func (r *Renderer) End() {}

// ReadPixels reads back the framebuffer as RGBA, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
