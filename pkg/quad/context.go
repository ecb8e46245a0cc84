// Package quad draws a single full-screen textured rectangle, factoring out
// the shader and vertex boilerplate that every such draw call otherwise
// repeats. It does no batching; one Context issues one draw per call.
package quad

import (
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Context encapsulates the GL state needed to draw textured quads: one linked
// shader program, a vertex buffer holding the quad corners, and the vertex
// array describing their layout.
//
// A Context is bound to the GL context that was current when New was called.
// GL binding state is per-context and per-thread, so calls on a Context must
// be serialized externally if multiple goroutines share one GL context.
type Context struct {
	vertexShader   uint32
	fragmentShader uint32
	program        uint32
	vertexArray    uint32
	vertexBuffer   uint32
	textureUniform int32
}

// Interleaved x, y, u, v corners in triangle-strip order: top-left,
// top-right, bottom-left, bottom-right. Positions cover the full clip-space
// rectangle, texture coordinates the full [0,1] square.
var quadVertices = []float32{
	-1, 1, 0, 0,
	1, 1, 1, 0,
	-1, -1, 0, 1,
	1, -1, 1, 1,
}

const vertexStride = 4 * 4 // x, y, u, v as float32

// New creates a Context ready for Draw.
//
// A valid GL context must be current on the calling thread. The embedded
// shaders are compiled and linked with status checks: on failure New deletes
// every GL object it allocated and returns a *CompileError or *LinkError
// carrying the driver's info log, so nothing half-initialized escapes.
func New() (*Context, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexShaderSource)
	if err != nil {
		return nil, err
	}
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentShaderSource)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, err
	}
	program, err := linkProgram(vertexShader, fragmentShader)
	if err != nil {
		gl.DeleteShader(fragmentShader)
		gl.DeleteShader(vertexShader)
		return nil, err
	}
	gl.UseProgram(program)

	positionAttrib := uint32(gl.GetAttribLocation(program, gl.Str("aPosition\x00")))
	texCoordAttrib := uint32(gl.GetAttribLocation(program, gl.Str("aTexCoord\x00")))
	textureUniform := gl.GetUniformLocation(program, gl.Str("uTexture\x00"))

	var vertexArray uint32
	gl.GenVertexArrays(1, &vertexArray)
	gl.BindVertexArray(vertexArray)

	var vertexBuffer uint32
	gl.GenBuffers(1, &vertexBuffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, vertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(positionAttrib, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(positionAttrib)
	gl.EnableVertexAttribArray(texCoordAttrib)

	return &Context{
		vertexShader:   vertexShader,
		fragmentShader: fragmentShader,
		program:        program,
		vertexArray:    vertexArray,
		vertexBuffer:   vertexBuffer,
		textureUniform: textureUniform,
	}, nil
}

// Draw rasterizes the given texture stretched over the current viewport.
//
// The texture must be of GL_TEXTURE_RECTANGLE type, not GL_TEXTURE_2D (for
// compatibility with macOS, which can only bind IOSurfaces to texture
// rectangles), must already hold image data, and must have its minification
// and magnification filters set; Draw sets no defaults. The GL context that
// was current at New time must be current now.
//
// To draw into a subrect, set gl.Viewport before calling; to draw only part
// of the texture, set a scissor box and enable gl.SCISSOR_TEST. Draw rebinds
// all the state it depends on every call, so it can be freely interleaved
// with unrelated rendering.
func (c *Context) Draw(texture uint32) {
	gl.UseProgram(c.program)
	gl.BindVertexArray(c.vertexArray)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vertexBuffer)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_RECTANGLE, texture)
	gl.Uniform1i(c.textureUniform, 0)

	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

// Close releases every GL object the Context owns. The GL context that was
// current at New time must still be current. Close is idempotent; calling it
// again is a no-op.
func (c *Context) Close() {
	if c.vertexBuffer != 0 {
		gl.DeleteBuffers(1, &c.vertexBuffer)
		c.vertexBuffer = 0
	}
	if c.vertexArray != 0 {
		gl.DeleteVertexArrays(1, &c.vertexArray)
		c.vertexArray = 0
	}
	if c.program != 0 {
		gl.DeleteProgram(c.program)
		c.program = 0
	}
	if c.fragmentShader != 0 {
		gl.DeleteShader(c.fragmentShader)
		c.fragmentShader = 0
	}
	if c.vertexShader != 0 {
		gl.DeleteShader(c.vertexShader)
		c.vertexShader = 0
	}
}
