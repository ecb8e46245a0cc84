package quad

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

const vertexShaderSource = `#version 330

in vec2 aPosition;
in vec2 aTexCoord;

out vec2 vTexCoord;

void main() {
    vTexCoord = aTexCoord;
    gl_Position = vec4(aPosition, 0.0, 1.0);
}
`

// The sampler coordinate is scaled by the texture's own size, so the same
// program works for any texture dimensions without recompilation.
const fragmentShaderSource = `#version 330

uniform sampler2DRect uTexture;

in vec2 vTexCoord;

out vec4 oFragColor;

void main() {
    ivec2 size = textureSize(uTexture);
    oFragColor = texture(uTexture, vTexCoord * vec2(float(size.x), float(size.y)));
}
`

// CompileError reports a shader that the driver rejected.
type CompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string // driver info log
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compile failed: %s", e.Stage, strings.TrimRight(e.Log, "\x00\n"))
}

// LinkError reports a program the driver could not link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program link failed: %s", strings.TrimRight(e.Log, "\x00\n"))
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		stage := "vertex"
		if shaderType == gl.FRAGMENT_SHADER {
			stage = "fragment"
		}
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

func linkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &LinkError{Log: log}
	}
	return program, nil
}
