// Command view displays an image file in a window by uploading it as a
// rectangle texture and drawing it with a quad.Context each frame.
package main

import (
	"fmt"
	"image"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/drawquad/drawquad/internal/imaging"
	"github.com/drawquad/drawquad/pkg/quad"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <image>\n", os.Args[0])
		os.Exit(2)
	}
	path := os.Args[1]

	img, err := imaging.Load(path)
	if err != nil {
		log.Fatal(err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	bounds := img.Bounds()
	window, err := glfw.CreateWindow(bounds.Dx(), bounds.Dy(), path, nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalf("could not initialise OpenGL context: %v", err)
	}
	log.Printf("OpenGL version '%s'", gl.GoStr(gl.GetString(gl.VERSION)))

	ctx, err := quad.New()
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Close()

	texture := uploadTexture(img)
	defer gl.DeleteTextures(1, &texture)

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	for !window.ShouldClose() {
		ctx.Draw(texture)
		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func uploadTexture(img *image.RGBA) uint32 {
	bounds := img.Bounds()

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_RECTANGLE, texture)
	gl.TexImage2D(gl.TEXTURE_RECTANGLE, 0, gl.RGBA8,
		int32(bounds.Dx()), int32(bounds.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.TexParameteri(gl.TEXTURE_RECTANGLE, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_RECTANGLE, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_RECTANGLE, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_RECTANGLE, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return texture
}
