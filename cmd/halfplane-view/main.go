// halfplane-view - Terminal triangle-rasterizer demo viewer.
//
// Controls:
//
//	Mouse drag  - Orbit (sets the view heading)
//	Scroll      - Zoom in/out
//	T           - Toggle texture on/off
//	X           - Toggle flat-fill fallback (no texture sampling)
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/kestrelgfx/halfplane/pkg/geom"
	"github.com/kestrelgfx/halfplane/pkg/palette"
	"github.com/kestrelgfx/halfplane/pkg/raster"
	"github.com/kestrelgfx/halfplane/pkg/scene"
)

var (
	meshPath    = flag.String("mesh", "", "Path to a .glb mesh (falls back to a procedural quad if empty)")
	texturePath = flag.String("texture", "", "Path to a texture image (PNG/JPEG); overrides any texture embedded in the mesh")
	palettePath = flag.String("palette", "", "Path to an image to quantize the display palette from (defaults to the texture, or a grayscale ramp)")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "30,30,40", "Background color (R,G,B)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "halfplane-view - terminal triangle-rasterizer demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: halfplane-view [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Orbit\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle flat-fill fallback\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// orbitState holds the view heading and zoom, each eased toward a target
// with a critically-damped spring so drag/scroll input settles smoothly
// instead of snapping.
type orbitState struct {
	Heading               float64
	headingTarget         float64
	headingSpring         harmonica.Spring
	headingSpringVelocity float64

	Zoom            float64
	zoomTarget      float64
	zoomSpring      harmonica.Spring
	zoomSpringAccel float64
}

func newOrbitState(fps int, initialZoom float64) *orbitState {
	return &orbitState{
		zoomTarget:    initialZoom,
		headingSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		zoomSpring:    harmonica.NewSpring(harmonica.FPS(fps), 5.0, 1.0),
	}
}

func (o *orbitState) Update() {
	o.Heading, o.headingSpringVelocity = o.headingSpring.Update(o.Heading, o.headingSpringVelocity, o.headingTarget)
	o.Zoom, o.zoomSpringAccel = o.zoomSpring.Update(o.Zoom, o.zoomSpringAccel, o.zoomTarget)
}

// RenderMode controls how the mesh is drawn.
type RenderMode int

const (
	RenderModeTextured RenderMode = iota
	RenderModeFlat
)

func run() error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	mesh, textureImg, err := loadScene(*meshPath, *texturePath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	pal, err := buildPalette(*palettePath, textureImg, bgR, bgG, bgB)
	if err != nil {
		return fmt.Errorf("build palette: %w", err)
	}
	bgIndex := pal.Nearest(colorRGBA(bgR, bgG, bgB))

	var tex raster.Texture
	if textureImg != nil {
		tex = scene.BuildTexture(textureImg, pal)
	}

	centerMesh(mesh)

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	fb := palette.NewFramebuffer(width, height*2)

	const fovY = math.Pi / 3
	tanHalfFOV := math.Tan(fovY / 2)

	orbit := newOrbitState(*targetFPS, float64(fb.Height)/2)
	renderMode := RenderModeTextured
	textureEnabled := true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	var mouseDown bool
	var lastMouseX int
	cameraDistance := 5.0

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				fb = palette.NewFramebuffer(width, height*2)
				orbit.zoomTarget = float64(fb.Height) / 2

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("t"):
					textureEnabled = !textureEnabled
				case ev.MatchString("x"):
					if renderMode == RenderModeFlat {
						renderMode = RenderModeTextured
					} else {
						renderMode = RenderModeFlat
					}
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX = ev.X

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					orbit.headingTarget += float64(dx) * 0.05
					lastMouseX = ev.X
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraDistance = math.Max(1.5, cameraDistance-0.5)
					orbit.zoomTarget *= 1.1
				case uv.MouseWheelDown:
					cameraDistance = math.Min(30, cameraDistance+0.5)
					orbit.zoomTarget *= 0.9
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		frameStart := time.Now()
		orbit.Update()

		view := raster.ViewParams{
			Pos:         geom.V3(0, 0, -cameraDistance),
			Sin:         math.Sin(orbit.Heading),
			Cos:         math.Cos(orbit.Heading),
			TanSin:      math.Sin(orbit.Heading) * tanHalfFOV,
			TanCos:      math.Cos(orbit.Heading) * tanHalfFOV,
			CenterX:     float64(fb.Width) / 2,
			CenterY:     float64(fb.Height) / 2,
			InvZToScale: orbit.Zoom,
		}

		fb.Clear(bgIndex)
		cliptop, clipbottom := fb.Clip()

		vertices := buildVertices(mesh)
		ccw := false
		switch {
		case renderMode == RenderModeTextured && textureEnabled && tex != nil:
			raster.Draw(view, geom.Identity(), vertices, ccw, 0, fb.Width-1, cliptop, clipbottom, tex, fb.Pixels, fb.Width)
		default:
			raster.Fill(view, geom.Identity(), vertices, ccw, 0, fb.Width-1, cliptop, clipbottom, flatShadeIndex(pal), fb.Pixels, fb.Width)
		}

		area := uv.Rect(0, 0, width, height)
		fb.Draw(term, area, pal)
		if err := term.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		elapsed := time.Since(frameStart)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// loadScene loads the mesh named by meshPath, or a procedural fallback
// quad if meshPath is empty, plus whichever texture image applies: an
// explicit texturePath overrides the mesh's own embedded texture.
func loadScene(meshPath, texturePath string) (*scene.Mesh, image.Image, error) {
	var mesh *scene.Mesh
	var embedded image.Image

	if meshPath != "" {
		m, tex, err := scene.LoadGLB(meshPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load mesh: %w", err)
		}
		mesh, embedded = m, tex
	} else {
		mesh = fallbackQuad()
	}

	if texturePath != "" {
		f, err := os.Open(texturePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open texture: %w", err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, nil, fmt.Errorf("decode texture: %w", err)
		}
		return mesh, img, nil
	}

	return mesh, embedded, nil
}

// fallbackQuad is the procedural mesh shown when no -mesh is given: two
// triangles spanning [-1,1]^2 on the Z=0 plane, UV-mapped corner to
// corner so a texture (if any) tiles across the whole quad.
func fallbackQuad() *scene.Mesh {
	m := scene.NewMesh("fallback-quad")
	m.Vertices = []scene.MeshVertex{
		{Position: geom.V3(-1, -1, 0), Normal: geom.V3(0, 0, 1), UV: geom.V2(0, 0)},
		{Position: geom.V3(1, -1, 0), Normal: geom.V3(0, 0, 1), UV: geom.V2(1, 0)},
		{Position: geom.V3(1, 1, 0), Normal: geom.V3(0, 0, 1), UV: geom.V2(1, 1)},
		{Position: geom.V3(-1, 1, 0), Normal: geom.V3(0, 0, 1), UV: geom.V2(0, 1)},
	}
	m.Faces = []scene.Face{
		{V: [3]int{0, 1, 2}},
		{V: [3]int{0, 2, 3}},
	}
	m.CalculateBounds()
	return m
}

// centerMesh recenters and rescales mesh in place so it spans roughly
// [-1,1] along its longest axis, matching the teacher's normalization
// step before handing geometry to the rasterizer.
func centerMesh(mesh *scene.Mesh) {
	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim == 0 {
		return
	}
	scale := 2.0 / maxDim
	transform := geom.Scale(geom.V3(scale, scale, scale)).Mul(geom.Translate(center.Scale(-1)))
	mesh.Transform(transform)
}

// buildVertices flattens mesh's faces into the triangle-list layout
// raster.Draw/raster.Fill expect: a flat []raster.Vertex, three per face.
func buildVertices(mesh *scene.Mesh) []raster.Vertex {
	out := make([]raster.Vertex, 0, len(mesh.Faces)*3)
	for _, face := range mesh.Faces {
		for _, idx := range face.V {
			mv := mesh.Vertices[idx]
			out = append(out, raster.V(mv.Position.X, mv.Position.Y, mv.Position.Z, mv.UV.X, mv.UV.Y))
		}
	}
	return out
}

// buildPalette resolves the display palette: an explicit -palette image
// wins, then the scene's own texture, then a grayscale ramp wide enough
// to shade a flat-filled fallback mesh plus the background color.
func buildPalette(palettePath string, textureImg image.Image, bgR, bgG, bgB uint8) (palette.Palette, error) {
	switch {
	case palettePath != "":
		f, err := os.Open(palettePath)
		if err != nil {
			return palette.Palette{}, fmt.Errorf("open palette source: %w", err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return palette.Palette{}, fmt.Errorf("decode palette source: %w", err)
		}
		return palette.BuildFromImage(img, 256), nil

	case textureImg != nil:
		return palette.BuildFromImage(textureImg, 256), nil

	default:
		return grayscalePalette(bgR, bgG, bgB), nil
	}
}

// grayscalePalette is the last-resort palette when there is no art to
// quantize: a 256-step gray ramp, with the background color fixed at
// index 0 so Clear(0) paints the configured background.
func grayscalePalette(bgR, bgG, bgB uint8) palette.Palette {
	var pal palette.Palette
	pal[0] = colorRGBA(bgR, bgG, bgB)
	for i := 1; i < 256; i++ {
		shade := uint8(i)
		pal[i] = colorRGBA(shade, shade, shade)
	}
	return pal
}

// flatShadeIndex picks the palette entry used for the flat-fill render
// mode: the entry closest to mid-gray.
func flatShadeIndex(pal palette.Palette) byte {
	return pal.Nearest(colorRGBA(128, 128, 128))
}

func colorRGBA(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
