// Package ebitenrender draws render queues into an ebiten window and reads the keyboard
// through ebiten.
//
// The render worker fills a back buffer of rectangles; Present swaps it with the front
// buffer that the game's Draw method paints, so drawing never blocks on the worker.
package ebitenrender

import (
	"image/color"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ReeCocho/Snek/input"
	"github.com/ReeCocho/Snek/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Rect is a filled rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float32
	Color      color.RGBA
}

// Backend is a render.Backend drawing axis-aligned mesh bounds.
type Backend struct {
	// back is only touched by the render worker
	back []Rect

	mu            sync.Mutex
	front         []Rect
	width, height int
	presents      uint64

	Background color.RGBA
}

func New(width, height int) *Backend {
	return &Backend{width: width, height: height, Background: color.RGBA{A: 255}}
}

func (b *Backend) BindRenderContext() {}
func (b *Backend) BindMainContext()   {}

func (b *Backend) Clear() {
	b.back = b.back[:0]
}

func (b *Backend) DrawMesh(mvp mgl32.Mat4, mesh *render.Mesh, mat *render.Material) {
	if mesh == nil || mat == nil || len(mesh.Vertices) == 0 {
		return
	}
	w, h := b.Size()
	lo, hi := render.ScreenBounds(mvp, mesh, float32(w), float32(h))
	b.back = append(b.back, Rect{
		X:     lo.X(),
		Y:     lo.Y(),
		W:     hi.X() - lo.X(),
		H:     hi.Y() - lo.Y(),
		Color: rgba(mat.Color),
	})
}

func (b *Backend) Present() {
	b.mu.Lock()
	b.front, b.back = b.back, b.front
	b.presents++
	b.mu.Unlock()
}

func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// SetSize records the layout size. Call it from ebiten.Game.Layout.
func (b *Backend) SetSize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.mu.Unlock()
}

// Frame returns a copy of the last presented frame.
func (b *Backend) Frame() []Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Rect(nil), b.front...)
}

func (b *Backend) Presents() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presents
}

// Draw paints the last presented frame onto screen.
func (b *Backend) Draw(screen *ebiten.Image) {
	screen.Fill(b.Background)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.front {
		vector.DrawFilledRect(screen, r.X, r.Y, r.W, r.H, r.Color, false)
	}
}

func rgba(c mgl32.Vec4) color.RGBA {
	channel := func(v float32) uint8 {
		return uint8(min(max(v, 0), 1) * 255)
	}
	return color.RGBA{channel(c.X()), channel(c.Y()), channel(c.Z()), channel(c.W())}
}

// Keyboard is an input.Source reading ebiten's key state. Poll must run on the ebiten
// update goroutine, which is where engine.Step runs when driven from Game.Update.
type Keyboard struct {
	buf     []ebiten.Key
	pressed map[input.Key]bool
	closing atomic.Bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{pressed: make(map[input.Key]bool)}
}

func (k *Keyboard) Poll() {
	clear(k.pressed)
	k.buf = inpututil.AppendPressedKeys(k.buf[:0])
	for _, key := range k.buf {
		if name, ok := keyOf(key.String()); ok {
			k.pressed[name] = true
		}
	}
}

func (k *Keyboard) ShouldClose() bool {
	return k.closing.Load()
}

func (k *Keyboard) KeyDown(key input.Key) bool {
	return k.pressed[key]
}

// Close makes ShouldClose report true, ending an engine run.
func (k *Keyboard) Close() {
	k.closing.Store(true)
}

// keyOf maps ebiten key names onto input keys: letters and digits lowercase, arrows by
// direction.
func keyOf(name string) (input.Key, bool) {
	switch name {
	case "ArrowUp":
		return input.KeyUp, true
	case "ArrowDown":
		return input.KeyDown, true
	case "ArrowLeft":
		return input.KeyLeft, true
	case "ArrowRight":
		return input.KeyRight, true
	case "Escape":
		return input.KeyEscape, true
	case "Space":
		return input.KeySpace, true
	case "Enter":
		return input.KeyEnter, true
	}
	if digit, ok := strings.CutPrefix(name, "Digit"); ok {
		name = digit
	}
	if len(name) == 1 {
		return input.Key(strings.ToLower(name)), true
	}
	return "", false
}
