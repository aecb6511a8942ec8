// Package terminal draws frames into a character-cell terminal with tcell and reads keys
// from it. One Screen serves as both the render.Backend and the input.Source.
package terminal

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ReeCocho/Snek/input"
	"github.com/ReeCocho/Snek/render"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// cellAspect is how many times taller a terminal cell is than wide.
const cellAspect = 2

// Screen is a tcell-backed render.Backend and input.Source.
type Screen struct {
	screen tcell.Screen
	log    *zap.Logger

	events chan tcell.Event
	done   chan struct{}
	once   sync.Once

	// pressed holds the keys seen since the last Poll. Main goroutine only.
	pressed map[input.Key]bool
	closing atomic.Bool
	inFrame atomic.Bool
	status  atomic.Pointer[string]

	background tcell.Style
}

// Option configures a Screen.
type Option func(*Screen)

// WithLogger sets the screen's logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Screen) {
		s.log = log
	}
}

// New opens the controlling terminal.
func New(opts ...Option) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	return NewWithScreen(screen, opts...)
}

// NewWithScreen initialises screen and starts reading its events. Tests pass a
// tcell simulation screen.
func NewWithScreen(screen tcell.Screen, opts ...Option) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	s := &Screen{
		screen:     screen,
		log:        zap.NewNop(),
		events:     make(chan tcell.Event, 64),
		done:       make(chan struct{}),
		pressed:    make(map[input.Key]bool),
		background: tcell.StyleDefault.Background(tcell.ColorBlack),
	}
	for _, opt := range opts {
		opt(s)
	}
	screen.HideCursor()
	screen.SetStyle(s.background)
	go s.pump()
	return s, nil
}

func (s *Screen) pump() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.once.Do(func() {
		s.closing.Store(true)
		close(s.done)
		s.screen.Fini()
	})
}

// Poll drains pending terminal events. Terminals only report key presses, so a key
// counts as down for the frame after it was pressed or auto-repeated.
func (s *Screen) Poll() {
	clear(s.pressed)
	for {
		select {
		case ev := <-s.events:
			s.handle(ev)
		default:
			return
		}
	}
}

func (s *Screen) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			s.closing.Store(true)
			return
		}
		if k, ok := keyOf(ev); ok {
			s.pressed[k] = true
		}
	case *tcell.EventResize:
		s.screen.Sync()
		w, h := ev.Size()
		s.log.Debug("terminal resized", zap.Int("width", w), zap.Int("height", h))
	}
}

func keyOf(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyEscape:
		return input.KeyEscape, true
	case tcell.KeyEnter:
		return input.KeyEnter, true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return input.KeySpace, true
		}
		return input.Key(strings.ToLower(string(ev.Rune()))), true
	}
	return "", false
}

func (s *Screen) ShouldClose() bool {
	return s.closing.Load()
}

func (s *Screen) KeyDown(k input.Key) bool {
	return s.pressed[k]
}

func (s *Screen) BindRenderContext() {
	s.inFrame.Store(true)
}

func (s *Screen) BindMainContext() {
	s.inFrame.Store(false)
}

func (s *Screen) Clear() {
	s.screen.Fill(' ', s.background)
}

// Present draws the status line over the frame and shows it.
func (s *Screen) Present() {
	if status := s.status.Load(); status != nil {
		s.DrawText(0, 0, *status, tcell.ColorWhite)
	}
	s.screen.Show()
}

// SetStatus replaces the line drawn on the top row of every presented frame. Safe to
// call from the main goroutine while the render worker presents.
func (s *Screen) SetStatus(text string) {
	s.status.Store(&text)
}

// Size reports the screen in square units: each cell counts twice vertically.
func (s *Screen) Size() (int, int) {
	w, h := s.screen.Size()
	return w, h * cellAspect
}

// DrawMesh fills the cells covered by the mesh's screen-space bounding box.
func (s *Screen) DrawMesh(mvp mgl32.Mat4, mesh *render.Mesh, mat *render.Material) {
	if mesh == nil || mat == nil || len(mesh.Vertices) == 0 {
		return
	}
	w, h := s.screen.Size()
	lo, hi := render.ScreenBounds(mvp, mesh, float32(w), float32(h))

	x0, x1 := cellSpan(lo.X(), hi.X(), w)
	y0, y1 := cellSpan(lo.Y(), hi.Y(), h)
	glyph := mat.Glyph
	if glyph == 0 {
		glyph = '█'
	}
	style := s.background.Foreground(colorOf(mat.Color))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

// cellSpan rounds a continuous span to whole cells, at least one wide, clipped to [0, n).
func cellSpan(lo, hi float32, n int) (int, int) {
	a := int(math.Round(float64(lo)))
	b := int(math.Round(float64(hi)))
	if b <= a {
		b = a + 1
	}
	return max(a, 0), min(b, n)
}

func colorOf(c mgl32.Vec4) tcell.Color {
	channel := func(v float32) int32 {
		return int32(min(max(v, 0), 1) * 255)
	}
	return tcell.NewRGBColor(channel(c.X()), channel(c.Y()), channel(c.Z()))
}

// DrawText writes a line of text at cell (x, y). It only draws between BindRenderContext
// and BindMainContext, since the render worker owns the cell buffer then.
func (s *Screen) DrawText(x, y int, text string, color tcell.Color) {
	if !s.inFrame.Load() {
		return
	}
	style := s.background.Foreground(color)
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}
