// Package input maps raw key state from a platform source onto named axes and buttons.
package input

import (
	"sync"
)

// Key names a physical key, such as "w", "up" or "escape".
type Key string

const (
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeyEscape Key = "escape"
	KeySpace  Key = "space"
	KeyEnter  Key = "enter"
)

// Source is a platform input backend. Poll is called once per frame from the main
// goroutine; KeyDown reports the state captured by the last Poll.
type Source interface {
	Poll()
	ShouldClose() bool
	KeyDown(Key) bool
}

// AxisBinding contributes Value to an axis while Key is held.
type AxisBinding struct {
	Key   Key     `yaml:"key"`
	Value float32 `yaml:"value"`
}

// Input resolves axes and buttons against a Source.
type Input struct {
	src Source

	mu      sync.RWMutex
	axes    map[string][]AxisBinding
	buttons map[string][]Key
}

// New wraps src.
func New(src Source) *Input {
	return &Input{
		src:     src,
		axes:    make(map[string][]AxisBinding),
		buttons: make(map[string][]Key),
	}
}

// Source returns the wrapped backend.
func (in *Input) Source() Source {
	return in.src
}

// Poll refreshes the key state.
func (in *Input) Poll() {
	in.src.Poll()
}

// ShouldClose reports whether the user asked to quit.
func (in *Input) ShouldClose() bool {
	return in.src.ShouldClose()
}

// KeyDown reports whether k is held.
func (in *Input) KeyDown(k Key) bool {
	return in.src.KeyDown(k)
}

// RegisterAxis adds bindings to the named axis.
func (in *Input) RegisterAxis(name string, bindings ...AxisBinding) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.axes[name] = append(in.axes[name], bindings...)
}

// RegisterButton binds keys to the named button.
func (in *Input) RegisterButton(name string, keys ...Key) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.buttons[name] = append(in.buttons[name], keys...)
}

// Axis sums the values of every held binding of the axis, clamped to [-1, 1]. Unknown
// axes read as zero.
func (in *Input) Axis(name string) float32 {
	in.mu.RLock()
	defer in.mu.RUnlock()

	var v float32
	for _, b := range in.axes[name] {
		if in.src.KeyDown(b.Key) {
			v += b.Value
		}
	}
	return min(max(v, -1), 1)
}

// Button reports whether any key bound to the button is held.
func (in *Input) Button(name string) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()

	for _, k := range in.buttons[name] {
		if in.src.KeyDown(k) {
			return true
		}
	}
	return false
}
