package input

import "sync"

// FakeSource is a Source driven by code, for tests and headless runs.
type FakeSource struct {
	mu     sync.Mutex
	held   map[Key]bool
	polls  int
	closed bool
}

func NewFakeSource() *FakeSource {
	return &FakeSource{held: make(map[Key]bool)}
}

func (f *FakeSource) Poll() {
	f.mu.Lock()
	f.polls++
	f.mu.Unlock()
}

func (f *FakeSource) ShouldClose() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *FakeSource) KeyDown(k Key) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.held[k]
}

// Press holds or releases k.
func (f *FakeSource) Press(k Key, down bool) {
	f.mu.Lock()
	f.held[k] = down
	f.mu.Unlock()
}

// Close makes ShouldClose report true.
func (f *FakeSource) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// Polls returns how many times Poll was called.
func (f *FakeSource) Polls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls
}
