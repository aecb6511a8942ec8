package ecs

import "github.com/kamstrup/intmap"

// pendingDestruction buffers destroy and remove requests until the start of the next tick,
// so phase callbacks never see storage shrink underneath them.
type pendingDestruction struct {
	entities   []uint32
	marked     *intmap.Map[uint32, struct{}]
	components []Component
}

func newPendingDestruction() *pendingDestruction {
	return &pendingDestruction{
		marked: intmap.New[uint32, struct{}](64),
	}
}

// markEntity queues index for destruction. Indices already queued are skipped.
func (p *pendingDestruction) markEntity(index uint32) {
	if _, ok := p.marked.Get(index); ok {
		return
	}
	p.marked.Put(index, struct{}{})
	p.entities = append(p.entities, index)
}

func (p *pendingDestruction) entityMarked(index uint32) bool {
	_, ok := p.marked.Get(index)
	return ok
}

// markComponent queues c for removal. Components already queued are skipped.
func (p *pendingDestruction) markComponent(c Component) {
	b := c.base()
	if b.marked {
		return
	}
	b.marked = true
	p.components = append(p.components, c)
}
