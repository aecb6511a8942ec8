package ecs_test

import (
	"sync"
	"testing"

	"github.com/ReeCocho/Snek/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityStable(t *testing.T) {
	r := ecs.NewComponentRegistry()

	pos := ecs.IdentityOf[*Position](r)
	health := ecs.IdentityOf[*Health](r)

	assert.Equal(t, ecs.TypeID(0), pos)
	assert.Equal(t, ecs.TypeID(1), health)
	assert.Equal(t, pos, ecs.IdentityOf[*Position](r))
	assert.Equal(t, 2, r.Count())
}

func TestIdentityConcurrent(t *testing.T) {
	r := ecs.NewComponentRegistry()

	ids := make([]ecs.TypeID, 32)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ecs.IdentityOf[*Health](r)
			ids[i] = ecs.IdentityOf[*Position](r)
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 2, r.Count())
}

func TestRegistryCreate(t *testing.T) {
	r := ecs.NewComponentRegistry()

	t.Run("concrete", func(t *testing.T) {
		c := r.Create(ecs.IdentityOf[*Position](r))
		_, ok := c.(*Position)
		assert.True(t, ok)
	})

	t.Run("factory", func(t *testing.T) {
		id := ecs.RegisterFactory(r, func() *Health { return &Health{Current: 100} })
		assert.Equal(t, 100, r.Create(id).(*Health).Current)
	})

	t.Run("abstract panics", func(t *testing.T) {
		id := ecs.IdentityOf[Base](r)
		assert.True(t, r.Info(id).Abstract)
		assert.Panics(t, func() { r.Create(id) })
	})

	t.Run("unknown panics", func(t *testing.T) {
		assert.Panics(t, func() { r.Create(ecs.TypeID(999)) })
	})

	t.Run("non component panics", func(t *testing.T) {
		assert.Panics(t, func() { ecs.IdentityOf[*Journal](r) })
		assert.Panics(t, func() { ecs.IdentityOf[int](r) })
	})
}

func TestRegisterPolymorphic(t *testing.T) {
	r := newTestRegistry()

	base := ecs.IdentityOf[Base](r)
	leaf := ecs.IdentityOf[*Leaf](r)
	branch := ecs.IdentityOf[*Branch](r)

	assert.Equal(t, []ecs.TypeID{leaf, branch}, r.Children(base))
	assert.Equal(t, []ecs.TypeID{leaf, branch}, r.Info(base).Children)

	// registering twice keeps a single edge
	ecs.RegisterPolymorphic[Base, *Leaf](r)
	assert.Len(t, r.Children(base), 2)

	assert.Panics(t, func() { ecs.RegisterPolymorphic[Base, *Position](r) })
}

func TestPolymorphicCycleTerminates(t *testing.T) {
	r := ecs.NewComponentRegistry()
	ecs.RegisterPolymorphic[ecs.Component, Base](r)
	ecs.RegisterPolymorphic[Base, ecs.Component](r)
	ecs.RegisterPolymorphic[Base, *Leaf](r)

	scene := ecs.NewScene(r)
	e := scene.Create()
	ecs.Add[*Leaf](e)

	c, ok := ecs.Get[ecs.Component](e)
	require.True(t, ok)
	assert.IsType(t, &Leaf{}, c)
}

func TestTypes(t *testing.T) {
	r := newTestRegistry()

	var names []string
	for info := range r.Types() {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{
		"*ecs_test.Position",
		"*ecs_test.Health",
		"ecs_test.Base",
		"*ecs_test.Leaf",
		"*ecs_test.Branch",
		"*ecs_test.Lifecycle",
		"*ecs_test.Other",
	}, names)
}
