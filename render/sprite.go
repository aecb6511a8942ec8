package render

import "github.com/ReeCocho/Snek/ecs"

// SpriteRenderer submits a mesh at its entity's transform every frame.
type SpriteRenderer struct {
	ecs.ComponentBase

	Mesh     *Mesh
	Material *Material
	Depth    uint32

	renderer *Renderer
}

func (s *SpriteRenderer) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseBegin, ecs.PhasePreRender)
}

func (s *SpriteRenderer) OnBegin() {
	s.renderer, _ = ecs.Resource[*Renderer](s.Scene())
}

// OnPreRender submits nothing until both Mesh and Material are set.
func (s *SpriteRenderer) OnPreRender(float32) {
	if s.renderer == nil || s.Mesh == nil || s.Material == nil {
		return
	}
	s.renderer.Draw(MeshData{
		Mesh:     s.Mesh,
		Material: s.Material,
		Model:    s.Transform().ModelMatrix(),
		Depth:    s.Depth,
	})
}
