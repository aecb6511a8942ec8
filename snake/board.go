package snake

import (
	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/render"
	"github.com/go-gl/mathgl/mgl32"
)

// Settings sizes the board Build creates.
type Settings struct {
	Width      int
	Height     int
	CameraSize float32
}

// DefaultSettings is an 18x18 grid seen by a camera 20 units tall.
func DefaultSettings() Settings {
	return Settings{Width: 18, Height: 18, CameraSize: 20}
}

// Board holds the entities Build created.
type Board struct {
	Snake     *Snake
	Camera    *render.Camera
	Borders   []ecs.Entity
	Mesh      *render.Mesh
	Materials Materials
	Border    *render.Material
}

// Build populates scene with a game: the snake manager, a main camera at the origin, a
// white border around the grid and one sprite per cell. The camera becomes the main
// camera when the scene has a *render.Renderer resource.
func Build(scene *ecs.Scene, set Settings) *Board {
	b := &Board{
		Mesh: render.QuadMesh(),
		Materials: Materials{
			Empty: render.NewMaterial("empty", mgl32.Vec4{0, 0, 0, 1}),
			Body:  render.NewMaterial("snake", mgl32.Vec4{1, 0, 0, 1}),
			Food:  render.NewMaterial("food", mgl32.Vec4{1, 1, 0, 1}),
		},
		Border: render.NewMaterial("border", mgl32.Vec4{1, 1, 1, 1}),
	}
	b.Materials.Empty.Glyph = ' '
	b.Materials.Food.Glyph = '●'

	b.Snake = ecs.Add[*Snake](scene.Create())
	b.Snake.Init(set.Width, set.Height)
	b.Snake.Materials = b.Materials

	cam := scene.Create()
	b.Camera = ecs.Add[*render.Camera](cam)
	b.Camera.Size = set.CameraSize
	if r, ok := ecs.Resource[*render.Renderer](scene); ok {
		r.SetMainCamera(b.Camera)
	}

	halfW, halfH := float32(set.Width)/2, float32(set.Height)/2
	w, h := float32(set.Width+1), float32(set.Height+1)
	for _, border := range []struct {
		pos   mgl32.Vec3
		scale mgl32.Vec2
	}{
		{mgl32.Vec3{0, halfH + 0.25, 0}, mgl32.Vec2{w, 0.5}},
		{mgl32.Vec3{0, -halfH - 0.25, 0}, mgl32.Vec2{w, 0.5}},
		{mgl32.Vec3{halfW + 0.25, 0, 0}, mgl32.Vec2{0.5, h}},
		{mgl32.Vec3{-halfW - 0.25, 0, 0}, mgl32.Vec2{0.5, h}},
	} {
		e := b.sprite(scene, border.pos, b.Border)
		e.Transform().SetLocalScale(border.scale)
		b.Borders = append(b.Borders, e)
	}

	for x := range set.Width {
		for y := range set.Height {
			pos := mgl32.Vec3{float32(x) - halfW + 0.5, float32(y) - halfH + 0.5, 0}
			e := b.sprite(scene, pos, b.Materials.Empty)
			sr, _ := ecs.Get[*render.SpriteRenderer](e)
			b.Snake.SetNode(x, y, Node{Renderer: sr})
		}
	}

	b.Snake.PickFoodSpot()
	b.Snake.Paint()
	return b
}

func (b *Board) sprite(scene *ecs.Scene, pos mgl32.Vec3, mat *render.Material) ecs.Entity {
	e := scene.Create()
	e.Transform().SetPosition(pos)
	sr := ecs.Add[*render.SpriteRenderer](e)
	sr.Mesh = b.Mesh
	sr.Material = mat
	return e
}
