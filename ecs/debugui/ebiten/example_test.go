package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/ecs/debugui"
	debugui_ebiten "github.com/ReeCocho/Snek/ecs/debugui/ebiten"
	"github.com/hajimehoshi/ebiten/v2"
)

// Game implements ebiten.Game and ticks a scene inside an ImGui frame.
type Game struct {
	scene        *ecs.Scene
	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Begin ImGui frame before the scene's pre-render phase draws windows
	g.imguiBackend.BeginFrame()

	g.scene.Tick(1.0 / 60.0)

	// End ImGui frame after the tick completes
	g.imguiBackend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.imguiBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	// Create Ebiten window and ImGui backend
	imguiBackend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	scene := ecs.NewScene(ecs.NewComponentRegistry())

	// Inspector windows for the scene itself
	debugui.Spawn(scene)

	// Entities with ImGui render functions
	item := ecs.Add[*debugui.ImguiItem](scene.Create())
	item.Render = func() {
		imgui.Begin("Debug Window")
		imgui.Text("Hello from ECS!")
		imgui.End()
	}

	game := &Game{
		scene:        scene,
		imguiBackend: imguiBackend,
	}

	// Run the game
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
