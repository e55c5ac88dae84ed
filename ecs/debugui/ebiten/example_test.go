package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/maskecs/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	world        *ecs.World
	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Systems run inside the ImGui frame so deferred render functions draw into it
	g.imguiBackend.Frame(g.world.AdvanceTick)
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

	// Set up the world with the debug UI components
	world := ecs.NewWorld()
	handles := debugui.RegisterDebugUIComponents(world)
	ecs.NewSingleton[debugui.ImguiInputState](world)

	// Spawn entities with ImGui render functions
	b := world.BeginEntity()
	ecs.With(b, handles.Item, debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})
	b.Create()

	// Add the stock inspector windows too
	debugui.SpawnDebugUI(world, handles)

	// Register ImguiSystem
	world.Register(&debugui.ImguiSystem{Items: handles.Item})

	game := &Game{
		world:        world,
		imguiBackend: imguiBackend,
	}

	// Run the game
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
