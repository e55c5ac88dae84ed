package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/maskecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/maskecs/ecs/debugui/ebiten"
	"github.com/plus3/maskecs/internal/game"
)

var (
	shipColor   = color.RGBA{235, 235, 245, 255}
	faintColor  = color.RGBA{110, 110, 130, 255}
	bulletColor = color.RGBA{255, 220, 120, 255}
	rockColor   = color.RGBA{170, 200, 255, 255}
)

// App implements ebiten.Game around a game.Game. When imgui is set, every
// tick runs inside an ImGui frame so the debug windows draw over the game.
type App struct {
	game       *game.Game
	dt         float64
	imgui      *debugui_ebiten.ImguiBackend
	imguiInput *debugui.ImguiInputState
}

func (a *App) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	in := a.readInput()
	if a.imgui == nil {
		a.game.Step(a.dt, in)
		return nil
	}
	a.imgui.Frame(func() { a.game.Step(a.dt, in) })
	return nil
}

// readInput samples the keyboard. Keys typed into an ImGui widget are not
// passed on to the ship.
func (a *App) readInput() game.Input {
	if a.imguiInput != nil && a.imguiInput.WantCaptureKeyboard {
		return game.Input{}
	}
	return game.Input{
		Left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Thrust:  ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Fire:    ebiten.IsKeyPressed(ebiten.KeySpace),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyEnter),
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	a.game.Shapes(func(s game.Shape) {
		clr := rockColor
		switch {
		case s.Kind == game.ShapeShip && s.Faint:
			clr = faintColor
		case s.Kind == game.ShapeShip:
			clr = shipColor
		case s.Kind == game.ShapeBullet:
			clr = bulletColor
		}
		strokeOutline(screen, s.Points, clr)
	})

	session := a.game.Session()
	hud := fmt.Sprintf("SCORE %d   LIVES %d   WAVE %d   TPS %.0f", session.Score, session.Lives, session.Wave, ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)
	if session.GameOver {
		arena := a.game.Arena()
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press Enter", int(arena.Width/2)-70, int(arena.Height/2))
	}

	if a.imgui != nil {
		a.imgui.Draw(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	arena := a.game.Arena()
	if a.imgui != nil {
		a.imgui.Layout(outsideWidth, outsideHeight)
	}
	return int(arena.Width), int(arena.Height)
}

// strokeOutline draws a closed polygon. Two points draw a single segment.
func strokeOutline(screen *ebiten.Image, points []game.Vec, clr color.Color) {
	n := len(points)
	if n < 2 {
		return
	}
	segments := n
	if n == 2 {
		segments = 1
	}
	for i := 0; i < segments; i++ {
		p, q := points[i], points[(i+1)%n]
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 1.5, clr, true)
	}
}
