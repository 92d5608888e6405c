package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/platcore/config"
	"github.com/automoto/platcore/scenes"
	"github.com/automoto/platcore/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(levelPath, levelsDir string) *Game {
	scene := scenes.NewSandboxScene(levelPath)
	if levelsDir != "" {
		scene = scenes.NewLevelSetScene(levelsDir)
	}
	return &Game{
		bounds: image.Rectangle{},
		scene:  scene,
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	level := flag.String("level", "", "TMX level to load (empty = built-in demo)")
	levels := flag.String("levels", "", "Directory of TMX levels to cycle through with F2")
	configPath := flag.String("config", "", "YAML file overriding the default tuning")
	hitPoints := flag.Bool("hitpoints", false, "Draw collider hit points")
	flag.Parse()

	if *configPath != "" {
		if err := config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *hitPoints {
		config.Debug.ShowHitPoints = true
	}
	if *level == "" {
		*level = config.Debug.Level
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetTPS(config.C.TPS)

	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	game := NewGame(*level, *levels)
	if s, ok := game.scene.(*scenes.SandboxScene); ok {
		defer s.Close()
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
