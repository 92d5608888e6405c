package scenes

import (
	"image/color"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/render"
	"github.com/automoto/platcore/shared/leveldata"
	"github.com/automoto/platcore/systems"
	"github.com/automoto/platcore/systems/factory"
	"github.com/automoto/platcore/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var demoLayout = []string{
	"........................................",
	"........................................",
	"#......................................#",
	"#......................................#",
	"#..............====....................#",
	"#<...................................>.#",
	"#<..........................####.....>.#",
	"#<.........====.............####.....>.#",
	"#<.........................######....>.#",
	"#.................../#####.######......#",
	"#................../######.######......#",
	"#######.........../######..######\\.....#",
	"#######.........######.....#######\\....#",
	"########################...#############",
}

// SandboxScene runs the collision core on one level with a keyboard driven
// player and the debug overlay.
type SandboxScene struct {
	ecs       *ecs.ECS
	levelPath string
	levelsDir string
	root      string // OS directory level paths are relative to
	fsys      fs.FS
	levelSet  *systems.LevelSet
	watcher   *systems.LevelWatcher
	input     components.InputData
	once      sync.Once
}

// NewSandboxScene creates a scene for the TMX file at levelPath. An empty
// path loads the built-in demo layout.
func NewSandboxScene(levelPath string) *SandboxScene {
	return &SandboxScene{levelPath: levelPath}
}

// NewLevelSetScene creates a scene cycling through every TMX file in dir.
func NewLevelSetScene(dir string) *SandboxScene {
	return &SandboxScene{levelsDir: dir}
}

func (s *SandboxScene) Update() {
	s.once.Do(s.configure)

	s.input.Advance(pollInput())
	tags.Player.Each(s.ecs.World, func(e *donburi.Entry) {
		components.Input.Get(e).Advance(s.input.Current)
	})
	s.handleGlobalActions()

	if s.watcher != nil {
		for err := s.watcher.PollError(); err != nil; err = s.watcher.PollError() {
			log.Printf("[level] watch: %v", err)
		}
		if s.watcher.Poll() {
			s.reload()
		}
	}

	s.ecs.Update()
}

func (s *SandboxScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if s.ecs == nil {
		return
	}
	s.ecs.Draw(screen)
}

func (s *SandboxScene) Close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}

func (s *SandboxScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	systems.AddSystems(ecs)

	ecs.AddRenderer(cfg.Default, render.DrawTiles)
	ecs.AddRenderer(cfg.Default, render.DrawColliders)
	ecs.AddRenderer(cfg.Default, render.DrawFlags)

	s.ecs = ecs

	level := s.createLevel()
	factory.CreateLevelSpace(ecs, level.Data)
	factory.CreatePlayer(ecs, factory.SpawnPosition(level.Data))
	for _, m := range level.Data.Movers {
		factory.CreateMover(ecs, m)
	}

	if saved, err := systems.LoadTuning(); err == nil && saved != nil {
		systems.ApplyTuning(ecs, saved)
	}

	s.watch()
}

// createLevel loads the level set, then the single level file, then the
// demo layout, keeping the first that works.
func (s *SandboxScene) createLevel() *components.LevelData {
	if s.levelsDir != "" {
		level, err := s.createLevelSet()
		if err == nil {
			return level
		}
		log.Printf("[level] %v, using the demo layout", err)
	}

	if s.levelPath != "" {
		s.root = filepath.Dir(s.levelPath)
		s.fsys = os.DirFS(s.root)
		entry, err := factory.LoadLevel(s.ecs, s.fsys, filepath.Base(s.levelPath))
		if err == nil {
			return components.Level.Get(entry)
		}
		log.Printf("[level] %v, using the demo layout", err)
		s.root, s.fsys = "", nil
	}

	data, err := leveldata.ParseRows(demoLayout, leveldata.DefaultLegend, 16, 16)
	if err != nil {
		panic("demo layout: " + err.Error())
	}
	entry, err := factory.CreateLevel(s.ecs, "demo", data)
	if err != nil {
		panic("demo layout: " + err.Error())
	}
	return components.Level.Get(entry)
}

func (s *SandboxScene) createLevelSet() (*components.LevelData, error) {
	abs, err := filepath.Abs(s.levelsDir)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(abs)
	fsys := os.DirFS(root)
	set, err := systems.LoadLevelSet(fsys, filepath.Base(abs))
	if err != nil {
		return nil, err
	}
	entry, err := factory.CreateLevel(s.ecs, set.Path(), set.Data())
	if err != nil {
		return nil, err
	}
	s.root, s.fsys, s.levelSet = root, fsys, set
	return components.Level.Get(entry), nil
}

// watch follows the current level file when hot reload is on.
func (s *SandboxScene) watch() {
	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
	if s.fsys == nil || !cfg.Debug.HotReload {
		return
	}
	level, ok := components.Level.First(s.ecs.World)
	if !ok {
		return
	}
	path := filepath.Join(s.root, filepath.FromSlash(components.Level.Get(level).Path))
	w, err := systems.NewLevelWatcher(path)
	if err != nil {
		log.Printf("[level] hot reload disabled: %v", err)
		return
	}
	s.watcher = w
}

func (s *SandboxScene) reload() {
	if s.fsys == nil {
		return
	}
	_ = systems.ReloadLevel(s.ecs, s.fsys)
}

func (s *SandboxScene) nextLevel() {
	if s.levelSet == nil || s.levelSet.Len() < 2 {
		return
	}
	if err := systems.NextLevel(s.ecs, s.levelSet); err == nil {
		s.watch()
	}
}

func (s *SandboxScene) handleGlobalActions() {
	if s.input.JustPressed(cfg.ActionToggleDebug) {
		cfg.Debug.ShowHitPoints = !cfg.Debug.ShowHitPoints
	}
	if s.input.JustPressed(cfg.ActionSaveTuning) {
		if err := systems.SaveTuning(systems.CurrentTuning()); err == nil {
			log.Printf("[persistence] tuning saved")
		}
	}
	if s.input.JustPressed(cfg.ActionReload) {
		s.reload()
	}
	if s.input.JustPressed(cfg.ActionNextLevel) {
		s.nextLevel()
	}
}
