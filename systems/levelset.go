package systems

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/automoto/platcore/shared/leveldata"
)

// LevelSet is a directory of TMX levels the sandbox cycles through, in name
// order.
type LevelSet struct {
	fsys   fs.FS
	dir    string
	names  []string
	levels map[string]*leveldata.CollisionData
	index  int
}

// LoadLevelSet parses every .tmx file in dir within fsys.
func LoadLevelSet(fsys fs.FS, dir string) (*LevelSet, error) {
	levels, names, err := leveldata.LoadAllLevels(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("level set %s: %w", dir, err)
	}
	return &LevelSet{fsys: fsys, dir: dir, names: names, levels: levels}, nil
}

func (s *LevelSet) FS() fs.FS { return s.fsys }

func (s *LevelSet) Len() int { return len(s.names) }

func (s *LevelSet) Index() int { return s.index }

// Name returns the current level's file stem.
func (s *LevelSet) Name() string { return s.names[s.index] }

// Path returns the current level's path within the set's file system.
func (s *LevelSet) Path() string { return s.pathOf(s.Name()) }

// Data returns the current level's collision data.
func (s *LevelSet) Data() *leveldata.CollisionData { return s.levels[s.Name()] }

func (s *LevelSet) pathOf(name string) string {
	return path.Join(s.dir, name+".tmx")
}

func (s *LevelSet) peekNext() (string, string, *leveldata.CollisionData) {
	name := s.names[(s.index+1)%len(s.names)]
	return name, s.pathOf(name), s.levels[name]
}

func (s *LevelSet) advance() {
	s.index = (s.index + 1) % len(s.names)
}

func (s *LevelSet) store(data *leveldata.CollisionData) {
	s.levels[s.Name()] = data
}
