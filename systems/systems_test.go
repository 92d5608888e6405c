package systems

import (
	"slices"
	"testing"
	"testing/fstest"

	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/shared/leveldata"
	"github.com/automoto/platcore/systems/factory"
	"github.com/automoto/platcore/tags"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// flatLevel is 10x6 tiles of 16 units with a ground row at the bottom.
func flatLevel() *leveldata.CollisionData {
	data := &leveldata.CollisionData{TileWidth: 16, TileHeight: 16}
	for c := 0; c < 10; c++ {
		data.Columns = append(data.Columns, []string{"ground", "", "", "", "", ""})
	}
	return data
}

func newWorld(t *testing.T, data *leveldata.CollisionData) *ecs.ECS {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	AddSystems(e)
	factory.CreateSpace(e, 160, 96, 16, 16)
	if data != nil {
		_, err := factory.CreateLevel(e, "test.tmx", data)
		require.NoError(t, err)
	}
	return e
}

func step(e *ecs.ECS, n int) {
	for i := 0; i < n; i++ {
		e.Update()
	}
}

func collectContacts(e *ecs.ECS) *[]ContactEvent {
	var got []ContactEvent
	ContactEvents.Subscribe(e.World, func(w donburi.World, ev ContactEvent) {
		got = append(got, ev)
	})
	return &got
}

func press(player *donburi.Entry, actions ...cfg.ActionID) {
	var current [cfg.ActionCount]bool
	for _, a := range actions {
		current[a] = true
	}
	components.Input.Get(player).Advance(current)
}

func TestPlayerRestsOnGround(t *testing.T) {
	e := newWorld(t, flatLevel())
	// 22 units tall: the bottom sits on the ground top at 16.
	player := factory.CreatePlayer(e, gamemath.Vec{X: 80, Y: 27})
	contacts := collectContacts(e)

	step(e, 10)

	pos := components.Transform.Get(player).Position
	assert.InDelta(t, 80, pos.X, 1e-9)
	assert.InDelta(t, 27, pos.Y, 1e-9)

	col := components.Collider.Get(player)
	assert.True(t, col.Current.OnGround)
	assert.False(t, col.Current.KilledByCollision)

	require.NotEmpty(t, *contacts)
	for _, ev := range *contacts {
		assert.Equal(t, player.Entity(), ev.Entry.Entity())
		assert.Nil(t, ev.Other)
		assert.True(t, ev.Contact.HasSide(collision.SideBottom))
	}
}

func TestPlayerFallsAndLands(t *testing.T) {
	e := newWorld(t, flatLevel())
	player := factory.CreatePlayer(e, gamemath.Vec{X: 40, Y: 70})

	step(e, 5)
	assert.Less(t, components.Transform.Get(player).Position.Y, 70.0)
	assert.True(t, components.Collider.Get(player).IsOnAir())

	step(e, 60)
	assert.InDelta(t, 27, components.Transform.Get(player).Position.Y, 1e-9)
	assert.True(t, components.Collider.Get(player).Current.OnGround)
	assert.Zero(t, components.KinematicsBody.Get(player).Velocity.X)
}

func TestPlayerRunsAndStopsAtWall(t *testing.T) {
	data := flatLevel()
	data.Columns[8][1] = "ground"
	data.Columns[8][2] = "ground"
	e := newWorld(t, data)
	player := factory.CreatePlayer(e, gamemath.Vec{X: 40, Y: 27})

	for i := 0; i < 90; i++ {
		press(player, cfg.ActionMoveRight)
		e.Update()
	}

	pos := components.Transform.Get(player).Position
	// Wall face at x=128, half width 6.
	assert.InDelta(t, 122, pos.X, 1e-9)
	assert.InDelta(t, 27, pos.Y, 1e-9)
	col := components.Collider.Get(player)
	assert.True(t, col.Current.PushesRightWall)
	assert.True(t, col.Current.OnGround)
}

func TestPlayerJumps(t *testing.T) {
	e := newWorld(t, flatLevel())
	player := factory.CreatePlayer(e, gamemath.Vec{X: 80, Y: 27})
	step(e, 2)

	press(player, cfg.ActionJump)
	e.Update()

	body := components.KinematicsBody.Get(player)
	assert.Greater(t, body.Velocity.Y, 0.0)
	assert.Greater(t, components.Transform.Get(player).Position.Y, 27.0)
	assert.True(t, components.Collider.Get(player).IsOnAir())

	for i := 0; i < 120; i++ {
		press(player)
		e.Update()
	}
	assert.InDelta(t, 27, components.Transform.Get(player).Position.Y, 1e-9)
}

func TestPlayerDropsThroughOneWay(t *testing.T) {
	data := flatLevel()
	for c := 0; c < 10; c++ {
		data.Columns[c][2] = "one_way"
	}
	e := newWorld(t, data)
	// Standing on the one-way row, whose top is at 48.
	player := factory.CreatePlayer(e, gamemath.Vec{X: 80, Y: 59})

	step(e, 3)
	assert.InDelta(t, 59, components.Transform.Get(player).Position.Y, 1e-9)

	for i := 0; i < 60; i++ {
		press(player, cfg.ActionDrop)
		e.Update()
	}
	assert.InDelta(t, 27, components.Transform.Get(player).Position.Y, 1e-9)
}

func TestNoLevelSkipsTileResolution(t *testing.T) {
	e := newWorld(t, nil)
	body := factory.CreateBody(e, gamemath.Vec{X: 40, Y: 40}, gamemath.Vec{X: 8, Y: 8})
	contacts := collectContacts(e)

	step(e, 30)

	assert.Less(t, components.Transform.Get(body).Position.Y, 0.0)
	assert.Empty(t, *contacts)
	assert.True(t, components.Collider.Get(body).IsOnAir())
}

func TestColliderContactsThroughBroadphase(t *testing.T) {
	e := newWorld(t, flatLevel())
	player := factory.CreatePlayer(e, gamemath.Vec{X: 80, Y: 27})
	mover := factory.CreateMover(e, leveldata.MoverPath{X: 70, Y: 20, W: 20, H: 10, Distance: 0, Seconds: 1})
	contacts := collectContacts(e)

	e.Update()

	var playerSide, moverSide bool
	for _, ev := range *contacts {
		if ev.Other == nil {
			continue
		}
		assert.Equal(t, collision.ObjectCollider, ev.Contact.Other.Kind)
		switch ev.Entry.Entity() {
		case player.Entity():
			playerSide = ev.Other.Entity() == mover.Entity()
		case mover.Entity():
			moverSide = ev.Other.Entity() == player.Entity()
		}
	}
	assert.True(t, playerSide)
	assert.True(t, moverSide)

	// Contacts never move the player.
	assert.InDelta(t, 80, components.Transform.Get(player).Position.X, 1e-9)
}

func TestMoverPingPongs(t *testing.T) {
	e := newWorld(t, nil)
	// Origin x is 8; one leg takes 30 steps.
	mover := factory.CreateMover(e, leveldata.MoverPath{X: 0, Y: 0, W: 16, H: 4, Distance: 32, Seconds: 0.5})
	tr := components.Transform.Get(mover)

	step(e, 15)
	assert.InDelta(t, 24, tr.Position.X, 1.5)
	assert.False(t, components.Mover.Get(mover).Returning)

	step(e, 30)
	assert.InDelta(t, 24, tr.Position.X, 2.5)
	assert.True(t, components.Mover.Get(mover).Returning)

	step(e, 30)
	assert.InDelta(t, 24, tr.Position.X, 2.5)
	assert.False(t, components.Mover.Get(mover).Returning)
	assert.InDelta(t, 2, tr.Position.Y, 1e-9)
}

func TestCollidersInOrder(t *testing.T) {
	e := newWorld(t, nil)
	a := factory.CreateBody(e, gamemath.Vec{X: 10, Y: 10}, gamemath.Vec{X: 4, Y: 4})
	b := factory.CreateBody(e, gamemath.Vec{X: 20, Y: 10}, gamemath.Vec{X: 4, Y: 4})
	c := factory.CreateBody(e, gamemath.Vec{X: 30, Y: 10}, gamemath.Vec{X: 4, Y: 4})
	components.Collider.Get(a).Priority = 2

	got := collidersInOrder(e.World)
	require.Len(t, got, 3)
	assert.Equal(t, b.Entity(), got[0].Entity())
	assert.Equal(t, c.Entity(), got[1].Entity())
	assert.Equal(t, a.Entity(), got[2].Entity())
}

func TestCommitSkipsKilledColliders(t *testing.T) {
	e := newWorld(t, nil)
	body := factory.CreateBody(e, gamemath.Vec{X: 10, Y: 10}, gamemath.Vec{X: 4, Y: 4})
	tr := components.Transform.Get(body)
	tr.Proposed = gamemath.Vec{X: 12, Y: 10}
	components.Collider.Get(body).Current.KilledByCollision = true

	CommitTransforms(e)

	assert.Equal(t, gamemath.Vec{X: 10, Y: 10}, tr.Position)
	assert.Equal(t, tr.Position, tr.Proposed)
}

const reloadLevel = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="2" height="2" tilewidth="16" tileheight="16" infinite="0">
 <tileset firstgid="1" name="collision" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="collision.png" width="16" height="16"/>
 </tileset>
 <layer id="1" name="collision" width="2" height="2">
  <data encoding="csv">
0,0,
1,1
</data>
 </layer>
 <objectgroup id="2" name="Movers">
  <object id="1" x="0" y="0" width="16" height="4">
   <properties>
    <property name="distance" type="float" value="16"/>
   </properties>
  </object>
 </objectgroup>
</map>
`

const spawnLevel = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="3" height="2" tilewidth="16" tileheight="16" infinite="0">
 <tileset firstgid="1" name="collision" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="collision.png" width="16" height="16"/>
 </tileset>
 <layer id="1" name="collision" width="3" height="2">
  <data encoding="csv">
0,0,0,
1,1,1
</data>
 </layer>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="1" x="8" y="16"/>
 </objectgroup>
</map>
`

func spaceOf(t *testing.T, e *ecs.ECS) *resolv.Space {
	t.Helper()
	count := 0
	components.Space.Each(e.World, func(*donburi.Entry) { count++ })
	require.Equal(t, 1, count, "spaces")
	entry, _ := components.Space.First(e.World)
	return components.Space.Get(entry)
}

func movers(e *ecs.ECS) []*donburi.Entry {
	var out []*donburi.Entry
	tags.Mover.Each(e.World, func(m *donburi.Entry) { out = append(out, m) })
	return out
}

func TestReloadLevel(t *testing.T) {
	e := newWorld(t, flatLevel())
	fsys := fstest.MapFS{"test.tmx": {Data: []byte(reloadLevel)}}

	require.NoError(t, ReloadLevel(e, fsys))

	level := currentLevel(e.World)
	require.NotNil(t, level.Map)
	assert.Equal(t, 2, level.Map.Columns())
	assert.Equal(t, 2, level.Map.Rows())
	assert.NotNil(t, level.Map.TileAt(1, 0))
	assert.Nil(t, level.Map.TileAt(1, 1))
}

func TestReloadLevelResizesSpaceAndRespawnsMovers(t *testing.T) {
	e := newWorld(t, flatLevel())
	player := factory.CreatePlayer(e, gamemath.Vec{X: 8, Y: 27})
	old := factory.CreateMover(e, leveldata.MoverPath{X: 64, Y: 40, W: 16, H: 4, Distance: 32})
	require.Equal(t, 10, spaceOf(t, e).Width())

	fsys := fstest.MapFS{"test.tmx": {Data: []byte(reloadLevel)}}
	require.NoError(t, ReloadLevel(e, fsys))

	space := spaceOf(t, e)
	assert.Equal(t, 2, space.Width())
	assert.Equal(t, 2, space.Height())
	assert.Same(t, space, components.Object.Get(player).Space)
	assert.True(t, slices.Contains(space.Objects(), components.Object.Get(player).Object))
	// The player stays where it was.
	assert.Equal(t, gamemath.Vec{X: 8, Y: 27}, components.Transform.Get(player).Position)

	assert.False(t, old.Valid())
	got := movers(e)
	require.Len(t, got, 1)
	assert.Equal(t, gamemath.Vec{X: 8, Y: 30}, components.Mover.Get(got[0]).Origin)
	assert.Same(t, space, components.Object.Get(got[0]).Space)
}

func TestSwitchLevelSameSizeKeepsSpace(t *testing.T) {
	e := newWorld(t, flatLevel())
	before := spaceOf(t, e)
	factory.CreateMover(e, leveldata.MoverPath{X: 64, Y: 40, W: 16, H: 4, Distance: 32})

	data := flatLevel()
	data.Movers = []leveldata.MoverPath{
		{X: 0, Y: 40, W: 16, H: 4, Distance: 16},
		{X: 32, Y: 40, W: 16, H: 4, Distance: 16},
	}
	next, err := factory.NewLevelData("test.tmx", data)
	require.NoError(t, err)
	SwitchLevel(e, next)

	assert.Same(t, before, spaceOf(t, e))
	assert.Len(t, movers(e), 2)
	assert.Same(t, data, currentLevel(e.World).Data)
}

func TestLevelSetCyclesLevels(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/a.tmx": {Data: []byte(reloadLevel)},
		"levels/b.tmx": {Data: []byte(spawnLevel)},
	}
	set, err := LoadLevelSet(fsys, "levels")
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, "a", set.Name())
	assert.Equal(t, "levels/a.tmx", set.Path())

	e := ecs.NewECS(donburi.NewWorld())
	AddSystems(e)
	_, err = factory.LoadLevel(e, set.FS(), set.Path())
	require.NoError(t, err)
	factory.CreateLevelSpace(e, set.Data())
	player := factory.CreatePlayer(e, factory.SpawnPosition(set.Data()))
	components.KinematicsBody.Get(player).Velocity = gamemath.Vec{X: 3, Y: -2}

	require.NoError(t, NextLevel(e, set))
	assert.Equal(t, "b", set.Name())
	level := currentLevel(e.World)
	assert.Equal(t, "levels/b.tmx", level.Path)
	assert.Equal(t, 3, level.Map.Columns())

	// Spawn is 16 down from the top of a 32 high map, plus half the player.
	want := gamemath.Vec{X: 8, Y: 16 + cfg.Player.Height/2}
	assert.Equal(t, want, components.Transform.Get(player).Position)
	assert.Equal(t, gamemath.Vec{}, components.KinematicsBody.Get(player).Velocity)
	assert.Equal(t, 3, spaceOf(t, e).Width())
	assert.Empty(t, movers(e))

	step(e, 10)
	assert.True(t, components.Collider.Get(player).Current.OnGround)
	assert.InDelta(t, want.Y, components.Transform.Get(player).Position.Y, 1e-9)

	require.NoError(t, NextLevel(e, set))
	assert.Equal(t, "a", set.Name())
	assert.Equal(t, 0, set.Index())
	assert.Len(t, movers(e), 1)
}

func TestLoadLevelSetErrors(t *testing.T) {
	_, err := LoadLevelSet(fstest.MapFS{}, "levels")
	assert.Error(t, err)

	e := ecs.NewECS(donburi.NewWorld())
	_, err = factory.LoadLevel(e, fstest.MapFS{}, "levels/missing.tmx")
	assert.Error(t, err)
}

func TestReloadLevelKeepsMapOnError(t *testing.T) {
	e := newWorld(t, flatLevel())
	before := currentLevel(e.World).Map

	assert.Error(t, ReloadLevel(e, fstest.MapFS{}))
	assert.Same(t, before, currentLevel(e.World).Map)
}
