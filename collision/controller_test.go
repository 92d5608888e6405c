package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/tilemap"
)

var tile16 = gamemath.Vec{X: 16, Y: 16}

func groundTile() *tilemap.Tile { return &tilemap.Tile{Kind: tilemap.Ground} }
func oneWayTile() *tilemap.Tile { return &tilemap.Tile{Kind: tilemap.OneWay} }

func newController(columns ...[]*tilemap.Tile) *Controller {
	return NewController(tilemap.New(columns, tile16))
}

func box(w, h float64) *Collider {
	return NewCollider(gamemath.Vec{X: w, Y: h}, gamemath.Vec{}, Margins{})
}

func move(c *Collider, from, to gamemath.Vec) Movement {
	return Movement{Collider: c, Current: from, Proposed: to}
}

func vec(x, y float64) gamemath.Vec { return gamemath.Vec{X: x, Y: y} }

func intersectionAt(t *testing.T, list []TileIntersection, col, row int) TileIntersection {
	t.Helper()
	for _, ti := range list {
		if ti.Coordinates == (tilemap.Coordinates{Column: col, Row: row}) {
			return ti
		}
	}
	require.Failf(t, "missing intersection", "(%d,%d) not in %v", col, row, list)
	return TileIntersection{}
}

func coordinates(list []TileIntersection) []tilemap.Coordinates {
	out := make([]tilemap.Coordinates, len(list))
	for i, ti := range list {
		out[i] = ti.Coordinates
	}
	return out
}

func TestTileIntersectionsNearestFirst(t *testing.T) {
	ctrl := newController(
		[]*tilemap.Tile{groundTile(), groundTile(), groundTile()},
		[]*tilemap.Tile{groundTile(), groundTile(), groundTile()},
		[]*tilemap.Tile{groundTile(), groundTile(), groundTile()},
	)
	c := box(8, 8)

	// A footprint strictly inside one cell only meets that cell.
	list := ctrl.TileIntersections(move(c, vec(24, 24), vec(24, 24)))
	assert.Equal(t, []tilemap.Coordinates{{Column: 1, Row: 1}}, coordinates(list))
	assert.True(t, list[0].Overlaps)

	list = ctrl.TileIntersections(move(c, vec(24, 24), vec(24, 12)))
	assert.Equal(t, []tilemap.Coordinates{{Column: 1, Row: 1}, {Column: 1, Row: 0}}, coordinates(list))
}

func TestTileIntersectionsIncludeEdgeCells(t *testing.T) {
	column := func() []*tilemap.Tile { return []*tilemap.Tile{groundTile(), groundTile(), groundTile()} }
	ctrl := newController(column(), column(), column())
	c := box(16, 16)

	// A footprint aligned with cell (0,0) also meets the cells sharing its
	// top and right edges.
	list := ctrl.TileIntersections(move(c, vec(8, 8), vec(8, 8)))
	assert.Equal(t, []tilemap.Coordinates{
		{Column: 0, Row: 0}, {Column: 0, Row: 1}, {Column: 1, Row: 0}, {Column: 1, Row: 1},
	}, coordinates(list))

	var overlapping []tilemap.Coordinates
	for _, ti := range list {
		if ti.Overlaps {
			overlapping = append(overlapping, ti.Coordinates)
		}
	}
	assert.Equal(t, []tilemap.Coordinates{{Column: 0, Row: 0}}, overlapping)
	corner := intersectionAt(t, list, 1, 1).Intersection
	assert.Zero(t, corner.W*corner.H)
}

func TestResolveFallsOntoGround(t *testing.T) {
	// Single row: ground then empty.
	ctrl := newController([]*tilemap.Tile{groundTile()}, []*tilemap.Tile{nil})
	c := box(16, 16)
	mv := move(c, vec(16, 26), vec(16, 24))

	list := ctrl.TileIntersections(mv)
	ti := intersectionAt(t, list, 0, 0)
	assert.Equal(t, tilemap.Coordinates{Column: 0, Row: 0}, list[0].Coordinates)

	contact := ctrl.TileContact(mv, ti)
	require.NotNil(t, contact)
	assert.Equal(t, []ContactSide{SideBottom}, contact.Sides)

	res := ctrl.Resolve(mv)
	assert.Equal(t, vec(16, 24), res.Position)
	assert.Equal(t, 16.0, c.Frame(res.Position).MinY())
	assert.True(t, c.Current.OnGround)
	require.NotEmpty(t, res.Contacts)
	assert.Equal(t, ObjectTile, res.Contacts[0].Other.Kind)
}

func TestResolveSnapsToTopFromAnyDepth(t *testing.T) {
	ctrl := newController([]*tilemap.Tile{groundTile(), nil, nil})
	c := box(16, 16)

	res := ctrl.Resolve(move(c, vec(8, 40), vec(8, -4)))
	assert.Equal(t, vec(8, 24), res.Position)
	assert.True(t, c.Current.OnGround)

	mv := move(box(16, 16), vec(8, 40), vec(8, -100))
	contact := ctrl.TileContact(mv, intersectionAt(t, ctrl.TileIntersections(mv), 0, 0))
	require.NotNil(t, contact)
	assert.Equal(t, vec(8, 24), contact.Position)
}

func TestOneWay(t *testing.T) {
	ctrl := newController(
		[]*tilemap.Tile{groundTile(), nil},
		[]*tilemap.Tile{oneWayTile(), nil},
	)

	t.Run("blocks from above", func(t *testing.T) {
		c := box(16, 16)
		res := ctrl.Resolve(move(c, vec(24, 26), vec(24, 20)))
		assert.Equal(t, vec(24, 24), res.Position)
		assert.True(t, c.Current.OnGround)
	})

	t.Run("drop through", func(t *testing.T) {
		c := box(16, 16)
		c.Current.PushesDown = true
		c.ResetStates()
		mv := move(c, vec(24, 26), vec(24, 24))

		ti := intersectionAt(t, ctrl.TileIntersections(mv), 1, 0)
		assert.Nil(t, ctrl.TileContact(mv, ti))

		res := ctrl.Resolve(move(c, vec(24, 26), vec(24, 20)))
		assert.Equal(t, vec(24, 20), res.Position)
		assert.False(t, c.Current.OnGround)
	})

	t.Run("passes from below", func(t *testing.T) {
		c := box(16, 16)
		mv := move(c, vec(24, 4), vec(24, 10))
		ti := intersectionAt(t, ctrl.TileIntersections(mv), 1, 0)
		assert.Nil(t, ctrl.TileContact(mv, ti))
	})
}

func TestResolveGroundTakesPrecedenceOverOneWay(t *testing.T) {
	ctrl := newController(
		[]*tilemap.Tile{oneWayTile()},
		[]*tilemap.Tile{groundTile()},
	)
	c := box(16, 16)
	mv := move(c, vec(16, 26), vec(16, 20))

	list := ctrl.TileIntersections(mv)
	require.Len(t, list, 2)
	assert.Equal(t, tilemap.Ground, list[0].Tile.Kind)

	res := ctrl.Resolve(mv)
	assert.Equal(t, vec(16, 24), res.Position)
	require.Len(t, res.Contacts, 2)
	assert.Equal(t, tilemap.Coordinates{Column: 1, Row: 0}, res.Contacts[0].Other.Coordinates)
	assert.Equal(t, tilemap.Coordinates{Column: 0, Row: 0}, res.Contacts[1].Other.Coordinates)
	assert.True(t, c.Current.OnGround)
}

func TestResolveWalls(t *testing.T) {
	t.Run("right wall", func(t *testing.T) {
		ctrl := newController(
			[]*tilemap.Tile{groundTile(), nil},
			[]*tilemap.Tile{groundTile(), groundTile()},
		)
		c := box(16, 16)
		res := ctrl.Resolve(move(c, vec(8, 24), vec(12, 24)))
		assert.Equal(t, vec(8, 24), res.Position)
		assert.True(t, c.Current.PushesRightWall)
		assert.True(t, c.Current.OnGround)
		assert.False(t, c.Current.KilledByCollision)
	})

	t.Run("left wall", func(t *testing.T) {
		ctrl := newController(
			[]*tilemap.Tile{groundTile(), groundTile()},
			[]*tilemap.Tile{groundTile(), nil},
		)
		c := box(16, 16)
		res := ctrl.Resolve(move(c, vec(24, 24), vec(21, 24)))
		assert.Equal(t, vec(24, 24), res.Position)
		assert.True(t, c.Current.PushesLeftWall)
	})

	t.Run("ceiling", func(t *testing.T) {
		ctrl := newController([]*tilemap.Tile{nil, nil, groundTile()})
		c := box(16, 16)
		res := ctrl.Resolve(move(c, vec(8, 12), vec(8, 28)))
		assert.Equal(t, vec(8, 24), res.Position)
		assert.True(t, c.Current.AtCeiling)
	})

	t.Run("crushed", func(t *testing.T) {
		ctrl := newController([]*tilemap.Tile{groundTile(), nil, groundTile()})
		c := box(16, 16)
		res := ctrl.Resolve(move(c, vec(8, 24), vec(8, 26)))
		assert.Equal(t, vec(8, 24), res.Position)
		assert.True(t, c.Current.AtCeiling)
		assert.True(t, c.Current.OnGround)
		assert.True(t, c.Current.KilledByCollision)
	})

	t.Run("crushed stops resolving", func(t *testing.T) {
		// Floor and ceiling one tile apart with a wall beside the gap.
		ctrl := newController(
			[]*tilemap.Tile{groundTile(), nil, groundTile()},
			[]*tilemap.Tile{groundTile(), groundTile(), groundTile()},
		)
		c := box(16, 16)
		res := ctrl.Resolve(move(c, vec(8, 24), vec(10, 26)))

		assert.True(t, c.Current.KilledByCollision)
		assert.False(t, c.Current.PushesRightWall)
		assert.Equal(t, vec(10, 24), res.Position)
		got := make([]tilemap.Coordinates, len(res.Contacts))
		for i, ct := range res.Contacts {
			got[i] = ct.Other.Coordinates
		}
		assert.Equal(t, []tilemap.Coordinates{{Column: 0, Row: 2}, {Column: 0, Row: 0}}, got)
	})
}

func TestResolveIsIdempotent(t *testing.T) {
	ctrl := newController([]*tilemap.Tile{groundTile()}, []*tilemap.Tile{nil})
	c := box(16, 16)

	first := ctrl.Resolve(move(c, vec(16, 26), vec(16, 24)))
	flags := c.Current

	c.ResetStates()
	second := ctrl.Resolve(move(c, first.Position, first.Position))
	assert.Equal(t, first.Position, second.Position)
	assert.Equal(t, flags, c.Current)
}

func TestResolveIsDeterministic(t *testing.T) {
	ctrl := newController(
		[]*tilemap.Tile{groundTile(), nil, nil},
		[]*tilemap.Tile{groundTile(), tilemap.NewSlope(15, 8), nil},
		[]*tilemap.Tile{groundTile(), tilemap.NewSlope(7, 0), nil},
	)
	run := func() (Result, ContactFlags) {
		c := NewCollider(gamemath.Vec{X: 12, Y: 12}, gamemath.Vec{}, uniformMargins(2))
		res := ctrl.Resolve(move(c, vec(10, 30), vec(27, 19)))
		for i := range res.Contacts {
			res.Contacts[i].Collider = nil
		}
		return res, c.Current
	}
	r1, f1 := run()
	r2, f2 := run()
	assert.Equal(t, r1, r2)
	assert.Equal(t, f1, f2)
}

func TestResolveOutsideMap(t *testing.T) {
	ctrl := newController([]*tilemap.Tile{groundTile()})
	c := box(16, 16)
	res := ctrl.Resolve(move(c, vec(100, 100), vec(100, 90)))
	assert.Equal(t, vec(100, 90), res.Position)
	assert.True(t, c.Current.OutsideMapBounds)
	assert.Empty(t, res.Contacts)
}

func TestResolveWithoutMap(t *testing.T) {
	ctrl := NewController(nil)
	c := box(16, 16)
	res := ctrl.Resolve(move(c, vec(0, 10), vec(0, -10)))
	assert.Equal(t, vec(0, -10), res.Position)
	assert.Nil(t, ctrl.TileIntersections(move(c, vec(0, 10), vec(0, -10))))
	assert.Equal(t, ContactFlags{}, c.Current)
}

func TestEmptyTileFlags(t *testing.T) {
	ctrl := newController(
		[]*tilemap.Tile{groundTile(), nil},
		[]*tilemap.Tile{nil, nil},
	)

	t.Run("gap past the ledge", func(t *testing.T) {
		c := box(16, 16)
		res := ctrl.Resolve(move(c, vec(16, 24), vec(16, 24)))
		assert.True(t, c.Current.OnGround)
		assert.True(t, c.Current.OnGap)

		var empty []Contact
		for _, ct := range res.Contacts {
			if ct.Other.Empty {
				empty = append(empty, ct)
			}
		}
		require.Len(t, empty, 1)
		assert.Equal(t, tilemap.Coordinates{Column: 1, Row: 1}, empty[0].Other.Coordinates)
		assert.False(t, empty[0].Blocking)
	})

	t.Run("no gap over ground", func(t *testing.T) {
		c := box(8, 16)
		ctrl.Resolve(move(c, vec(6, 24), vec(6, 24)))
		assert.True(t, c.Current.OnGround)
		assert.False(t, c.Current.OnGap)
	})

	t.Run("corner jump after walking off", func(t *testing.T) {
		c := box(8, 8)
		c.Current.OnGround = true
		c.ResetStates()
		ctrl.Resolve(move(c, vec(20, 20), vec(20, 18)))
		assert.True(t, c.Current.OnCornerJump)
		assert.False(t, c.Current.OnGround)

		c.ResetStates()
		ctrl.Resolve(move(c, vec(20, 18), vec(20, 16)))
		assert.True(t, c.Current.OnCornerJump)
	})

	t.Run("corner jump discarded when airborne", func(t *testing.T) {
		c := box(8, 8)
		ctrl.Resolve(move(c, vec(20, 20), vec(20, 18)))
		assert.False(t, c.Current.OnCornerJump)
		assert.True(t, c.Current.DiscardsCornerJump)
	})
}

func TestColliderContact(t *testing.T) {
	a, b := box(16, 16), box(16, 16)
	a.ContactMask = 1
	b.Category = 1

	ct := ColliderContact(move(a, vec(8, 8), vec(8, 8)), move(b, vec(20, 8), vec(20, 8)))
	require.NotNil(t, ct)
	assert.Equal(t, ObjectCollider, ct.Other.Kind)
	assert.Same(t, b, ct.Other.Collider)
	assert.False(t, ct.Blocking)
	assert.Equal(t, []ContactSide{SideRight}, ct.Sides)
	assert.Equal(t, []ContactSide{SideLeft}, ct.OtherSides)
	assert.Equal(t, gamemath.Rect{X: 4, Y: -8, W: 4, H: 16}, ct.Intersection)
	assert.Equal(t, gamemath.Rect{X: -8, Y: -8, W: 4, H: 16}, ct.OtherIntersection)
	assert.True(t, ct.HasSide(SideRight))

	assert.Nil(t, ColliderContact(move(b, vec(20, 8), vec(20, 8)), move(a, vec(8, 8), vec(8, 8))))
	assert.Nil(t, ColliderContact(move(a, vec(8, 8), vec(8, 8)), move(b, vec(40, 8), vec(40, 8))))
}
