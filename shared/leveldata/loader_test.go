package leveldata

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLevel = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="3" height="2" tilewidth="16" tileheight="16" infinite="0" nextlayerid="4" nextobjectid="3">
 <tileset firstgid="1" name="collision" tilewidth="16" tileheight="16" tilecount="4" columns="4">
  <image source="collision.png" width="64" height="16"/>
  <tile id="1">
   <properties>
    <property name="collider" value="one_way"/>
   </properties>
  </tile>
  <tile id="2">
   <properties>
    <property name="collider" value="slope_15_8"/>
   </properties>
  </tile>
  <tile id="3">
   <properties>
    <property name="slope" value="45_up_left"/>
   </properties>
  </tile>
 </tileset>
 <layer id="1" name="collision" width="3" height="2">
  <data encoding="csv">
0,3,4,
1,2,1
</data>
 </layer>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="1" x="40" y="8">
   <properties>
    <property name="spawnIndex" type="int" value="1"/>
   </properties>
  </object>
  <object id="2" x="8" y="8"/>
 </objectgroup>
 <objectgroup id="3" name="Movers">
  <object id="3" x="0" y="0" width="16" height="4">
   <properties>
    <property name="distance" type="float" value="32"/>
    <property name="seconds" type="float" value="2"/>
   </properties>
  </object>
 </objectgroup>
</map>
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"levels/test.tmx": {Data: []byte(testLevel)},
	}
}

func TestLoadCollisionDataFlipsRows(t *testing.T) {
	data, err := LoadCollisionData(testFS(), "levels/test.tmx")
	require.NoError(t, err)

	require.Len(t, data.Columns, 3)
	// Bottom row of the file is row 0.
	assert.Equal(t, []string{"ground", ""}, data.Columns[0])
	assert.Equal(t, []string{"one_way", "slope_15_8"}, data.Columns[1])
	assert.Equal(t, []string{"ground", "slope_0_15"}, data.Columns[2])
	assert.Equal(t, 16.0, data.TileWidth)
	assert.Equal(t, 48.0, data.Width())
	assert.Equal(t, 32.0, data.Height())
}

func TestLoadCollisionDataObjects(t *testing.T) {
	data, err := LoadCollisionData(testFS(), "levels/test.tmx")
	require.NoError(t, err)

	require.Len(t, data.SpawnPoints, 2)
	assert.Equal(t, SpawnPoint{X: 8, Y: 24, Index: 0}, data.SpawnPoints[0])
	assert.Equal(t, SpawnPoint{X: 40, Y: 24, Index: 1}, data.SpawnPoints[1])

	require.Len(t, data.Movers, 1)
	assert.Equal(t, MoverPath{X: 0, Y: 28, W: 16, H: 4, Distance: 32, Seconds: 2}, data.Movers[0])
}

func TestLoadCollisionDataErrors(t *testing.T) {
	_, err := LoadCollisionData(testFS(), "levels/missing.tmx")
	assert.Error(t, err)

	_, _, err = LoadAllLevels(fstest.MapFS{}, "levels")
	assert.Error(t, err)
}

func TestLoadAllLevels(t *testing.T) {
	fsys := testFS()
	fsys["levels/b.tmx"] = &fstest.MapFile{Data: []byte(testLevel)}

	levels, names, err := LoadAllLevels(fsys, "levels")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "test"}, names)
	assert.Len(t, levels, 2)
}

func TestParseRows(t *testing.T) {
	data, err := ParseRows([]string{
		"..=.",
		"./##",
		"####",
	}, DefaultLegend, 16, 8)
	require.NoError(t, err)

	require.Len(t, data.Columns, 4)
	assert.Equal(t, []string{"ground", "", ""}, data.Columns[0])
	assert.Equal(t, []string{"ground", "slope_15_0", ""}, data.Columns[1])
	assert.Equal(t, []string{"ground", "ground", "one_way"}, data.Columns[2])
	assert.Equal(t, 64.0, data.Width())
	assert.Equal(t, 24.0, data.Height())
}

func TestParseRowsErrors(t *testing.T) {
	_, err := ParseRows(nil, DefaultLegend, 16, 16)
	assert.Error(t, err)

	_, err = ParseRows([]string{"##", "#"}, DefaultLegend, 16, 16)
	assert.ErrorContains(t, err, "row 1")

	_, err = ParseRows([]string{"#?"}, DefaultLegend, 16, 16)
	assert.ErrorContains(t, err, "unknown tile")
}
