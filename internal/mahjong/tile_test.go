package mahjong

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWallHas144UniqueTiles(t *testing.T) {
	w := NewWall(rand.New(rand.NewSource(1)))
	require.Equal(t, TotalTileCount, w.Remaining())

	seen := make(map[int]bool, TotalTileCount)
	counts := make(map[Definition]int)
	for {
		tile, ok := w.DrawHead()
		if !ok {
			break
		}
		assert.False(t, seen[tile.ID], "tile id %d drawn twice", tile.ID)
		seen[tile.ID] = true
		counts[tile.Def]++
	}
	assert.Len(t, seen, TotalTileCount)

	for _, entry := range allDefinitions() {
		assert.Equal(t, entry.Count, counts[entry.Def], "definition %v", entry.Def)
	}
}

func TestWallHeadAndTailShareIdentity(t *testing.T) {
	w := NewWall(rand.New(rand.NewSource(7)))
	head, ok := w.DrawHead()
	require.True(t, ok)
	tail, ok := w.DrawTail()
	require.True(t, ok)
	assert.NotEqual(t, head.ID, tail.ID)
	assert.Equal(t, TotalTileCount-2, w.Remaining())
}

func TestTileOrderGroupsBySuitThenHonorThenBonus(t *testing.T) {
	assert.Less(t, TileOrder(SuitDef(Character, 9)), TileOrder(SuitDef(Bamboo, 1)))
	assert.Less(t, TileOrder(SuitDef(Dot, 9)), TileOrder(WindDef(East)))
	assert.Less(t, TileOrder(WindDef(North)), TileOrder(DragonDef(Red)))
	assert.Less(t, TileOrder(DragonDef(White)), TileOrder(BonusDef(Flower, 1)))
	assert.Less(t, TileOrder(BonusDef(Flower, 4)), TileOrder(BonusDef(Animal, 1)))
}

func TestDefinitionPredicates(t *testing.T) {
	assert.True(t, SuitDef(Bamboo, 1).IsTerminal())
	assert.True(t, SuitDef(Bamboo, 9).IsTerminal())
	assert.False(t, SuitDef(Bamboo, 5).IsTerminal())
	assert.True(t, WindDef(East).IsHonor())
	assert.True(t, DragonDef(Red).IsHonor())
	assert.False(t, SuitDef(Dot, 3).IsHonor())
}
