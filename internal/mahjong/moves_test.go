package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestWall builds a wall with an explicit tile order: DrawHead pops from
// the front, DrawTail pops from the back, matching Wall's real semantics.
func newTestWall(tiles []Tile) *Wall {
	return &Wall{tiles: tiles, head: 0, tail: len(tiles) - 1}
}

func freshPlayers() [4]*Player {
	return [4]*Player{
		NewPlayer("p0", "a", East),
		NewPlayer("p1", "a", South),
		NewPlayer("p2", "a", West),
		NewPlayer("p3", "a", North),
	}
}

func TestDrawPlainTile(t *testing.T) {
	gs := &GameState{Players: freshPlayers(), Wall: newTestWall(tilesOf(SuitDef(Dot, 1)))}
	ns, ok := Draw(gs, 0)
	require.True(t, ok)
	require.Len(t, ns.Players[0].Hand, 1)
	assert.Equal(t, SuitDef(Dot, 1), ns.Players[0].Hand[0].Def)
	assert.Empty(t, gs.Players[0].Hand, "input state must not be mutated")
}

func TestDrawChainsThroughBonusFromTail(t *testing.T) {
	// Head draw is a bonus; it chains to the tail for a replacement, which is
	// itself a bonus, chaining again to the next tail tile (a plain tile).
	tiles := []Tile{
		{ID: 1, Def: BonusDef(Flower, 1)}, // head: revealed first
		{ID: 2, Def: SuitDef(Bamboo, 5)},  // tail pop #2: lands in hand
		{ID: 3, Def: BonusDef(Animal, 2)}, // tail pop #1: revealed second
	}
	gs := &GameState{Players: freshPlayers(), Wall: newTestWall(tiles)}
	ns, ok := Draw(gs, 0)
	require.True(t, ok)

	require.Len(t, ns.Players[0].Hand, 1)
	assert.Equal(t, SuitDef(Bamboo, 5), ns.Players[0].Hand[0].Def)
	require.Len(t, ns.Players[0].RevealedBonuses, 2)
	assert.Equal(t, BonusDef(Flower, 1), ns.Players[0].RevealedBonuses[0].Def)
	assert.Equal(t, BonusDef(Animal, 2), ns.Players[0].RevealedBonuses[1].Def)
	assert.Equal(t, 0, ns.Wall.Remaining())
}

func TestDrawOnEmptyWallFails(t *testing.T) {
	gs := &GameState{Players: freshPlayers(), Wall: newTestWall(nil)}
	_, ok := Draw(gs, 0)
	assert.False(t, ok)
}

func TestDiscardMovesTileAndAdvancesCounter(t *testing.T) {
	players := freshPlayers()
	players[0].Hand = tilesOf(SuitDef(Dot, 1), SuitDef(Dot, 2))
	gs := &GameState{Players: players, Wall: newTestWall(nil), CurrentPlayer: 0}

	ns, ok := Discard(gs, 0, players[0].Hand[0].ID)
	require.True(t, ok)
	assert.Len(t, ns.Players[0].Hand, 1)
	assert.Len(t, ns.Players[0].Discards, 1)
	assert.True(t, ns.HasLastDiscard)
	assert.Equal(t, 0, ns.LastDiscarder)
	assert.Equal(t, gs.TurnCounter+1, ns.TurnCounter)
}

func TestDiscardRejectsOutOfTurn(t *testing.T) {
	players := freshPlayers()
	players[1].Hand = tilesOf(SuitDef(Dot, 1))
	gs := &GameState{Players: players, Wall: newTestWall(nil), CurrentPlayer: 0}
	_, ok := Discard(gs, 1, players[1].Hand[0].ID)
	assert.False(t, ok)
}

func TestApplyChiFormsRunAndAdvancesCurrentWithoutTurnOrder(t *testing.T) {
	players := freshPlayers()
	players[1].Hand = tilesOf(SuitDef(Dot, 4), SuitDef(Dot, 6))
	gs := &GameState{
		Players: players, Wall: newTestWall(nil),
		LastDiscard: Tile{ID: 99, Def: SuitDef(Dot, 5)}, LastDiscarder: 0, HasLastDiscard: true,
	}
	ns, ok := ApplyChi(gs, 1, [2]Tile{players[1].Hand[0], players[1].Hand[1]})
	require.True(t, ok)
	assert.Empty(t, ns.Players[1].Hand)
	require.Len(t, ns.Players[1].Melds, 1)
	assert.Equal(t, Chi, ns.Players[1].Melds[0].Kind)
	assert.Equal(t, 1, ns.CurrentPlayer)
	assert.False(t, ns.HasLastDiscard)
}

func TestApplyChiRejectsNonNextPlayer(t *testing.T) {
	players := freshPlayers()
	players[2].Hand = tilesOf(SuitDef(Dot, 4), SuitDef(Dot, 6))
	gs := &GameState{
		Players: players, Wall: newTestWall(nil),
		LastDiscard: Tile{ID: 99, Def: SuitDef(Dot, 5)}, LastDiscarder: 0, HasLastDiscard: true,
	}
	_, ok := ApplyChi(gs, 2, [2]Tile{players[2].Hand[0], players[2].Hand[1]})
	assert.False(t, ok)
}

func TestApplyPongRemovesDiscardFromDiscarderPile(t *testing.T) {
	players := freshPlayers()
	discard := Tile{ID: 99, Def: SuitDef(Dot, 5)}
	players[0].Discards = []Tile{discard}
	players[2].Hand = tilesOf(SuitDef(Dot, 5), SuitDef(Dot, 5))
	gs := &GameState{
		Players: players, Wall: newTestWall(nil),
		LastDiscard: discard, LastDiscarder: 0, HasLastDiscard: true,
	}
	ns, ok := ApplyPong(gs, 2, [2]Tile{players[2].Hand[0], players[2].Hand[1]})
	require.True(t, ok)
	assert.Empty(t, ns.Players[0].Discards)
	require.Len(t, ns.Players[2].Melds, 1)
	assert.Equal(t, Pong, ns.Players[2].Melds[0].Kind)
	assert.Equal(t, 2, ns.CurrentPlayer)
}

func TestApplyKongDrawsReplacement(t *testing.T) {
	players := freshPlayers()
	discard := Tile{ID: 99, Def: SuitDef(Dot, 5)}
	players[3].Hand = tilesOf(SuitDef(Dot, 5), SuitDef(Dot, 5), SuitDef(Dot, 5))
	wall := newTestWall([]Tile{{ID: 200, Def: SuitDef(Bamboo, 1)}})
	gs := &GameState{
		Players: players, Wall: wall,
		LastDiscard: discard, LastDiscarder: 0, HasLastDiscard: true,
	}
	ns, ok := ApplyKong(gs, 3, [3]Tile{players[3].Hand[0], players[3].Hand[1], players[3].Hand[2]})
	require.True(t, ok)
	require.Len(t, ns.Players[3].Melds, 1)
	assert.Equal(t, Kong, ns.Players[3].Melds[0].Kind)
	assert.Len(t, ns.Players[3].Melds[0].Tiles, 4)
	require.Len(t, ns.Players[3].Hand, 1, "kong draws a replacement tile")
	assert.Equal(t, 0, ns.Wall.Remaining())
}

func TestApplySelfKongConcealed(t *testing.T) {
	players := freshPlayers()
	players[0].Hand = tilesOf(SuitDef(Dot, 2), SuitDef(Dot, 2), SuitDef(Dot, 2), SuitDef(Dot, 2))
	wall := newTestWall([]Tile{{ID: 200, Def: SuitDef(Bamboo, 9)}})
	gs := &GameState{Players: players, Wall: wall}

	ns, ok := ApplySelfKongConcealed(gs, 0, [4]Tile{
		players[0].Hand[0], players[0].Hand[1], players[0].Hand[2], players[0].Hand[3],
	})
	require.True(t, ok)
	require.Len(t, ns.Players[0].Melds, 1)
	assert.Equal(t, ConcealedKong, ns.Players[0].Melds[0].Kind)
	assert.Equal(t, -1, ns.Players[0].Melds[0].From)
	assert.Len(t, ns.Players[0].Hand, 1, "the four kong tiles leave the hand, then a replacement arrives")
}

func TestApplySelfKongPromoteUpgradesExistingPong(t *testing.T) {
	players := freshPlayers()
	players[0].Melds = []Meld{{Kind: Pong, Tiles: tilesOf(SuitDef(Bamboo, 3), SuitDef(Bamboo, 3), SuitDef(Bamboo, 3)), From: 2}}
	players[0].Hand = tilesOf(SuitDef(Bamboo, 3))
	wall := newTestWall([]Tile{{ID: 200, Def: SuitDef(Bamboo, 9)}})
	gs := &GameState{Players: players, Wall: wall}

	ns, ok := ApplySelfKongPromote(gs, 0, players[0].Hand[0], 0)
	require.True(t, ok)
	assert.Len(t, ns.Players[0].Hand, 1, "the promoted tile leaves the hand, then a replacement arrives")
	require.Len(t, ns.Players[0].Melds[0].Tiles, 4)
	assert.Equal(t, Kong, ns.Players[0].Melds[0].Kind)
	assert.Equal(t, 2, ns.Players[0].Melds[0].From, "promote keeps the original claim source")
}

func TestAdvanceTurnWrapsAndClearsLastDiscard(t *testing.T) {
	gs := &GameState{Players: freshPlayers(), Wall: newTestWall(nil), CurrentPlayer: 3, HasLastDiscard: true}
	ns := AdvanceTurn(gs)
	assert.Equal(t, 0, ns.CurrentPlayer)
	assert.False(t, ns.HasLastDiscard)
}

func TestDealAndReplaceBonusesDealsThirteenAndFourteenWithNoLiveBonus(t *testing.T) {
	players := freshPlayers()
	// 4*13 + 1 = 53 tiles needed from the head; stock the wall with enough
	// plain tiles plus a couple of bonuses seeded early so the bonus-drain
	// loop actually exercises its replacement chain.
	var tiles []Tile
	id := 0
	next := func(d Definition) Tile {
		id++
		return Tile{ID: id, Def: d}
	}
	// First 53 head draws: mostly plain, two bonuses mixed in.
	for i := 0; i < 53; i++ {
		switch i {
		case 5:
			tiles = append(tiles, next(BonusDef(Flower, 1)))
		case 40:
			tiles = append(tiles, next(BonusDef(Animal, 3)))
		default:
			tiles = append(tiles, next(SuitDef(Dot, (i%9)+1)))
		}
	}
	// Tail replacements for the two bonuses (both plain, so the chain ends
	// immediately) — DrawTail pops from the end of the slice, so append
	// them after the head stock.
	tiles = append(tiles, next(SuitDef(Bamboo, 1)), next(SuitDef(Bamboo, 2)))

	gs := &GameState{Players: players, Wall: newTestWall(tiles)}
	ns, ok := DealAndReplaceBonuses(gs, 0)
	require.True(t, ok)

	total := 0
	for i := 0; i < 4; i++ {
		for _, tile := range ns.Players[i].Hand {
			assert.False(t, tile.Def.IsBonus(), "no live bonus tile may remain in hand")
		}
		total += len(ns.Players[i].Hand)
	}
	assert.Equal(t, 53, total)
	assert.Equal(t, 0, ns.Wall.Remaining())
}

func TestDealAndReplaceBonusesFailsOnWallExhaustion(t *testing.T) {
	gs := &GameState{Players: freshPlayers(), Wall: newTestWall(tilesOf(SuitDef(Dot, 1)))}
	_, ok := DealAndReplaceBonuses(gs, 0)
	assert.False(t, ok)
}
