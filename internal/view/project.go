package view

import "github.com/wehjee/brocs-mahjong/internal/mahjong"

// ClientTile is the wire shape of mahjong.Tile.
type ClientTile struct {
	ID    int    `json:"id"`
	Suit  string `json:"suit,omitempty"`
	Value int    `json:"value,omitempty"`
	Wind  string `json:"wind,omitempty"`
	Dragon string `json:"dragon,omitempty"`
	Bonus string `json:"bonus,omitempty"`
	Kind  string `json:"kind"`
}

func tileOf(t mahjong.Tile) ClientTile {
	ct := ClientTile{ID: t.ID}
	switch {
	case t.Def.IsSuit():
		ct.Kind = "suit"
		ct.Suit = t.Def.Suit.String()
		ct.Value = t.Def.Value
	case t.Def.IsWind():
		ct.Kind = "wind"
		ct.Wind = t.Def.Wind.String()
	case t.Def.IsDragon():
		ct.Kind = "dragon"
		ct.Dragon = t.Def.Dragon.String()
	case t.Def.IsBonus():
		ct.Kind = "bonus"
		ct.Bonus = t.Def.Bonus.String()
		ct.Value = t.Def.Value
	}
	return ct
}

func tilesOf(tiles []mahjong.Tile) []ClientTile {
	out := make([]ClientTile, len(tiles))
	for i, t := range tiles {
		out[i] = tileOf(t)
	}
	return out
}

// ClientMeld is the wire shape of mahjong.Meld.
type ClientMeld struct {
	Kind  string       `json:"kind"`
	Tiles []ClientTile `json:"tiles"`
	From  int          `json:"from"`
}

func meldsOf(melds []mahjong.Meld) []ClientMeld {
	out := make([]ClientMeld, len(melds))
	for i, m := range melds {
		out[i] = ClientMeld{Kind: m.Kind.String(), Tiles: tilesOf(m.Tiles), From: m.From}
	}
	return out
}

// ClientPlayer is one seat's projection. HandCount is always populated;
// Hand is populated only for the recipient's own seat.
type ClientPlayer struct {
	Name            string       `json:"name"`
	Avatar          string       `json:"avatar"`
	Seat            string       `json:"seat"`
	Hand            []ClientTile `json:"hand,omitempty"`
	HandCount       int          `json:"handCount"`
	Discards        []ClientTile `json:"discards"`
	Melds           []ClientMeld `json:"melds"`
	RevealedBonuses []ClientTile `json:"revealedBonuses"`
	Score           int          `json:"score"`
	Connection      string       `json:"connection"`
}

func connectionString(c mahjong.ConnectionStatus) string {
	switch c {
	case mahjong.HumanConnected:
		return "human-connected"
	case mahjong.HumanDisconnected:
		return "human-disconnected"
	case mahjong.BotOwned:
		return "bot"
	default:
		return "unknown"
	}
}

func phaseString(p mahjong.Phase) string {
	switch p {
	case mahjong.PhaseWaiting:
		return "waiting"
	case mahjong.PhasePlaying:
		return "playing"
	case mahjong.PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ClientGameState is the full per-recipient projection of a mahjong.GameState
// (spec.md §4.7): every field is identical across recipients except
// YourSeat and each seat's Hand, which is elided to a count for everyone but
// the recipient.
type ClientGameState struct {
	Players       [4]ClientPlayer `json:"players"`
	CurrentPlayer int             `json:"currentPlayer"`
	RoundWind     string          `json:"roundWind"`
	RoundNumber   int             `json:"roundNumber"`
	WallRemaining int             `json:"wallRemaining"`
	Phase         string          `json:"phase"`
	YourSeat      int             `json:"yourSeat"`
}

// Project builds the view for recipientSeat. recipientSeat may be -1 for a
// spectator-less projection used internally (no seat sees any hand).
func Project(gs *mahjong.GameState, recipientSeat int) ClientGameState {
	out := ClientGameState{
		CurrentPlayer: gs.CurrentPlayer,
		RoundWind:     gs.RoundWind.String(),
		RoundNumber:   gs.RoundNumber,
		WallRemaining: gs.Wall.Remaining(),
		Phase:         phaseString(gs.Phase),
		YourSeat:      recipientSeat,
	}
	for i, p := range gs.Players {
		if p == nil {
			continue
		}
		cp := ClientPlayer{
			Name:            p.Name,
			Avatar:          p.Avatar,
			Seat:            p.Seat.String(),
			HandCount:       len(p.Hand),
			Discards:        tilesOf(p.Discards),
			Melds:           meldsOf(p.Melds),
			RevealedBonuses: tilesOf(p.RevealedBonuses),
			Score:           p.Score,
			Connection:      connectionString(p.Connection),
		}
		if i == recipientSeat {
			cp.Hand = tilesOf(p.Hand)
		}
		out.Players[i] = cp
	}
	return out
}

// ChiOptionTiles converts the hand tiles of each ambiguous chi completion to
// their wire shape, indexed identically to the chiIndex a client replies
// with (spec.md §6 ChiOptionsMessage).
func ChiOptionTiles(options []mahjong.ChiOption) [][]ClientTile {
	out := make([][]ClientTile, len(options))
	for i, opt := range options {
		out[i] = tilesOf(opt.HandTiles[:])
	}
	return out
}

// ClientRosterEntry is one lobby seat.
type ClientRosterEntry struct {
	SeatIndex int    `json:"seatIndex"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Ready     bool   `json:"ready"`
	IsHost    bool   `json:"isHost"`
}

// ClientRoom is the lobby-phase projection (spec.md §4.6 Lobby).
type ClientRoom struct {
	Roster []ClientRosterEntry `json:"roster"`
}
