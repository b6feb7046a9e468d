package room

// rotateDealer applies the winner-stays-dealer rule (spec.md §4.6
// EndOfRound): if the dealer won, the next hand keeps the same seat winds,
// round number and round wind. Otherwise every seat's wind advances one
// step, the dealer marker moves to the seat that previously held North (and
// now holds East), and the round number advances — wrapping the round wind
// forward every four hands.
func (r *Room) rotateDealer(dealerWon bool) {
	if dealerWon {
		return
	}
	for _, p := range r.game.Players {
		p.Seat = p.Seat.Next()
	}
	r.dealerSeat = (r.dealerSeat + 3) % 4
	r.game.RoundNumber++
	if r.game.RoundNumber > 4 {
		r.game.RoundNumber = 1
		r.game.RoundWind = r.game.RoundWind.Next()
	}
}
