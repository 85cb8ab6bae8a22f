// Package game implements the no-limit betting and pot engine.
//
// The main type is Engine, which owns the roster, the deck and the pots for a
// whole match. A caller drives it one hand at a time:
//
//	e, _ := game.NewEngine(setup, game.Hooks{}, rng, logger)
//	e.StartHand()
//	e.PostBlinds()
//	e.DealHoleCards(2)
//	seat := e.FirstToAct(true)
//	e.InitBettingRound()
//	for {
//	    moves, min, _ := e.LegalMoves(seat, true)
//	    // choose a move ...
//	    e.ApplyMove(seat, game.Call, 0)
//	    if e.RoundOver() {
//	        break
//	    }
//	    seat = e.NextSeat(seat, true)
//	}
//	e.SettleStreet()
//
// # Seats and pots
//
// Seat 0 is always the dealer. Each pot keeps a contender list parallel to the
// roster; a folded or drained seat becomes a nil slot instead of being removed,
// so a seat index means the same player in every pot for the whole hand.
//
// # Deterministic Testing
//
// NewEngine takes a *rand.Rand for the first dealer and the deck shuffles.
// Pass randutil.New(seed) to make a match reproducible.
package game
