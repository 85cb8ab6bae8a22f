package game

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-cli/internal/randutil"
)

var boardStreets = []int{3, 1, 1}

// playRandomHand drives one hand with uniformly random legal moves, checking
// chip conservation after every step.
func playRandomHand(t *testing.T, e *Engine, rng *rand.Rand) {
	t.Helper()

	e.StartHand()
	e.PostBlinds()
	_, err := e.DealHoleCards(2)
	require.NoError(t, err)
	requireConserved(t, e)

	for street := 0; street <= len(boardStreets); street++ {
		preflop := street == 0
		if !preflop {
			_, err := e.FlipBoardCards(boardStreets[street-1])
			require.NoError(t, err)
		}

		if e.BettingOpen(preflop) {
			seat := e.FirstToAct(preflop)
			e.InitBettingRound()
			for turns := 0; ; turns++ {
				require.Less(t, turns, 500, "betting round does not terminate")

				moves, minimum, err := e.LegalMoves(seat, preflop)
				require.NoError(t, err)
				if len(moves) == 0 {
					require.NoError(t, e.SkipSeat(seat))
				} else {
					move := moves[rng.IntN(len(moves))]
					amount := 0
					if move.TakesAmount() {
						p := e.Players()[seat]
						lo, hi := max(minimum, e.MaxAction()+1), p.Chips()
						if lo >= hi {
							amount = hi
						} else {
							amount = lo + rng.IntN(hi-lo+1)
						}
					}
					_, err := e.ApplyMove(seat, move, amount)
					require.NoError(t, err)
				}
				requireConserved(t, e)

				if e.RoundOver() {
					break
				}
				seat = e.NextSeat(seat, true)
				require.GreaterOrEqual(t, seat, 0)
			}
		}

		require.NoError(t, e.SettleStreet())
		if e.HandOver() {
			break
		}
	}

	for pot := range e.Pots() {
		if e.HandOver() {
			_, err = e.AwardFold(pot)
		} else {
			_, err = e.ResolveShowdown(pot)
		}
		require.NoError(t, err)
	}

	for _, pot := range e.Pots() {
		require.Zero(t, pot.Amount)
	}
	requireConserved(t, e)
}

func TestRandomMatchesConserveChips(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		e := newTestEngine(t, withSeed(seed), withPlayers(2+int(seed)%5), withBigBlind(10))
		rng := randutil.New(seed * 7919)

		hands := 0
		for e.MatchWinner() == nil && hands < 400 {
			playRandomHand(t, e, rng)
			e.EliminateBusted()
			e.RotateDealer()
			hands++
			if hands%15 == 0 && !e.BlindsMaxedOut() {
				e.RaiseBlinds()
			}
		}

		if w := e.MatchWinner(); w != nil {
			require.Equal(t, e.TotalChips(), w.Stack, "seed %d", seed)
		}
	}
}
