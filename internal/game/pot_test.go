package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidePotEligibility(t *testing.T) {
	e := newTestEngine(t, withStacks(10, 50, 50))
	startPostflop(t, e)

	apply(t, e, 1, Bet, 50)
	apply(t, e, 2, Call, 0)
	assert.Equal(t, 10, apply(t, e, 0, Call, 0))
	require.True(t, e.RoundOver())
	require.NoError(t, e.SettleStreet())

	pots := e.Pots()
	require.Len(t, pots, 2)
	assert.Equal(t, Pot{Amount: 30, Contenders: []int{0, 1, 2}}, pots[0])
	assert.Equal(t, Pot{Amount: 80, Contenders: []int{1, 2}}, pots[1])
	assert.False(t, e.HandOver())

	// Seat 0 has the best hand but can only win the main pot
	setCards(e, "2c3d8h9sKc", "KsKd", "AsAh", "QsQh")

	main, err := e.ResolveShowdown(0)
	require.NoError(t, err)
	assert.Equal(t, 30, main.Amount)
	assert.Equal(t, []int{0}, main.Winners)
	require.Len(t, main.Ranked, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{main.Ranked[0].Seat, main.Ranked[1].Seat, main.Ranked[2].Seat})

	side, err := e.ResolveShowdown(1)
	require.NoError(t, err)
	assert.Equal(t, 80, side.Amount)
	assert.Equal(t, []int{1}, side.Winners)
	assert.Equal(t, []Payout{{Seat: 1, Player: e.Players()[1], Amount: 80}}, side.Payouts)

	assert.Equal(t, []int{30, 80, 0}, stacks(e))
	requireConserved(t, e)
}

func TestSidePotOpenedForLaterStreets(t *testing.T) {
	e := newTestEngine(t, withStacks(100, 100, 20))
	startPostflop(t, e)

	apply(t, e, 1, Bet, 20)
	apply(t, e, 2, Call, 0)
	apply(t, e, 0, Call, 0)
	require.NoError(t, e.SettleStreet())

	pots := e.Pots()
	require.Len(t, pots, 2)
	assert.Equal(t, 60, pots[0].Amount)
	assert.Equal(t, []int{0, 1, 2}, pots[0].Contenders)
	assert.Equal(t, 0, pots[1].Amount)
	assert.Equal(t, []int{0, 1}, pots[1].Contenders)

	_, err := e.FlipBoardCards(1)
	require.NoError(t, err)
	e.InitBettingRound()
	assert.Equal(t, 1, e.FirstToAct(false))

	apply(t, e, 1, Bet, 30)
	apply(t, e, 0, Call, 0)
	require.NoError(t, e.SettleStreet())
	assert.Equal(t, 60, e.Pots()[0].Amount)
	assert.Equal(t, 60, e.Pots()[1].Amount)
}

func TestUncalledExcessGoesToOwnPot(t *testing.T) {
	e := newTestEngine(t, withStacks(100, 100, 40))
	startPostflop(t, e)

	apply(t, e, 1, Bet, 100)
	apply(t, e, 2, Call, 0)
	apply(t, e, 0, Fold, 0)
	require.NoError(t, e.SettleStreet())

	pots := e.Pots()
	require.Len(t, pots, 2)
	assert.Equal(t, Pot{Amount: 80, Contenders: []int{1, 2}}, pots[0])
	assert.Equal(t, Pot{Amount: 60, Contenders: []int{1}}, pots[1])
}

func TestFoldCascade(t *testing.T) {
	e := newTestEngine(t, withStacks(10, 100, 100))
	startPostflop(t, e)

	apply(t, e, 1, Bet, 20)
	apply(t, e, 2, Call, 0)
	apply(t, e, 0, Call, 0)
	require.NoError(t, e.SettleStreet())
	require.Equal(t, []int{30, 20}, []int{e.Pots()[0].Amount, e.Pots()[1].Amount})

	_, err := e.FlipBoardCards(1)
	require.NoError(t, err)
	e.InitBettingRound()

	apply(t, e, 1, Bet, 10)
	apply(t, e, 2, Fold, 0)
	assert.True(t, e.RoundOver())
	require.NoError(t, e.SettleStreet())

	pots := e.Pots()
	require.Len(t, pots, 2)
	assert.Equal(t, Pot{Amount: 30, Contenders: []int{0, 1}}, pots[0], "folded chips stay in the closed pot")
	assert.Equal(t, Pot{Amount: 30, Contenders: []int{1}}, pots[1])
	requireConserved(t, e)
}

func TestFoldedActionSweptToPot(t *testing.T) {
	e := newTestEngine(t, withStacks(100, 100, 100), withBigBlind(10))
	e.StartHand()
	e.PostBlinds()
	_, err := e.DealHoleCards(2)
	require.NoError(t, err)
	e.InitBettingRound()

	apply(t, e, 0, Fold, 0)
	apply(t, e, 1, Fold, 0)
	assert.True(t, e.RoundOver())
	require.NoError(t, e.SettleStreet())

	assert.Equal(t, 15, e.Pots()[0].Amount)
	assert.Zero(t, e.PendingAction())
	require.True(t, e.HandOver())

	payouts, err := e.AwardFold(0)
	require.NoError(t, err)
	assert.Equal(t, []Payout{{Seat: 2, Player: e.Players()[2], Amount: 15}}, payouts)
	assert.Equal(t, []int{100, 95, 105}, stacks(e))
	requireConserved(t, e)
}

func TestSplitPotRemainder(t *testing.T) {
	setup := func(t *testing.T) *Engine {
		e := newTestEngine(t, withStacks(100, 100, 100))
		e.StartHand()
		e.players[0].Stack = 90
		e.players[1].Stack = 90
		e.players[2].Stack = 89
		e.pots = []int{31}
		requireConserved(t, e)
		return e
	}

	t.Run("three way", func(t *testing.T) {
		e := setup(t)
		setCards(e, "TsJdQhKcAd", "2c3c", "2d3d", "2h3h")

		sd, err := e.ResolveShowdown(0)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, sd.Winners)
		assert.Equal(t, []int{1, 2, 0}, []int{sd.Payouts[0].Seat, sd.Payouts[1].Seat, sd.Payouts[2].Seat})
		assert.Equal(t, []int{100, 101, 99}, stacks(e), "odd chip to the first seat left of the dealer")
		requireConserved(t, e)
	})

	t.Run("two way", func(t *testing.T) {
		e := setup(t)
		setCards(e, "2c7d9hJsKd", "AsAh", "3c4c", "AdAc")

		sd, err := e.ResolveShowdown(0)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{0, 2}, sd.Winners)
		assert.Equal(t, []int{105, 90, 105}, stacks(e))
		assert.Equal(t, 16, sd.Payouts[0].Amount)
		assert.Equal(t, 2, sd.Payouts[0].Seat)
	})
}

func TestResolveShowdownErrors(t *testing.T) {
	e := newTestEngine(t)
	e.StartHand()

	_, err := e.ResolveShowdown(3)
	assert.ErrorIs(t, err, ErrInvalidPot)
	_, err = e.AwardFold(-1)
	assert.ErrorIs(t, err, ErrInvalidPot)
}

func TestConservationViolationDetected(t *testing.T) {
	e := newTestEngine(t)
	startPostflop(t, e)
	e.players[0].Stack += 5

	err := e.SettleStreet()
	assert.ErrorIs(t, err, ErrChipsNotConserved)
}
