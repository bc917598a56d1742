package engine

import (
	mathrand "math/rand"
	"testing"

	"github.com/lazharichir/holdem/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeHanded(t *testing.T) *GameState {
	t.Helper()
	g, err := StartHand(HandConfig{
		HandID: "hand-1",
		Players: []SeatConfig{
			{PlayerID: "p0", Seat: 0, Stack: 1000},
			{PlayerID: "p1", Seat: 1, Stack: 1000},
			{PlayerID: "p2", Seat: 2, Stack: 1000},
		},
		DealerSeat: 0,
		SmallBlind: 10,
		BigBlind:   20,
		Entropy:    mathrand.New(mathrand.NewSource(1)),
	})
	require.NoError(t, err)
	return g
}

func TestStartHand_BlindsPostedAndUnderTheGunActsFirst(t *testing.T) {
	g := threeHanded(t)

	assert.Equal(t, PhasePreflop, g.Phase)
	assert.Equal(t, 10, g.PlayerByID("p1").CurrentBet)
	assert.Equal(t, 20, g.PlayerByID("p2").CurrentBet)
	assert.Equal(t, 20, g.CurrentBet)
	assert.Equal(t, 20, g.LastRaiseAmount)
	assert.True(t, g.BigBlindOption)
	assert.Equal(t, "p0", g.CurrentPlayer().ID)

	for _, p := range g.Players {
		assert.Len(t, p.HoleCards, 2)
	}
	assert.Equal(t, 52-6, g.Deck.Len())
}

func TestApplyAction_OutOfTurnAndUnknownPlayer(t *testing.T) {
	g := threeHanded(t)

	err := g.ApplyAction("p1", Action{Type: ActionFold})
	assert.ErrorIs(t, err, ErrNotYourTurn)

	var illegal *IllegalActionError
	err = g.ApplyAction("ghost", Action{Type: ActionFold})
	assert.ErrorAs(t, err, &illegal)
}

func TestApplyAction_IllegalActionLeavesStateUntouched(t *testing.T) {
	g := threeHanded(t)
	p0 := g.PlayerByID("p0")

	var illegal *IllegalActionError
	err := g.ApplyAction("p0", Action{Type: ActionCheck})
	require.ErrorAs(t, err, &illegal)

	assert.Equal(t, 0, p0.CurrentBet)
	assert.Equal(t, 1000, p0.Stack)
	assert.False(t, p0.ActedInRound)
	assert.Equal(t, "p0", g.CurrentPlayer().ID)
}

func TestBigBlindOption_RoundStaysOpenUntilBigBlindActs(t *testing.T) {
	g := threeHanded(t)

	require.NoError(t, g.ApplyAction("p0", Action{Type: ActionCall}))
	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionCall}))

	// Everyone has matched but the big blind still has the option.
	assert.Equal(t, PhasePreflop, g.Phase)
	assert.Equal(t, "p2", g.CurrentPlayer().ID)

	require.NoError(t, g.ApplyAction("p2", Action{Type: ActionCheck}))
	assert.Equal(t, PhaseFlop, g.Phase)
	assert.Len(t, g.Community, 3)
	assert.Equal(t, "p1", g.CurrentPlayer().ID, "first to act postflop sits left of the dealer")
	assert.Equal(t, 0, g.CurrentBet)
}

func TestRaise_BelowMinimumIsIllegal(t *testing.T) {
	g := threeHanded(t)

	var illegal *IllegalActionError
	err := g.ApplyAction("p0", Action{Type: ActionRaise, Amount: 30})
	require.ErrorAs(t, err, &illegal)

	require.NoError(t, g.ApplyAction("p0", Action{Type: ActionRaise, Amount: 40}))
	assert.Equal(t, 40, g.CurrentBet)
	assert.Equal(t, 20, g.LastRaiseAmount)
	assert.Equal(t, "p0", g.LastAggressorID)
}

func TestRaise_MinimumTracksLastFullRaise(t *testing.T) {
	g := threeHanded(t)

	require.NoError(t, g.ApplyAction("p0", Action{Type: ActionRaise, Amount: 40}))
	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionRaise, Amount: 100}))
	assert.Equal(t, 60, g.LastRaiseAmount)

	// The next raise must reach 100 + 60.
	var illegal *IllegalActionError
	err := g.ApplyAction("p2", Action{Type: ActionRaise, Amount: 150})
	require.ErrorAs(t, err, &illegal)
	require.NoError(t, g.ApplyAction("p2", Action{Type: ActionRaise, Amount: 160}))
}

func flopGame(stacks map[string]int) *GameState {
	players := []*Player{
		{ID: "p0", Seat: 0, Stack: stacks["p0"], TotalBet: 20, HoleCards: cards.MustStack("Ah Kh")},
		{ID: "p1", Seat: 1, Stack: stacks["p1"], TotalBet: 20, HoleCards: cards.MustStack("Qd Qc")},
		{ID: "p2", Seat: 2, Stack: stacks["p2"], TotalBet: 20, HoleCards: cards.MustStack("7s 2d")},
	}
	g := &GameState{
		ID:                "hand-flop",
		Phase:             PhaseFlop,
		Version:           stateSchemaVersion,
		Players:           players,
		DealerSeat:        0,
		SmallBlindSeat:    1,
		BigBlindSeat:      2,
		SmallBlind:        10,
		BigBlind:          20,
		Deck:              cards.NewDeckFrom(cards.MustStack("2c 9h 3d 8s 4c 5h 6d")...),
		Community:         cards.MustStack("Th 9s 2h"),
		LastRaiseComplete: true,
		CurrentIndex:      1,
	}
	return g
}

func TestAllIn_IncompleteRaiseDoesNotReopenBetting(t *testing.T) {
	g := flopGame(map[string]int{"p0": 1000, "p1": 1000, "p2": 150})

	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionBet, Amount: 100}))
	assert.Equal(t, 100, g.LastRaiseAmount)

	// p2 shoves for 150, only 50 more: short of a full raise.
	require.NoError(t, g.ApplyAction("p2", Action{Type: ActionAllIn}))
	assert.Equal(t, 150, g.CurrentBet)
	assert.Equal(t, 100, g.LastRaiseAmount, "incomplete raise keeps the old baseline")
	assert.False(t, g.LastRaiseComplete)

	// p0 has not acted yet, so p0 may still raise. It calls instead.
	require.NoError(t, g.ApplyAction("p0", Action{Type: ActionCall}))

	// p1 already acted against the original bet and may not raise again.
	var illegal *IllegalActionError
	err := g.ApplyAction("p1", Action{Type: ActionRaise, Amount: 300})
	require.ErrorAs(t, err, &illegal)
	err = g.ApplyAction("p1", Action{Type: ActionAllIn})
	require.ErrorAs(t, err, &illegal)

	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionCall}))
	assert.Equal(t, PhaseTurn, g.Phase)
	assert.Len(t, g.Community, 4)
	assert.True(t, g.LastRaiseComplete, "new street resets raise rights")
	assert.Equal(t, "p1", g.CurrentPlayer().ID)
}

func TestAllIn_CompleteRaiseReopensBetting(t *testing.T) {
	g := flopGame(map[string]int{"p0": 1000, "p1": 1000, "p2": 250})

	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionBet, Amount: 100}))

	// p2 shoves for 250, a full raise of 150 on top.
	require.NoError(t, g.ApplyAction("p2", Action{Type: ActionAllIn}))
	assert.Equal(t, 250, g.CurrentBet)
	assert.Equal(t, 150, g.LastRaiseAmount)
	assert.True(t, g.LastRaiseComplete)

	require.NoError(t, g.ApplyAction("p0", Action{Type: ActionCall}))

	// p1 may now reraise: the shove was a complete raise.
	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionRaise, Amount: 400}))
	assert.Equal(t, 400, g.CurrentBet)
}

func TestAllIn_CallForLessDoesNotRaise(t *testing.T) {
	g := flopGame(map[string]int{"p0": 1000, "p1": 1000, "p2": 60})

	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionBet, Amount: 100}))
	require.NoError(t, g.ApplyAction("p2", Action{Type: ActionAllIn}))

	assert.Equal(t, 100, g.CurrentBet, "short call does not change the bet to match")
	assert.True(t, g.PlayerByID("p2").AllIn)
	assert.Equal(t, 60, g.PlayerByID("p2").CurrentBet)
}

func TestBet_OpeningBelowBigBlindIsIllegal(t *testing.T) {
	g := flopGame(map[string]int{"p0": 1000, "p1": 1000, "p2": 1000})

	var illegal *IllegalActionError
	err := g.ApplyAction("p1", Action{Type: ActionBet, Amount: 5})
	require.ErrorAs(t, err, &illegal)

	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionBet, Amount: 20}))
}

func TestApplyAction_AllInShowdownRunsOutBoard(t *testing.T) {
	g, err := StartHand(HandConfig{
		Players: []SeatConfig{
			{PlayerID: "hero", Seat: 0, Stack: 400},
			{PlayerID: "villain", Seat: 1, Stack: 400},
		},
		DealerSeat: 0,
		SmallBlind: 10,
		BigBlind:   20,
		Entropy:    mathrand.New(mathrand.NewSource(7)),
	})
	require.NoError(t, err)

	require.NoError(t, g.ApplyAction("hero", Action{Type: ActionAllIn}))
	require.NoError(t, g.ApplyAction("villain", Action{Type: ActionCall}))

	assert.Equal(t, PhaseShowdown, g.Phase)
	assert.Len(t, g.Community, 5)
	require.NotEmpty(t, g.Winners)
	for _, w := range g.Winners {
		assert.NotNil(t, w.Hand, "contested showdown reveals hands")
	}

	total := 0
	for _, p := range g.Players {
		total += p.Stack
	}
	assert.Equal(t, 800, total, "chips are conserved")
}

func TestApplyAction_AfterShowdownReturnsHandEnded(t *testing.T) {
	g := threeHanded(t)

	require.NoError(t, g.ApplyAction("p0", Action{Type: ActionFold}))
	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionFold}))

	assert.True(t, g.HandComplete())
	err := g.ApplyAction("p2", Action{Type: ActionCheck})
	assert.ErrorIs(t, err, ErrHandEnded)
}
