package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameState_RoundTripPreservesBettingState(t *testing.T) {
	g := threeHanded(t)
	require.NoError(t, g.ApplyAction("p0", Action{Type: ActionRaise, Amount: 40}))
	require.NoError(t, g.ApplyAction("p1", Action{Type: ActionCall}))

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var restored GameState
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, g.ID, restored.ID)
	assert.Equal(t, g.Phase, restored.Phase)
	assert.Equal(t, g.CurrentBet, restored.CurrentBet)
	assert.Equal(t, g.LastRaiseAmount, restored.LastRaiseAmount)
	assert.Equal(t, g.LastAggressorID, restored.LastAggressorID)
	assert.Equal(t, g.LastRaiseComplete, restored.LastRaiseComplete)
	assert.Equal(t, g.BigBlindOption, restored.BigBlindOption)
	assert.Equal(t, g.CurrentIndex, restored.CurrentIndex)
	assert.Equal(t, g.Deck.Remaining(), restored.Deck.Remaining())

	for i, p := range g.Players {
		assert.Equal(t, p.HoleCards, restored.Players[i].HoleCards)
		assert.Equal(t, p.Stack, restored.Players[i].Stack)
		assert.Equal(t, p.CurrentBet, restored.Players[i].CurrentBet)
		assert.Equal(t, p.TotalBet, restored.Players[i].TotalBet)
		assert.Equal(t, p.ActedInRound, restored.Players[i].ActedInRound)
	}
}

func TestGameState_RestoredStateContinuesPlaying(t *testing.T) {
	g := threeHanded(t)
	require.NoError(t, g.ApplyAction("p0", Action{Type: ActionRaise, Amount: 40}))

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var restored GameState
	require.NoError(t, json.Unmarshal(data, &restored))

	require.NoError(t, restored.ApplyAction("p1", Action{Type: ActionCall}))
	require.NoError(t, restored.ApplyAction("p2", Action{Type: ActionCall}))
	assert.Equal(t, PhaseFlop, restored.Phase)
	assert.Len(t, restored.Community, 3)
}

func TestGameState_RejectsUnknownSchemaVersion(t *testing.T) {
	g := threeHanded(t)
	data, err := json.Marshal(g)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	raw["v"] = json.RawMessage("99")
	tampered, err := json.Marshal(raw)
	require.NoError(t, err)

	var restored GameState
	err = json.Unmarshal(tampered, &restored)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}
