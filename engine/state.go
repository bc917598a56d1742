package engine

import (
	"time"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/hands"
)

// Phase represents the current street of a hand
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePreflop  Phase = "preflop"
	PhaseFlop     Phase = "flop"
	PhaseTurn     Phase = "turn"
	PhaseRiver    Phase = "river"
	PhaseShowdown Phase = "showdown"
)

// ActionType identifies a player action
type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionBet   ActionType = "bet"
	ActionRaise ActionType = "raise"
	ActionAllIn ActionType = "all_in"
)

// Action is a player decision. Amount is the total the player wants committed
// for the current street and is only meaningful for bet and raise.
type Action struct {
	Type   ActionType `json:"type"`
	Amount int        `json:"amount,omitempty"`
}

// Player holds per-player hand state. Players keep their seat for the whole
// hand; Folded never reverts once set.
type Player struct {
	ID           string      `json:"id"`
	Seat         int         `json:"seat"`
	Stack        int         `json:"stack"`
	HoleCards    cards.Stack `json:"holeCards"`
	CurrentBet   int         `json:"currentBet"`   // chips committed this street
	TotalBet     int         `json:"totalBet"`     // chips committed this hand
	Folded       bool        `json:"folded"`
	AllIn        bool        `json:"allIn"`
	SittingOut   bool        `json:"sittingOut"`
	Disconnected bool        `json:"disconnected"`
	ActedInRound bool        `json:"actedInRound"` // acted since street start or last complete raise
}

// CanAct reports whether the player may still take betting actions.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && !p.SittingOut
}

// Pot is one layer of the pot with the players who may win it.
type Pot struct {
	Amount            int      `json:"amount"`
	EligiblePlayerIDs []string `json:"eligiblePlayerIds"`
}

// HandWinner records one award from one pot. A nil Hand means the pot was
// uncontested, so no cards were revealed.
type HandWinner struct {
	PlayerID string            `json:"playerId"`
	PotIndex int               `json:"potIndex"`
	Amount   int               `json:"amount"`
	Hand     *hands.Evaluation `json:"hand,omitempty"`
}

// LogEntry is one line of the append-only action log.
type LogEntry struct {
	Phase    Phase     `json:"phase"`
	PlayerID string    `json:"playerId,omitempty"`
	Kind     string    `json:"kind"`
	Amount   int       `json:"amount,omitempty"`
	At       time.Time `json:"at"`
}

// GameState is the aggregate root for one hand in progress. It is created by
// StartHand and mutated only through ApplyAction.
type GameState struct {
	ID      string `json:"id"`
	Phase   Phase  `json:"phase"`
	Version int    `json:"v"`

	Players    []*Player `json:"players"` // fixed seat order
	DealerSeat int       `json:"dealerSeat"`
	SmallBlind int       `json:"smallBlind"`
	BigBlind   int       `json:"bigBlind"`

	SmallBlindSeat int `json:"smallBlindSeat"`
	BigBlindSeat   int `json:"bigBlindSeat"`

	Deck      *cards.Deck `json:"deck"`
	Community cards.Stack `json:"community"`
	Pots      []Pot       `json:"pots"` // materialized at settlement

	CurrentBet        int    `json:"currentBet"`
	LastRaiseAmount   int    `json:"lastRaiseAmount"`
	LastAggressorID   string `json:"lastAggressorId"`
	LastRaiseComplete bool   `json:"lastRaiseComplete"`
	BigBlindOption    bool   `json:"bigBlindOption"`
	CurrentIndex      int    `json:"currentIndex"` // index into Players of the actor

	ActionLog     []LogEntry `json:"actionLog"`
	StartedAt     time.Time  `json:"startedAt"`
	TurnStartedAt time.Time  `json:"turnStartedAt"`

	Winners []HandWinner `json:"winners,omitempty"`
}

// HandComplete reports whether the hand has been settled.
func (g *GameState) HandComplete() bool {
	return g.Phase == PhaseShowdown
}

// CurrentPlayer returns the player whose turn it is, or nil once the hand is
// complete.
func (g *GameState) CurrentPlayer() *Player {
	if g.HandComplete() || g.CurrentIndex < 0 || g.CurrentIndex >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentIndex]
}

// PlayerByID returns the player with the given id, or nil.
func (g *GameState) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TotalCommitted returns the sum of every player's contribution this hand.
func (g *GameState) TotalCommitted() int {
	total := 0
	for _, p := range g.Players {
		total += p.TotalBet
	}
	return total
}

// countUnfolded counts players still contesting the hand.
func (g *GameState) countUnfolded() int {
	count := 0
	for _, p := range g.Players {
		if !p.Folded && !p.SittingOut {
			count++
		}
	}
	return count
}

// countActable counts players who can still take actions this street.
func (g *GameState) countActable() int {
	count := 0
	for _, p := range g.Players {
		if p.CanAct() {
			count++
		}
	}
	return count
}

// indexOfSeat returns the index in Players of the given seat, or -1.
func (g *GameState) indexOfSeat(seat int) int {
	for i, p := range g.Players {
		if p.Seat == seat {
			return i
		}
	}
	return -1
}

// nextIndex returns the next player index clockwise after from.
func (g *GameState) nextIndex(from int) int {
	return (from + 1) % len(g.Players)
}

// nextActableFrom returns the index of the first player who can act,
// starting at from inclusive and walking clockwise. Returns -1 if none.
func (g *GameState) nextActableFrom(from int) int {
	for i := 0; i < len(g.Players); i++ {
		idx := (from + i) % len(g.Players)
		if g.Players[idx].CanAct() {
			return idx
		}
	}
	return -1
}

// seatOrderFromDealer returns player ids ordered clockwise starting left of
// the dealer. Used for deterministic odd-chip distribution.
func (g *GameState) seatOrderFromDealer() []string {
	start := g.indexOfSeat(g.DealerSeat)
	if start == -1 {
		start = 0
	}
	order := make([]string, 0, len(g.Players))
	for i := 1; i <= len(g.Players); i++ {
		order = append(order, g.Players[(start+i)%len(g.Players)].ID)
	}
	return order
}

func (g *GameState) log(kind string, playerID string, amount int) {
	g.ActionLog = append(g.ActionLog, LogEntry{
		Phase:    g.Phase,
		PlayerID: playerID,
		Kind:     kind,
		Amount:   amount,
		At:       time.Now(),
	})
}
