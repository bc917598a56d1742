package engine

import (
	"crypto/rand"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/hands"
)

// SeatConfig describes one player entering a hand.
type SeatConfig struct {
	PlayerID     string
	Seat         int
	Stack        int
	SittingOut   bool
	Disconnected bool
}

// HandConfig carries everything needed to start a hand. Entropy drives the
// shuffle and defaults to crypto/rand.Reader; tests pass a seeded source for
// deterministic decks.
type HandConfig struct {
	HandID     string
	Players    []SeatConfig
	DealerSeat int
	SmallBlind int
	BigBlind   int
	Entropy    io.Reader
}

// StartHand validates the configuration, shuffles a fresh deck, posts the
// blinds and deals hole cards. The returned state is ready for the first
// preflop action. Heads-up, the dealer posts the small blind and acts first
// preflop.
func StartHand(cfg HandConfig) (*GameState, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	entropy := cfg.Entropy
	if entropy == nil {
		entropy = rand.Reader
	}
	deck, err := cards.NewShuffledDeck52(entropy)
	if err != nil {
		return nil, err
	}

	handID := cfg.HandID
	if handID == "" {
		handID = uuid.NewString()
	}

	g := &GameState{
		ID:                handID,
		Phase:             PhasePreflop,
		Version:           stateSchemaVersion,
		DealerSeat:        cfg.DealerSeat,
		SmallBlind:        cfg.SmallBlind,
		BigBlind:          cfg.BigBlind,
		Deck:              deck,
		LastRaiseComplete: true,
		StartedAt:         time.Now(),
	}
	for _, seat := range sortedBySeat(cfg.Players) {
		g.Players = append(g.Players, &Player{
			ID:           seat.PlayerID,
			Seat:         seat.Seat,
			Stack:        seat.Stack,
			SittingOut:   seat.SittingOut,
			Disconnected: seat.Disconnected,
		})
	}

	dealerIdx := g.indexOfSeat(g.DealerSeat)

	// Blind positions. Heads-up the dealer is the small blind.
	var sbIdx int
	if g.countUnfolded() == 2 {
		sbIdx = g.nextActableFrom(dealerIdx)
	} else {
		sbIdx = g.nextActableFrom(g.nextIndex(dealerIdx))
	}
	bbIdx := g.nextActableFrom(g.nextIndex(sbIdx))

	g.SmallBlindSeat = g.Players[sbIdx].Seat
	g.BigBlindSeat = g.Players[bbIdx].Seat

	g.postBlind(g.Players[sbIdx], g.SmallBlind, "post_small_blind")
	g.postBlind(g.Players[bbIdx], g.BigBlind, "post_big_blind")

	// The blinds set the preflop baseline even when a blind is short.
	g.CurrentBet = g.BigBlind
	g.LastRaiseAmount = g.BigBlind
	g.BigBlindOption = true

	if err := g.dealHoleCards(dealerIdx); err != nil {
		return nil, err
	}

	if g.roundClosed() {
		if err := g.advancePhase(); err != nil {
			return nil, err
		}
		return g, nil
	}

	g.CurrentIndex = g.nextActableFrom(g.nextIndex(bbIdx))
	g.TurnStartedAt = time.Now()
	return g, nil
}

func validateConfig(cfg HandConfig) error {
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= 0 {
		return errIllegal("blinds must be positive")
	}
	if cfg.SmallBlind > cfg.BigBlind {
		return errIllegal("small blind cannot exceed big blind")
	}

	seats := make(map[int]bool)
	ids := make(map[string]bool)
	active := 0
	dealerFound := false
	for _, seat := range cfg.Players {
		if seat.PlayerID == "" {
			return errIllegal("player id must not be empty")
		}
		if ids[seat.PlayerID] {
			return errIllegal("duplicate player id " + seat.PlayerID)
		}
		ids[seat.PlayerID] = true
		if seats[seat.Seat] {
			return errIllegal(fmt.Sprintf("duplicate seat %d", seat.Seat))
		}
		seats[seat.Seat] = true
		if seat.Seat == cfg.DealerSeat {
			dealerFound = true
		}
		if seat.SittingOut {
			continue
		}
		if seat.Stack <= 0 {
			return errIllegal("player " + seat.PlayerID + " has no chips")
		}
		active++
	}
	if active < 2 {
		return errIllegal("need at least two players with chips")
	}
	if !dealerFound {
		return errIllegal(fmt.Sprintf("dealer seat %d is not occupied", cfg.DealerSeat))
	}
	return nil
}

func sortedBySeat(players []SeatConfig) []SeatConfig {
	sorted := append([]SeatConfig{}, players...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Seat < sorted[j].Seat })
	return sorted
}

// postBlind commits a forced blind, capped at the player's stack.
func (g *GameState) postBlind(p *Player, amount int, kind string) {
	if amount > p.Stack {
		amount = p.Stack
	}
	g.commitChips(p, amount)
	g.log(kind, p.ID, amount)
}

// dealHoleCards deals two cards to every dealt-in player, one at a time,
// starting left of the dealer.
func (g *GameState) dealHoleCards(dealerIdx int) error {
	for round := 0; round < 2; round++ {
		for i := 1; i <= len(g.Players); i++ {
			p := g.Players[(dealerIdx+i)%len(g.Players)]
			if p.SittingOut {
				continue
			}
			card, err := g.Deck.Draw()
			if err != nil {
				return err
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}
	g.log("deal_hole_cards", "", 0)
	return nil
}

// finishUncontested awards everything to the last player standing without
// revealing any cards.
func (g *GameState) finishUncontested() {
	g.Pots = ComputePots(g.Players)
	g.settle(SettlePots(g.Pots, nil, g.seatOrderFromDealer()))
}

// resolveShowdown evaluates every contesting hand and distributes the pots.
func (g *GameState) resolveShowdown() error {
	g.Pots = ComputePots(g.Players)

	evaluations := make(map[string]hands.Evaluation)
	for _, p := range g.Players {
		if p.Folded || p.SittingOut {
			continue
		}
		cardSet := append(append(cards.Stack{}, p.HoleCards...), g.Community...)
		eval, err := hands.Evaluate(cardSet)
		if err != nil {
			return fmt.Errorf("evaluating hand for %s: %w", p.ID, err)
		}
		evaluations[p.ID] = eval
	}

	g.settle(SettlePots(g.Pots, evaluations, g.seatOrderFromDealer()))
	return nil
}

// settle credits the winners and closes the hand.
func (g *GameState) settle(winners []HandWinner) {
	for _, w := range winners {
		if p := g.PlayerByID(w.PlayerID); p != nil {
			p.Stack += w.Amount
		}
		g.log("win_pot", w.PlayerID, w.Amount)
	}
	g.Winners = winners
	g.Phase = PhaseShowdown
	g.CurrentIndex = -1
	g.log("hand_complete", "", 0)
}
