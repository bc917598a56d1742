package engine

import (
	"fmt"
	"time"
)

// ApplyAction validates and applies one player action. Validation happens
// before any mutation, so a rejected action leaves the state untouched. On
// success the turn advances, and the street or hand is closed out when the
// action ends it.
func (g *GameState) ApplyAction(playerID string, action Action) error {
	switch g.Phase {
	case PhasePreflop, PhaseFlop, PhaseTurn, PhaseRiver:
	case PhaseShowdown:
		return ErrHandEnded
	default:
		return errIllegal("no betting during phase " + string(g.Phase))
	}

	player := g.PlayerByID(playerID)
	if player == nil {
		return errIllegal("unknown player " + playerID)
	}
	current := g.CurrentPlayer()
	if current == nil || current.ID != player.ID {
		return ErrNotYourTurn
	}
	if !player.CanAct() {
		return ErrPlayerCannotAct
	}

	toCall := g.CurrentBet - player.CurrentBet

	switch action.Type {
	case ActionFold:
	case ActionCheck:
		if toCall > 0 {
			return errIllegal(fmt.Sprintf("cannot check facing %d to call", toCall))
		}
	case ActionCall:
		if toCall <= 0 {
			return errIllegal("nothing to call")
		}
	case ActionBet:
		if g.CurrentBet > 0 {
			return errIllegal("cannot bet over an existing bet, raise instead")
		}
		if err := g.validateRaiseTo(player, action.Amount); err != nil {
			return err
		}
	case ActionRaise:
		if g.CurrentBet == 0 {
			return errIllegal("no bet to raise, bet instead")
		}
		if err := g.validateRaiseTo(player, action.Amount); err != nil {
			return err
		}
	case ActionAllIn:
		if player.Stack == 0 {
			return errIllegal("cannot go all-in with an empty stack")
		}
		if player.Stack+player.CurrentBet > g.CurrentBet && !g.raisingOpenFor(player) {
			return errIllegal("betting is closed for this player, calling all-in only")
		}
	default:
		return errIllegal("unknown action type " + string(action.Type))
	}

	switch action.Type {
	case ActionFold:
		player.Folded = true
		player.ActedInRound = true
		g.log("fold", player.ID, 0)
	case ActionCheck:
		player.ActedInRound = true
		g.log("check", player.ID, 0)
	case ActionCall:
		pay := toCall
		if pay > player.Stack {
			pay = player.Stack
		}
		g.commitChips(player, pay)
		player.ActedInRound = true
		g.log("call", player.ID, pay)
	case ActionBet:
		g.applyRaiseTo(player, action.Amount)
		g.log("bet", player.ID, action.Amount)
	case ActionRaise:
		g.applyRaiseTo(player, action.Amount)
		g.log("raise", player.ID, action.Amount)
	case ActionAllIn:
		total := player.Stack + player.CurrentBet
		if total > g.CurrentBet {
			g.applyRaiseTo(player, total)
		} else {
			g.commitChips(player, player.Stack)
			player.ActedInRound = true
		}
		g.log("all_in", player.ID, total)
	}

	if g.Phase == PhasePreflop && player.Seat == g.BigBlindSeat {
		g.BigBlindOption = false
	}

	if g.countUnfolded() == 1 {
		g.finishUncontested()
		return nil
	}
	if g.roundClosed() {
		return g.advancePhase()
	}

	g.CurrentIndex = g.nextActableFrom(g.nextIndex(g.CurrentIndex))
	g.TurnStartedAt = time.Now()
	return nil
}

// raisingOpenFor reports whether the player may make an aggressive action.
// Raising is closed for a player who already acted this round when the last
// raise was incomplete (a short all-in below the minimum raise).
func (g *GameState) raisingOpenFor(p *Player) bool {
	return g.LastRaiseComplete || !p.ActedInRound
}

// minRaiseTo returns the minimum legal total for a bet or raise this street.
func (g *GameState) minRaiseTo() int {
	if g.CurrentBet == 0 {
		return g.BigBlind
	}
	increment := g.LastRaiseAmount
	if increment == 0 {
		increment = g.BigBlind
	}
	return g.CurrentBet + increment
}

// validateRaiseTo checks a bet or raise to the given street total. A raise
// below the minimum is only legal when it puts the player all-in.
func (g *GameState) validateRaiseTo(p *Player, amount int) error {
	total := p.Stack + p.CurrentBet
	if amount <= 0 {
		return errIllegal("bet amount must be positive")
	}
	if amount > total {
		return errIllegal(fmt.Sprintf("bet of %d exceeds available chips %d", amount, total))
	}
	if amount <= g.CurrentBet {
		return errIllegal(fmt.Sprintf("raise to %d does not exceed current bet %d", amount, g.CurrentBet))
	}
	if !g.raisingOpenFor(p) {
		return errIllegal("betting is closed for this player, calling only")
	}
	if min := g.minRaiseTo(); amount < min && amount != total {
		return errIllegal(fmt.Sprintf("raise to %d is below the minimum %d", amount, min))
	}
	return nil
}

// applyRaiseTo commits an aggressive action to the given street total. A
// complete raise reopens the betting by clearing every other player's
// acted flag; an incomplete all-in raise keeps the betting closed and leaves
// the raise baseline unchanged.
func (g *GameState) applyRaiseTo(p *Player, amount int) {
	complete := amount >= g.minRaiseTo()
	raiseBy := amount - g.CurrentBet

	g.commitChips(p, amount-p.CurrentBet)
	g.CurrentBet = amount
	g.LastAggressorID = p.ID
	p.ActedInRound = true

	if complete {
		g.LastRaiseAmount = raiseBy
		g.LastRaiseComplete = true
		for _, other := range g.Players {
			if other.ID != p.ID {
				other.ActedInRound = false
			}
		}
	} else {
		g.LastRaiseComplete = false
	}
}

// commitChips moves chips from the player's stack into their street and hand
// contributions.
func (g *GameState) commitChips(p *Player, amount int) {
	p.Stack -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
}

// roundClosed reports whether the current betting round is over: every player
// who can act has matched the current bet and acted since the last complete
// raise, and the big blind has used its preflop option.
func (g *GameState) roundClosed() bool {
	actable := 0
	for _, p := range g.Players {
		if !p.CanAct() {
			continue
		}
		actable++
		if p.CurrentBet < g.CurrentBet {
			return false
		}
		if !p.ActedInRound {
			return false
		}
	}
	if actable == 0 {
		return true
	}
	if g.Phase == PhasePreflop && g.BigBlindOption {
		// The option only holds the round open while the big blind can
		// still use it.
		if idx := g.indexOfSeat(g.BigBlindSeat); idx != -1 && g.Players[idx].CanAct() {
			return false
		}
	}
	return true
}

// advancePhase closes the current street and deals the next one. When fewer
// than two players can still act, the remaining streets are dealt without
// betting until the board is complete.
func (g *GameState) advancePhase() error {
	for {
		g.resetStreet()

		switch g.Phase {
		case PhasePreflop:
			if err := g.dealCommunity(3); err != nil {
				return err
			}
			g.Phase = PhaseFlop
			g.log("deal_flop", "", 0)
		case PhaseFlop:
			if err := g.dealCommunity(1); err != nil {
				return err
			}
			g.Phase = PhaseTurn
			g.log("deal_turn", "", 0)
		case PhaseTurn:
			if err := g.dealCommunity(1); err != nil {
				return err
			}
			g.Phase = PhaseRiver
			g.log("deal_river", "", 0)
		case PhaseRiver:
			return g.resolveShowdown()
		}

		if g.countActable() >= 2 {
			break
		}
	}

	g.CurrentIndex = g.nextActableFrom(g.nextIndex(g.indexOfSeat(g.DealerSeat)))
	g.TurnStartedAt = time.Now()
	return nil
}

// resetStreet clears per-street betting state before the next card is dealt.
func (g *GameState) resetStreet() {
	for _, p := range g.Players {
		p.CurrentBet = 0
		p.ActedInRound = false
	}
	g.CurrentBet = 0
	g.LastRaiseAmount = 0
	g.LastAggressorID = ""
	g.LastRaiseComplete = true
	g.BigBlindOption = false
}

// dealCommunity burns one card and deals n community cards.
func (g *GameState) dealCommunity(n int) error {
	if err := g.Deck.Burn(); err != nil {
		return err
	}
	drawn, err := g.Deck.DrawN(n)
	if err != nil {
		return err
	}
	g.Community = append(g.Community, drawn...)
	return nil
}
