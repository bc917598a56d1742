package engine

import (
	"sort"

	"github.com/lazharichir/holdem/hands"
)

// ComputePots folds per-player cumulative contributions into main and side
// pots. Contributions from folded players stay in the pots they reached, but
// folded players are never eligible. Layers with no eligible player are
// dropped. Pure function; call it whenever contributions change.
func ComputePots(players []*Player) []Pot {
	// Distinct positive contribution tiers, ascending.
	tierSet := make(map[int]bool)
	for _, p := range players {
		if p.TotalBet > 0 {
			tierSet[p.TotalBet] = true
		}
	}
	tiers := make([]int, 0, len(tierSet))
	for tier := range tierSet {
		tiers = append(tiers, tier)
	}
	sort.Ints(tiers)

	pots := make([]Pot, 0, len(tiers))
	prev := 0
	for _, tier := range tiers {
		contributors := 0
		eligible := make([]string, 0, len(players))
		for _, p := range players {
			if p.TotalBet < tier {
				continue
			}
			contributors++
			if !p.Folded && !p.SittingOut {
				eligible = append(eligible, p.ID)
			}
		}

		if len(eligible) > 0 {
			pots = append(pots, Pot{
				Amount:            (tier - prev) * contributors,
				EligiblePlayerIDs: eligible,
			})
		}
		prev = tier
	}

	return pots
}

// SettlePots determines winners for every pot. evaluations maps player ids to
// their best hand; a pot with a single eligible player is awarded uncontested
// with a nil hand and needs no evaluation. seatOrder lists player ids
// clockwise from the dealer and drives the deterministic odd-chip rule: when
// a pot does not split evenly, the remainder is handed out one chip at a time
// starting from the first splitter in that order.
func SettlePots(pots []Pot, evaluations map[string]hands.Evaluation, seatOrder []string) []HandWinner {
	orderIndex := make(map[string]int, len(seatOrder))
	for i, id := range seatOrder {
		orderIndex[id] = i
	}

	var winners []HandWinner
	for potIdx, pot := range pots {
		if pot.Amount <= 0 {
			continue
		}

		if len(pot.EligiblePlayerIDs) == 1 {
			winners = append(winners, HandWinner{
				PlayerID: pot.EligiblePlayerIDs[0],
				PotIndex: potIdx,
				Amount:   pot.Amount,
			})
			continue
		}

		// Find the best hand among eligible players.
		var best []string
		for _, id := range pot.EligiblePlayerIDs {
			eval, ok := evaluations[id]
			if !ok {
				continue
			}
			if len(best) == 0 {
				best = []string{id}
				continue
			}
			switch hands.Compare(eval, evaluations[best[0]]) {
			case 1:
				best = []string{id}
			case 0:
				best = append(best, id)
			}
		}
		if len(best) == 0 {
			continue
		}

		sort.Slice(best, func(i, j int) bool {
			return orderIndex[best[i]] < orderIndex[best[j]]
		})

		share := pot.Amount / len(best)
		remainder := pot.Amount % len(best)
		for i, id := range best {
			amount := share
			if i < remainder {
				amount++
			}
			eval := evaluations[id]
			winners = append(winners, HandWinner{
				PlayerID: id,
				PotIndex: potIdx,
				Amount:   amount,
				Hand:     &eval,
			})
		}
	}
	return winners
}
