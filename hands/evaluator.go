package hands

import (
	"fmt"
	"sort"

	"github.com/lazharichir/holdem/cards"
)

// HandRank represents the strength category of a poker hand
type HandRank int

const (
	HighCard HandRank = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var rankNames = map[HandRank]string{
	HighCard:      "High Card",
	OnePair:       "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (r HandRank) String() string {
	return rankNames[r]
}

// InvalidInputError reports unusable evaluator input: wrong card count or
// duplicate cards.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid evaluator input: " + e.Reason
}

// Evaluation represents the evaluation of the best 5-card poker hand
type Evaluation struct {
	Rank        HandRank    // The hand rank category (pair, flush, etc.)
	RankValue   int         // Numeric ordinal of Rank, for display and persistence
	Cards       cards.Stack // The 5 cards that make up the hand
	Kickers     []int       // Tie-break values, highest first
	Description string      // Human-readable description, e.g. "Full House, Kings over Twos"
}

// Evaluate ranks the best 5-card hand out of 5 to 7 cards. The input must
// contain no duplicate cards.
func Evaluate(cardSet cards.Stack) (Evaluation, error) {
	if len(cardSet) < 5 || len(cardSet) > 7 {
		return Evaluation{}, &InvalidInputError{Reason: fmt.Sprintf("need 5 to 7 cards, got %d", len(cardSet))}
	}
	if cardSet.HasDuplicates() {
		return Evaluation{}, &InvalidInputError{Reason: "duplicate cards in input"}
	}

	var best Evaluation
	for _, combo := range combinations(len(cardSet), 5) {
		hand := make(cards.Stack, 5)
		for i, idx := range combo {
			hand[i] = cardSet[idx]
		}

		evaluation := evaluateFive(hand)
		if best.Rank == 0 || Compare(evaluation, best) > 0 {
			best = evaluation
		}
	}

	return best, nil
}

// Compare returns -1 if a is worse than b, 0 if they tie, 1 if a is better.
// Hands compare by rank first, then by the kicker sequence highest-first.
func Compare(a, b Evaluation) int {
	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Kickers) && i < len(b.Kickers); i++ {
		if a.Kickers[i] != b.Kickers[i] {
			if a.Kickers[i] < b.Kickers[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// evaluateFive evaluates exactly 5 cards and returns their ranking
func evaluateFive(hand cards.Stack) Evaluation {
	sorted := sortByRankDesc(hand)

	if isRoyalFlush(sorted) {
		return newEvaluation(RoyalFlush, sorted, nil)
	}

	if isStraightFlush(sorted) {
		return newEvaluation(StraightFlush, sorted, []int{straightHigh(sorted)})
	}

	if quad, kicker := findFourOfAKind(sorted); quad > 0 {
		return newEvaluation(FourOfAKind, sorted, []int{quad, kicker})
	}

	if trips, pair := findFullHouse(sorted); trips > 0 {
		return newEvaluation(FullHouse, sorted, []int{trips, pair})
	}

	if isFlush(sorted) {
		return newEvaluation(Flush, sorted, ranksOf(sorted))
	}

	if isStraight(sorted) || isWheel(sorted) {
		return newEvaluation(Straight, sorted, []int{straightHigh(sorted)})
	}

	if trips, kickers := findThreeOfAKind(sorted); trips > 0 {
		return newEvaluation(ThreeOfAKind, sorted, append([]int{trips}, kickers...))
	}

	if high, low, kicker := findTwoPair(sorted); high > 0 {
		return newEvaluation(TwoPair, sorted, []int{high, low, kicker})
	}

	if pair, kickers := findOnePair(sorted); pair > 0 {
		return newEvaluation(OnePair, sorted, append([]int{pair}, kickers...))
	}

	return newEvaluation(HighCard, sorted, ranksOf(sorted))
}

func newEvaluation(rank HandRank, hand cards.Stack, kickers []int) Evaluation {
	if kickers == nil {
		kickers = []int{}
	}
	return Evaluation{
		Rank:        rank,
		RankValue:   int(rank),
		Cards:       hand,
		Kickers:     kickers,
		Description: describe(rank, kickers),
	}
}

// sortByRankDesc sorts cards by rank in descending order
func sortByRankDesc(hand cards.Stack) cards.Stack {
	result := make(cards.Stack, len(hand))
	copy(result, hand)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Rank() > result[j].Rank()
	})
	return result
}

// ranksOf returns the card ranks in the hand's current (descending) order
func ranksOf(hand cards.Stack) []int {
	ranks := make([]int, len(hand))
	for i, card := range hand {
		ranks[i] = card.Rank()
	}
	return ranks
}

// isRoyalFlush checks for A, K, Q, J, 10 of the same suit
func isRoyalFlush(hand cards.Stack) bool {
	return isFlush(hand) && isStraight(hand) && hand[0].Value == cards.Ace
}

// isStraightFlush checks if a hand is a straight flush
func isStraightFlush(hand cards.Stack) bool {
	return isFlush(hand) && (isStraight(hand) || isWheel(hand))
}

// isFlush checks if all cards are of the same suit
func isFlush(hand cards.Stack) bool {
	suit := hand[0].Suit
	for _, card := range hand[1:] {
		if card.Suit != suit {
			return false
		}
	}
	return true
}

// isStraight checks for five consecutive ranks. Expects descending order.
func isStraight(hand cards.Stack) bool {
	for i := 1; i < len(hand); i++ {
		if hand[i].Rank() != hand[i-1].Rank()-1 {
			return false
		}
	}
	return true
}

// isWheel checks for the A-5-4-3-2 straight where the ace plays low
func isWheel(hand cards.Stack) bool {
	hasAce, has2, has3, has4, has5 := false, false, false, false, false
	for _, card := range hand {
		switch card.Value {
		case cards.Ace:
			hasAce = true
		case cards.Two:
			has2 = true
		case cards.Three:
			has3 = true
		case cards.Four:
			has4 = true
		case cards.Five:
			has5 = true
		}
	}
	return hasAce && has2 && has3 && has4 && has5
}

// straightHigh returns the high card of a straight; the wheel is 5-high.
func straightHigh(hand cards.Stack) int {
	if isWheel(hand) {
		return 5
	}
	return hand[0].Rank()
}

func countByRank(hand cards.Stack) map[int]int {
	counts := make(map[int]int, len(hand))
	for _, card := range hand {
		counts[card.Rank()]++
	}
	return counts
}

// findFourOfAKind returns the quad rank and kicker, or zeros
func findFourOfAKind(hand cards.Stack) (int, int) {
	var quad, kicker int
	for rank, count := range countByRank(hand) {
		if count == 4 {
			quad = rank
		} else {
			kicker = rank
		}
	}
	if quad == 0 {
		return 0, 0
	}
	return quad, kicker
}

// findFullHouse returns the trips rank and pair rank, or zeros
func findFullHouse(hand cards.Stack) (int, int) {
	var trips, pair int
	for rank, count := range countByRank(hand) {
		switch count {
		case 3:
			trips = rank
		case 2:
			pair = rank
		}
	}
	if trips == 0 || pair == 0 {
		return 0, 0
	}
	return trips, pair
}

// findThreeOfAKind returns the trips rank and sorted kickers, or zeros
func findThreeOfAKind(hand cards.Stack) (int, []int) {
	var trips int
	var kickers []int
	for rank, count := range countByRank(hand) {
		if count == 3 {
			trips = rank
		} else {
			kickers = append(kickers, rank)
		}
	}
	if trips == 0 {
		return 0, nil
	}
	sort.Sort(sort.Reverse(sort.IntSlice(kickers)))
	return trips, kickers
}

// findTwoPair returns the higher pair, lower pair and kicker, or zeros
func findTwoPair(hand cards.Stack) (int, int, int) {
	var pairs []int
	var kicker int
	for rank, count := range countByRank(hand) {
		switch count {
		case 2:
			pairs = append(pairs, rank)
		case 1:
			kicker = rank
		}
	}
	if len(pairs) != 2 {
		return 0, 0, 0
	}
	sort.Sort(sort.Reverse(sort.IntSlice(pairs)))
	return pairs[0], pairs[1], kicker
}

// findOnePair returns the pair rank and sorted kickers, or zeros
func findOnePair(hand cards.Stack) (int, []int) {
	var pair int
	var kickers []int
	for rank, count := range countByRank(hand) {
		if count == 2 {
			pair = rank
		} else {
			kickers = append(kickers, rank)
		}
	}
	if pair == 0 {
		return 0, nil
	}
	sort.Sort(sort.Reverse(sort.IntSlice(kickers)))
	return pair, kickers
}

// combinations generates all combinations of k indices out of n
func combinations(n, k int) [][]int {
	if k > n {
		return nil
	}

	var result [][]int
	var combine func(int, []int)

	combine = func(start int, current []int) {
		if len(current) == k {
			combo := make([]int, k)
			copy(combo, current)
			result = append(result, combo)
			return
		}
		for i := start; i < n; i++ {
			current = append(current, i)
			combine(i+1, current)
			current = current[:len(current)-1]
		}
	}

	combine(0, []int{})
	return result
}

var rankWords = map[int]string{
	2: "Twos", 3: "Threes", 4: "Fours", 5: "Fives", 6: "Sixes", 7: "Sevens",
	8: "Eights", 9: "Nines", 10: "Tens", 11: "Jacks", 12: "Queens", 13: "Kings", 14: "Aces",
}

var rankWordsSingular = map[int]string{
	2: "Two", 3: "Three", 4: "Four", 5: "Five", 6: "Six", 7: "Seven",
	8: "Eight", 9: "Nine", 10: "Ten", 11: "Jack", 12: "Queen", 13: "King", 14: "Ace",
}

func describe(rank HandRank, kickers []int) string {
	switch rank {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", rankWordsSingular[kickers[0]])
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", rankWords[kickers[0]])
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", rankWords[kickers[0]], rankWords[kickers[1]])
	case Flush:
		return fmt.Sprintf("Flush, %s high", rankWordsSingular[kickers[0]])
	case Straight:
		return fmt.Sprintf("Straight, %s high", rankWordsSingular[kickers[0]])
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", rankWords[kickers[0]])
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", rankWords[kickers[0]], rankWords[kickers[1]])
	case OnePair:
		return fmt.Sprintf("Pair of %s", rankWords[kickers[0]])
	default:
		return fmt.Sprintf("High Card, %s", rankWordsSingular[kickers[0]])
	}
}
