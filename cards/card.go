package cards

import "fmt"

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "h"
	Diamonds Suit = "d"
	Clubs    Suit = "c"
	Spades   Suit = "s"
)

// Value represents a card value
type Value string

const (
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "T"
	Jack  Value = "J"
	Queen Value = "Q"
	King  Value = "K"
	Ace   Value = "A"
)

// Suits and Values list every valid suit and value in deck order.
var (
	Suits  = []Suit{Hearts, Diamonds, Clubs, Spades}
	Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
)

// Card represents a playing card
type Card struct {
	Value Value
	Suit  Suit
}

// String returns the compact two-character code of a card, e.g. "Ah"
func (c Card) String() string {
	return string(c.Value) + string(c.Suit)
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Value == other.Value
}

// Rank converts the card value to its numerical rank (2=2 ... A=14)
func (c Card) Rank() int {
	return RankOf(c.Value)
}

// RankOf converts card values to numerical ranks (2=2, A=14)
func RankOf(value Value) int {
	switch value {
	case Two:
		return 2
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven:
		return 7
	case Eight:
		return 8
	case Nine:
		return 9
	case Ten:
		return 10
	case Jack:
		return 11
	case Queen:
		return 12
	case King:
		return 13
	case Ace:
		return 14
	}
	return 0
}

// ParseCard creates a card from its string representation.
// e.g., "Ah" or "AH" -> Card{Value: Ace, Suit: Hearts}. "10s" is accepted for "Ts".
func ParseCard(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}

	var suit Suit
	switch string(runes[len(runes)-1]) {
	case "h", "H", "♥":
		suit = Hearts
	case "d", "D", "♦":
		suit = Diamonds
	case "c", "C", "♣":
		suit = Clubs
	case "s", "S", "♠":
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", string(runes[len(runes)-1]))
	}

	var value Value
	switch string(runes[:len(runes)-1]) {
	case "A":
		value = Ace
	case "K":
		value = King
	case "Q":
		value = Queen
	case "J":
		value = Jack
	case "T", "10":
		value = Ten
	case "9":
		value = Nine
	case "8":
		value = Eight
	case "7":
		value = Seven
	case "6":
		value = Six
	case "5":
		value = Five
	case "4":
		value = Four
	case "3":
		value = Three
	case "2":
		value = Two
	default:
		return Card{}, fmt.Errorf("invalid card value: %q", string(runes[:len(runes)-1]))
	}

	return Card{Value: value, Suit: suit}, nil
}

// MustCard parses a card shorthand and panics on failure. Intended for tests
// and fixtures where the input is a literal.
func MustCard(s string) Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return card
}

// MarshalText implements encoding.TextMarshaler using the two-character code.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(text []byte) error {
	card, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = card
	return nil
}
