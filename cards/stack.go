package cards

import "strings"

// Stack represents multiple cards
type Stack []Card

// NewStack creates a new stack from the given cards
func NewStack(cards ...Card) Stack {
	return cards
}

// ParseStack parses a space-separated list of card shorthands, e.g. "Ah Kd 2c"
func ParseStack(s string) (Stack, error) {
	fields := strings.Fields(s)
	stack := make(Stack, 0, len(fields))
	for _, field := range fields {
		card, err := ParseCard(field)
		if err != nil {
			return nil, err
		}
		stack = append(stack, card)
	}
	return stack, nil
}

// MustStack parses a space-separated list of card shorthands and panics on failure.
func MustStack(s string) Stack {
	stack, err := ParseStack(s)
	if err != nil {
		panic(err)
	}
	return stack
}

func (stack Stack) String() string {
	codes := make([]string, len(stack))
	for i, c := range stack {
		codes[i] = c.String()
	}
	return strings.Join(codes, " ")
}

// Contains reports whether the stack holds the given card.
func (stack Stack) Contains(card Card) bool {
	for _, c := range stack {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

// HasDuplicates reports whether any card appears more than once.
func (stack Stack) HasDuplicates() bool {
	seen := make(map[Card]bool, len(stack))
	for _, c := range stack {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}
