package cards

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyDeck is returned when drawing or burning from an exhausted deck.
// With a full 52-card deck this cannot happen during a legal hand, so it
// indicates an engine bug rather than user error.
var ErrEmptyDeck = errors.New("no cards left in deck")

// EntropyError reports that the caller-supplied randomness source failed or
// ran out while shuffling.
type EntropyError struct {
	Err error
}

func (e *EntropyError) Error() string {
	return fmt.Sprintf("insufficient entropy for shuffle: %v", e.Err)
}

func (e *EntropyError) Unwrap() error { return e.Err }

// Deck is an ordered sequence of remaining cards. Cards are removed, never
// copied, as they are dealt or burned.
type Deck struct {
	cards Stack
}

// NewDeck52 creates a standard ordered deck of 52 cards
func NewDeck52() *Deck {
	deck := &Deck{cards: make(Stack, 0, 52)}
	for _, suit := range Suits {
		for _, value := range Values {
			deck.cards = append(deck.cards, Card{Value: value, Suit: suit})
		}
	}
	return deck
}

// NewDeckFrom creates a deck holding exactly the given cards, top card first.
// Useful for deterministic tests and for restoring a serialized deck.
func NewDeckFrom(cards ...Card) *Deck {
	return &Deck{cards: append(Stack{}, cards...)}
}

// NewShuffledDeck52 creates a 52-card deck shuffled with entropy from r.
func NewShuffledDeck52(r io.Reader) (*Deck, error) {
	deck := NewDeck52()
	if err := deck.Shuffle(r); err != nil {
		return nil, err
	}
	return deck, nil
}

// Shuffle performs an unbiased Fisher–Yates shuffle driven by the given
// entropy source (crypto/rand.Reader in production, a seeded math/rand
// reader in tests).
func (d *Deck) Shuffle(r io.Reader) error {
	for i := len(d.cards) - 1; i > 0; i-- {
		j, err := uniformInt(r, i+1)
		if err != nil {
			return &EntropyError{Err: err}
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return nil
}

// uniformInt returns a uniform random int in [0, n) using rejection sampling,
// so no shuffle position is biased by the modulo. The threshold math runs in
// 64 bits: computed in uint32 it would wrap to 0 whenever n divides 2^32 and
// the loop would never accept a sample.
func uniformInt(r io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("uniformInt: n must be positive")
	}
	limit := (uint64(1) << 32 / uint64(n)) * uint64(n)
	var buf [4]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		v := binary.BigEndian.Uint32(buf[:])
		if uint64(v) < limit {
			return int(v % uint32(n)), nil
		}
	}
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Remaining returns a copy of the remaining cards, top card first.
func (d *Deck) Remaining() Stack {
	return append(Stack{}, d.cards...)
}

// Draw removes and returns the top card of the deck.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DrawN removes and returns the top n cards of the deck.
func (d *Deck) DrawN(n int) (Stack, error) {
	if n > len(d.cards) {
		return nil, ErrEmptyDeck
	}
	drawn := append(Stack{}, d.cards[:n]...)
	d.cards = d.cards[n:]
	return drawn, nil
}

// MarshalJSON serializes the remaining cards as two-character codes, top
// card first.
func (d *Deck) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.cards)
}

// UnmarshalJSON restores a deck from its serialized card list.
func (d *Deck) UnmarshalJSON(data []byte) error {
	var cards Stack
	if err := json.Unmarshal(data, &cards); err != nil {
		return err
	}
	d.cards = cards
	return nil
}

// Burn discards the top card without revealing it.
func (d *Deck) Burn() error {
	if len(d.cards) == 0 {
		return ErrEmptyDeck
	}
	d.cards = d.cards[1:]
	return nil
}
