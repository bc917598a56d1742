package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sanity-io/litter"
	"go.uber.org/zap"

	"github.com/lazharichir/holdem/engine"
)

var (
	ErrTableFull        = errors.New("no free seat at this table")
	ErrInvalidSeat      = errors.New("seat position out of range")
	ErrSeatTaken        = errors.New("seat already taken")
	ErrPlayerNotSeated  = errors.New("player is not seated at this table")
	ErrAlreadySeated    = errors.New("player is already seated at this table")
	ErrHandInProgress   = errors.New("a hand is already in progress")
	ErrNoHandInProgress = errors.New("no hand in progress")

	// ErrDuplicateAction is returned when an action id was already applied,
	// so client retries stay idempotent.
	ErrDuplicateAction = errors.New("action already applied")
)

// Seat is one position at a table. Chips persist across hands and are only
// written back when a hand settles.
type Seat struct {
	PlayerID   string
	Position   int
	Chips      int
	SittingOut bool
}

// Config describes a new table.
type Config struct {
	Name       string
	SeatCount  int
	SmallBlind int
	BigBlind   int
}

// Table runs consecutive hands for a fixed set of seats. All methods are safe
// for concurrent use; a single mutex serializes every state change, so actions
// on one table never interleave.
type Table struct {
	ID         string
	Name       string
	SeatCount  int
	SmallBlind int
	BigBlind   int

	mu          sync.Mutex
	seats       map[int]*Seat
	dealerSeat  int
	hand        *engine.GameState
	seenActions map[string]bool

	logger  *zap.Logger
	entropy io.Reader
}

func newTable(cfg Config, logger *zap.Logger, entropy io.Reader) *Table {
	return &Table{
		ID:          uuid.NewString(),
		Name:        cfg.Name,
		SeatCount:   cfg.SeatCount,
		SmallBlind:  cfg.SmallBlind,
		BigBlind:    cfg.BigBlind,
		seats:       make(map[int]*Seat),
		dealerSeat:  -1,
		seenActions: make(map[string]bool),
		logger:      logger,
		entropy:     entropy,
	}
}

// Sit seats a player with a starting chip count.
func (t *Table) Sit(playerID string, position int, chips int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if position < 0 || position >= t.SeatCount {
		return fmt.Errorf("seat %d: %w", position, ErrInvalidSeat)
	}
	if _, taken := t.seats[position]; taken {
		return ErrSeatTaken
	}
	for _, seat := range t.seats {
		if seat.PlayerID == playerID {
			return ErrAlreadySeated
		}
	}
	if len(t.seats) >= t.SeatCount {
		return ErrTableFull
	}

	t.seats[position] = &Seat{PlayerID: playerID, Position: position, Chips: chips}
	t.logger.Info("player seated",
		zap.String("table", t.ID),
		zap.String("player", playerID),
		zap.Int("seat", position),
		zap.Int("chips", chips),
	)
	return nil
}

// Leave removes a player between hands. A player dealt into the current hand
// must fold first.
func (t *Table) Leave(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat := t.seatOf(playerID)
	if seat == nil {
		return ErrPlayerNotSeated
	}
	if t.hand != nil && !t.hand.HandComplete() {
		if p := t.hand.PlayerByID(playerID); p != nil && !p.Folded && !p.SittingOut {
			return ErrHandInProgress
		}
	}

	delete(t.seats, seat.Position)
	t.logger.Info("player left",
		zap.String("table", t.ID),
		zap.String("player", playerID),
		zap.Int("chips", seat.Chips),
	)
	return nil
}

// StartHand deals the next hand, moving the dealer button to the next
// occupied seat.
func (t *Table) StartHand() (*engine.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hand != nil && !t.hand.HandComplete() {
		return nil, ErrHandInProgress
	}

	cfg := engine.HandConfig{
		HandID:     uuid.NewString(),
		DealerSeat: t.nextDealerSeat(),
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
		Entropy:    t.entropy,
	}
	for _, seat := range t.seats {
		cfg.Players = append(cfg.Players, engine.SeatConfig{
			PlayerID:   seat.PlayerID,
			Seat:       seat.Position,
			Stack:      seat.Chips,
			SittingOut: seat.SittingOut || seat.Chips <= 0,
		})
	}

	hand, err := engine.StartHand(cfg)
	if err != nil {
		return nil, err
	}

	t.hand = hand
	t.dealerSeat = cfg.DealerSeat
	t.seenActions = make(map[string]bool)
	t.logger.Info("hand started",
		zap.String("table", t.ID),
		zap.String("hand", hand.ID),
		zap.Int("dealerSeat", cfg.DealerSeat),
		zap.Int("players", len(cfg.Players)),
	)

	if hand.HandComplete() {
		t.settleLocked()
	}
	return t.snapshotLocked()
}

// Act applies a player action to the current hand. actionID makes retries
// idempotent: a repeated id is rejected without touching the hand. Pass an
// empty id to skip deduplication.
func (t *Table) Act(playerID, actionID string, action engine.Action) (*engine.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hand == nil || t.hand.HandComplete() {
		return nil, ErrNoHandInProgress
	}
	if actionID != "" && t.seenActions[actionID] {
		return nil, ErrDuplicateAction
	}

	if err := t.hand.ApplyAction(playerID, action); err != nil {
		t.logger.Warn("action rejected",
			zap.String("table", t.ID),
			zap.String("hand", t.hand.ID),
			zap.String("player", playerID),
			zap.String("action", string(action.Type)),
			zap.Error(err),
		)
		return nil, err
	}
	if actionID != "" {
		t.seenActions[actionID] = true
	}

	t.logger.Info("action applied",
		zap.String("table", t.ID),
		zap.String("hand", t.hand.ID),
		zap.String("player", playerID),
		zap.String("action", string(action.Type)),
		zap.Int("amount", action.Amount),
		zap.String("phase", string(t.hand.Phase)),
	)

	if t.hand.HandComplete() {
		t.settleLocked()
	}
	return t.snapshotLocked()
}

// State returns a deep copy of the current hand, or ErrNoHandInProgress.
func (t *Table) State() (*engine.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hand == nil {
		return nil, ErrNoHandInProgress
	}
	return t.snapshotLocked()
}

// Seats returns a copy of the current seating.
func (t *Table) Seats() []Seat {
	t.mu.Lock()
	defer t.mu.Unlock()

	seats := make([]Seat, 0, len(t.seats))
	for _, seat := range t.seats {
		seats = append(seats, *seat)
	}
	return seats
}

// Debug renders the full table state for logs and consoles.
func (t *Table) Debug() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return litter.Sdump(t.seats, t.hand)
}

// settleLocked writes settled stacks back to the seats. Busted players sit
// out until they reload.
func (t *Table) settleLocked() {
	for _, p := range t.hand.Players {
		seat, ok := t.seats[p.Seat]
		if !ok || seat.PlayerID != p.ID {
			continue
		}
		seat.Chips = p.Stack
		if seat.Chips == 0 {
			seat.SittingOut = true
		}
	}

	for _, w := range t.hand.Winners {
		t.logger.Info("pot awarded",
			zap.String("table", t.ID),
			zap.String("hand", t.hand.ID),
			zap.String("player", w.PlayerID),
			zap.Int("pot", w.PotIndex),
			zap.Int("amount", w.Amount),
		)
	}

	if ce := t.logger.Check(zap.DebugLevel, "hand settled"); ce != nil {
		ce.Write(
			zap.String("table", t.ID),
			zap.String("hand", t.hand.ID),
			zap.String("state", litter.Sdump(t.hand)),
		)
	}
}

// snapshotLocked deep-copies the hand through its serialized form so callers
// can never mutate live state.
func (t *Table) snapshotLocked() (*engine.GameState, error) {
	data, err := json.Marshal(t.hand)
	if err != nil {
		return nil, err
	}
	var snapshot engine.GameState
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (t *Table) seatOf(playerID string) *Seat {
	for _, seat := range t.seats {
		if seat.PlayerID == playerID {
			return seat
		}
	}
	return nil
}

// nextDealerSeat returns the next occupied seat clockwise from the current
// dealer, or the lowest occupied seat for the first hand.
func (t *Table) nextDealerSeat() int {
	for i := 1; i <= t.SeatCount; i++ {
		pos := (t.dealerSeat + i) % t.SeatCount
		if pos < 0 {
			pos += t.SeatCount
		}
		if seat, ok := t.seats[pos]; ok && !seat.SittingOut && seat.Chips > 0 {
			return pos
		}
	}
	return 0
}
