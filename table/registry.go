package table

import (
	"crypto/rand"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"
)

// ErrTableNotFound is returned when looking up an unknown table id.
var ErrTableNotFound = errors.New("table not found")

// Registry owns every live table. It hands out *Table values; all per-table
// state changes go through the table's own lock.
type Registry struct {
	mu      sync.RWMutex
	tables  map[string]*Table
	logger  *zap.Logger
	entropy io.Reader
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		tables:  make(map[string]*Table),
		logger:  logger,
		entropy: rand.Reader,
	}
}

// CreateTable opens a new table and registers it.
func (r *Registry) CreateTable(cfg Config) *Table {
	t := newTable(cfg, r.logger, r.entropy)

	r.mu.Lock()
	r.tables[t.ID] = t
	r.mu.Unlock()

	r.logger.Info("table created",
		zap.String("table", t.ID),
		zap.String("name", t.Name),
		zap.Int("seats", t.SeatCount),
		zap.Int("smallBlind", t.SmallBlind),
		zap.Int("bigBlind", t.BigBlind),
	)
	return t
}

// Table looks up a table by id.
func (r *Registry) Table(id string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[id]
	if !ok {
		return nil, ErrTableNotFound
	}
	return t, nil
}

// Tables returns all registered tables.
func (r *Registry) Tables() []*Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make([]*Table, 0, len(r.tables))
	for _, t := range r.tables {
		tables = append(tables, t)
	}
	return tables
}

// CloseTable tears a table down. A hand in progress blocks the close.
func (r *Registry) CloseTable(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[id]
	if !ok {
		return ErrTableNotFound
	}

	t.mu.Lock()
	inProgress := t.hand != nil && !t.hand.HandComplete()
	t.mu.Unlock()
	if inProgress {
		return ErrHandInProgress
	}

	delete(r.tables, id)
	r.logger.Info("table closed", zap.String("table", id))
	return nil
}
