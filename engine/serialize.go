package engine

import (
	"encoding/json"
	"fmt"
)

// stateSchemaVersion tags serialized game states so incompatible payloads are
// rejected on load instead of silently misread.
const stateSchemaVersion = 1

// MarshalJSON serializes the full hand state, including the remaining deck
// and the betting accumulators needed to resume mid-street (current bet,
// last raise amount and completeness, aggressor, big blind option).
func (g *GameState) MarshalJSON() ([]byte, error) {
	type alias GameState
	clone := *g
	clone.Version = stateSchemaVersion
	return json.Marshal((*alias)(&clone))
}

// UnmarshalJSON restores a serialized hand state, rejecting unknown schema
// versions.
func (g *GameState) UnmarshalJSON(data []byte) error {
	type alias GameState
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Version != stateSchemaVersion {
		return fmt.Errorf("unsupported game state version %d, want %d", decoded.Version, stateSchemaVersion)
	}
	*g = GameState(decoded)
	return nil
}
