package model

import (
	"encoding/json"
	"fmt"
)

// GameID uniquely identifies a game
type GameID string

// GameState is the phase a game is in
type GameState string

const (
	GameStateMovingX GameState = "movingX"
	GameStateMovingO GameState = "movingO"
	GameStateWinX    GameState = "winX"
	GameStateWinO    GameState = "winO"
	GameStateDraw    GameState = "draw"
)

// Mark is a player's symbol on the board
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"
)

// Game is a single match record. The core treats it as opaque data the
// store transports; no rule validation happens server-side.
type Game struct {
	ID        GameID    `json:"id"`
	State     GameState `json:"state"`
	Moves     []Move    `json:"moves"`
	StartTime string    `json:"startTime"`
	WinIdx    *int      `json:"winIdx"`
	Players   Players   `json:"players"`
}

// Players maps each mark to the user playing it
type Players struct {
	X UserID `json:"X"`
	O UserID `json:"O"`
}

// Move is one placement: a board position and the mark placed there.
// On the wire it is a two-element array, e.g. [4, "X"].
type Move struct {
	Position int
	Mark     Mark
}

// MarshalJSON encodes the move as a [position, mark] tuple
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{m.Position, m.Mark})
}

// UnmarshalJSON decodes a [position, mark] tuple
func (m *Move) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("move must be a [position, mark] pair, got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &m.Position); err != nil {
		return fmt.Errorf("move position: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &m.Mark); err != nil {
		return fmt.Errorf("move mark: %w", err)
	}
	return nil
}
