package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveMarshalsAsTuple(t *testing.T) {
	data, err := json.Marshal(Move{Position: 4, Mark: MarkX})
	require.NoError(t, err)
	assert.JSONEq(t, `[4, "X"]`, string(data))
}

func TestMoveUnmarshalsFromTuple(t *testing.T) {
	var m Move
	require.NoError(t, json.Unmarshal([]byte(`[8, "O"]`), &m))
	assert.Equal(t, 8, m.Position)
	assert.Equal(t, MarkO, m.Mark)
}

func TestMoveRejectsWrongArity(t *testing.T) {
	var m Move
	assert.Error(t, json.Unmarshal([]byte(`[4]`), &m))
	assert.Error(t, json.Unmarshal([]byte(`[4, "X", "extra"]`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"position": 4}`), &m))
}

func TestGameRoundTripsThroughJSON(t *testing.T) {
	winIdx := 2
	game := Game{
		ID:        "g1",
		State:     GameStateWinO,
		Moves:     []Move{{Position: 0, Mark: MarkX}, {Position: 4, Mark: MarkO}},
		StartTime: "2024-01-01T12:00:00Z",
		WinIdx:    &winIdx,
		Players:   Players{X: "u1", O: "u2"},
	}

	data, err := json.Marshal(game)
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, game, decoded)
}

func TestDatabaseNormalizeUpgradesOldRecords(t *testing.T) {
	var db Database
	require.NoError(t, json.Unmarshal([]byte(`{"users": [{"id": "u1", "nickname": "alice", "secret": "s1"}]}`), &db))

	db.Normalize()

	assert.NotNil(t, db.Games)
	require.Len(t, db.Users, 1)
	assert.NotNil(t, db.Users[0].Friends)
}
