package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dancojocaru2000/ttt-server/internal/api/apierr"
	"github.com/dancojocaru2000/ttt-server/internal/api/response"
	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/services/games"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	games *games.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gamesService *games.Service) *GameHandler {
	return &GameHandler{
		games: gamesService,
	}
}

// List handles GET /api/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.games.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GamesResponse{Games: all})
}

// Create handles POST /api/game
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var game model.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid JSON in body"))
		return
	}

	if err := h.games.Create(r.Context(), game); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameResponse{Game: game})
}

// Get handles GET /api/game/{gameId}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["gameId"])

	game, err := h.games.Get(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameResponse{Game: *game})
}

// Update handles PATCH /api/game/{gameId}
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["gameId"])

	var game model.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid JSON in body"))
		return
	}

	if err := h.games.Update(r.Context(), gameID, game); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameResponse{Game: game})
}
