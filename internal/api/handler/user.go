package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/dancojocaru2000/ttt-server/internal/api/apierr"
	"github.com/dancojocaru2000/ttt-server/internal/api/middleware"
	"github.com/dancojocaru2000/ttt-server/internal/api/request"
	"github.com/dancojocaru2000/ttt-server/internal/api/response"
	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/services/account"
)

var codeFormat = regexp.MustCompile(`^[0-9]{4}$`)

// UserHandler handles user-related endpoints
type UserHandler struct {
	accounts *account.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(accounts *account.Service) *UserHandler {
	return &UserHandler{
		accounts: accounts,
	}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.UsersResponse{Users: make([]response.User, len(users))}
	for i := range users {
		resp.Users[i] = response.UserFromModel(&users[i])
	}
	response.JSON(w, http.StatusOK, resp)
}

// Register handles POST /api/user/new
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid JSON in body"))
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Nickname)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	// The one response that carries the secret for the first device
	response.JSON(w, http.StatusCreated, response.UserResponse{
		User: response.UserFromModel(user),
	})
}

// Get handles GET /api/user/{userId}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["userId"])

	user, err := h.accounts.Get(r.Context(), userID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserResponse{
		User: response.UserFromModel(user),
	})
}

// IssueCode handles GET /api/user/{userId}/code
func (h *UserHandler) IssueCode(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["userId"])
	secret := middleware.GetSecret(r.Context())

	code, err := h.accounts.IssueLoginCode(r.Context(), userID, secret)
	if err != nil {
		// An unknown user on this endpoint is a client mistake, not a
		// missing resource
		if errors.Is(err, model.ErrUserNotFound) {
			err = apierr.NewUnprocessableError(apierr.CodeUserNotFound, "User doesn't exist")
		}
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginCodeFromCode(code))
}

// RedeemCode handles POST /api/user/login/code
func (h *UserHandler) RedeemCode(w http.ResponseWriter, r *http.Request) {
	var req request.RedeemCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid JSON in body"))
		return
	}
	if !codeFormat.MatchString(req.Code) {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid code - bad format"))
		return
	}

	user, err := h.accounts.RedeemLoginCode(r.Context(), req.Code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	// Credential handoff: the second device receives the full user,
	// secret included
	response.JSON(w, http.StatusOK, response.UserResponse{
		User: response.UserFromModel(user),
	})
}
