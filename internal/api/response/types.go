package response

import (
	"time"

	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/services/logincode"
)

// User represents a user in API responses. Secret is omitted unless the
// endpoint is explicitly a credential handoff (registration, code
// redemption).
type User struct {
	ID       string          `json:"id"`
	Nickname string          `json:"nickname"`
	Secret   string          `json:"secret,omitempty"`
	Stats    model.UserStats `json:"stats"`
	Friends  []string        `json:"friends"`
}

// UserFromModel converts a model.User to a response User. The service
// layer decides whether the secret is present on the model.
func UserFromModel(u *model.User) User {
	friends := make([]string, len(u.Friends))
	for i, f := range u.Friends {
		friends[i] = string(f)
	}
	return User{
		ID:       string(u.ID),
		Nickname: u.Nickname,
		Secret:   u.Secret,
		Stats:    u.Stats,
		Friends:  friends,
	}
}

// UsersResponse is the response for listing users
type UsersResponse struct {
	Users []User `json:"users"`
}

// GamesResponse is the response for listing games
type GamesResponse struct {
	Games []model.Game `json:"games"`
}

// GameResponse wraps a single game
type GameResponse struct {
	Game model.Game `json:"game"`
}

// UserResponse wraps a single user
type UserResponse struct {
	User User `json:"user"`
}

// LoginCodeResponse is the response for issuing a login code
type LoginCodeResponse struct {
	Code             string    `json:"code"`
	IssueDate        time.Time `json:"issueDate"`
	ExpirationDate   time.Time `json:"expirationDate"`
	ExpiresInSeconds int       `json:"expiresInSeconds"`
}

// LoginCodeFromCode converts an issued code to its response shape
func LoginCodeFromCode(c logincode.Code) LoginCodeResponse {
	return LoginCodeResponse{
		Code:             c.Code,
		IssueDate:        c.IssueDate,
		ExpirationDate:   c.ExpirationDate,
		ExpiresInSeconds: int(c.ExpirationDate.Sub(c.IssueDate).Seconds()),
	}
}

// NickRegexResponse is the response for the nickname rule endpoint
type NickRegexResponse struct {
	Regex string `json:"regex"`
}
