package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dancojocaru2000/ttt-server/internal/api/response"
	"github.com/dancojocaru2000/ttt-server/internal/model"
)

// Output handles formatting and printing results
type Output struct {
	format string
}

// NewOutput creates an Output for the given format
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print formats and prints the given data
func (o *Output) Print(data any) error {
	switch o.format {
	case "json":
		return o.printJSON(data)
	default:
		return o.printText(data)
	}
}

// PrintError prints an error message to stderr
func (o *Output) PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// PrintMessage prints an informational message
func (o *Output) PrintMessage(msg string) {
	fmt.Println(msg)
}

func (o *Output) printJSON(data any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (o *Output) printText(data any) error {
	switch v := data.(type) {
	case response.UserResponse:
		printUser(v.User)
	case response.UsersResponse:
		fmt.Printf("%d user(s)\n", len(v.Users))
		for _, u := range v.Users {
			fmt.Printf("  %s  %s\n", u.ID, u.Nickname)
		}
	case response.LoginCodeResponse:
		fmt.Printf("Login code: %s\n", v.Code)
		fmt.Printf("Expires:    %s (in %ds)\n", v.ExpirationDate.Local().Format("15:04:05"), v.ExpiresInSeconds)
	case response.GameResponse:
		printGame(v.Game)
	case response.GamesResponse:
		fmt.Printf("%d game(s)\n", len(v.Games))
		for _, g := range v.Games {
			fmt.Printf("  %s  %s  %d move(s)\n", g.ID, g.State, len(g.Moves))
		}
	case response.NickRegexResponse:
		fmt.Println(v.Regex)
	default:
		return o.printJSON(data)
	}
	return nil
}

func printUser(u response.User) {
	fmt.Printf("ID:       %s\n", u.ID)
	fmt.Printf("Nickname: %s\n", u.Nickname)
	if u.Secret != "" {
		fmt.Printf("Secret:   %s\n", u.Secret)
	}
	fmt.Printf("Local:    %d won / %d played\n", u.Stats.Local.Won, u.Stats.Local.Total)
	fmt.Printf("Online:   %d won / %d played\n", u.Stats.Online.Won, u.Stats.Online.Total)
	if len(u.Friends) > 0 {
		fmt.Printf("Friends:  %s\n", strings.Join(u.Friends, ", "))
	}
}

func printGame(g model.Game) {
	fmt.Printf("ID:      %s\n", g.ID)
	fmt.Printf("State:   %s\n", g.State)
	fmt.Printf("Started: %s\n", g.StartTime)
	fmt.Printf("X:       %s\n", g.Players.X)
	fmt.Printf("O:       %s\n", g.Players.O)
	if len(g.Moves) > 0 {
		fmt.Println("Moves:")
		for i, m := range g.Moves {
			fmt.Printf("  %2d. %s at %d\n", i+1, m.Mark, m.Position)
		}
	}
	if g.WinIdx != nil {
		fmt.Printf("Winning line: %d\n", *g.WinIdx)
	}
}
