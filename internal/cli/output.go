package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case LoginResult:
		o.printLoginResult(v)
	case PersonaList:
		o.printPersonaList(v)
	case Clues:
		o.printClues(v)
	case MurderClues:
		o.printMurderClues(v)
	case Room:
		o.printRoom(v)
	case RoomList:
		o.printRoomList(v)
	case MessageList:
		o.printMessageList(v)
	case Message:
		o.printMessage(v)
	case DirectMessageList:
		o.printDirectMessageList(v)
	case DirectMessage:
		o.printDirectMessage(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResult combines user and token
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Persona response type
type Persona struct {
	Username    string `json:"username"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

// PersonaList response type
type PersonaList struct {
	Personas []Persona `json:"personas"`
}

// Clues response type
type Clues struct {
	Clues []string `json:"clues"`
}

// MurderClues response type
type MurderClues struct {
	ToOuties []string `json:"to_outies"`
	ToInnies []string `json:"to_innies"`
}

// Room response type
type Room struct {
	Code      string    `json:"code"`
	PlayerA   string    `json:"player_a"`
	PlayerB   string    `json:"player_b"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomList response type
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// Message response type
type Message struct {
	ID      int64     `json:"id"`
	Sender  string    `json:"sender"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// MessageList response type
type MessageList struct {
	Messages []Message `json:"messages"`
	LastID   int64     `json:"last_id"`
}

// DirectMessage response type
type DirectMessage struct {
	ID        int64     `json:"id"`
	Admin     string    `json:"admin"`
	Recipient string    `json:"recipient"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	SentAt    time.Time `json:"sent_at"`
}

// DirectMessageList response type
type DirectMessageList struct {
	Messages []DirectMessage `json:"messages"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s\n", u.Username)
	fmt.Printf("Role: %s\n", u.Role)
}

func (o *Output) printLoginResult(l LoginResult) {
	o.printUser(l.User)
	fmt.Printf("Token: %s\n", l.Token)
}

func (o *Output) printPersonaList(l PersonaList) {
	fmt.Printf("Personas (%d):\n", len(l.Personas))
	for _, p := range l.Personas {
		fmt.Printf("  %s [%s]\n    %s\n", p.Username, p.Group, p.Description)
	}
}

func (o *Output) printClues(c Clues) {
	fmt.Printf("Clues (%d):\n", len(c.Clues))
	for _, clue := range c.Clues {
		fmt.Printf("  - %s\n", clue)
	}
}

func (o *Output) printMurderClues(c MurderClues) {
	fmt.Println("To outies:")
	for _, clue := range c.ToOuties {
		fmt.Printf("  - %s\n", clue)
	}
	fmt.Println("To innies:")
	for _, clue := range c.ToInnies {
		fmt.Printf("  - %s\n", clue)
	}
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.Code)
	fmt.Printf("Players: %s, %s\n", r.PlayerA, r.PlayerB)
	fmt.Printf("Created: %s\n", r.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printRoomList(l RoomList) {
	fmt.Printf("Rooms (%d):\n", len(l.Rooms))
	for _, r := range l.Rooms {
		fmt.Printf("  %s - %s, %s\n", r.Code, r.PlayerA, r.PlayerB)
	}
}

func (o *Output) printMessage(m Message) {
	fmt.Printf("[%d] %s %s: %s\n", m.ID, m.SentAt.Format("15:04:05"), m.Sender, m.Content)
}

func (o *Output) printMessageList(l MessageList) {
	for _, m := range l.Messages {
		o.printMessage(m)
	}
}

func (o *Output) printDirectMessage(d DirectMessage) {
	readStr := " (unread)"
	if d.Read {
		readStr = ""
	}
	fmt.Printf("[%d] %s from %s%s: %s\n", d.ID, d.SentAt.Format("15:04:05"), d.Admin, readStr, d.Content)
}

func (o *Output) printDirectMessageList(l DirectMessageList) {
	fmt.Printf("Direct messages (%d):\n", len(l.Messages))
	for _, d := range l.Messages {
		o.printDirectMessage(d)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
