package response

import (
	"time"

	"github.com/severedgames/mysteryparty/internal/model"
)

// User represents a user in API responses
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		Username: string(u.Username),
		Role:     string(u.Role),
	}
}

// LoginResponse is the response for the login endpoint
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Persona represents a cover identity in API responses
type Persona struct {
	Username    string `json:"username"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

// PersonaFromModel converts model.Persona
func PersonaFromModel(p *model.Persona) Persona {
	return Persona{
		Username:    string(p.Username),
		Group:       string(p.Group),
		Description: p.Description,
	}
}

// PersonaList wraps a list of personas
type PersonaList struct {
	Personas []Persona `json:"personas"`
}

// Clues is a user's personal clue list
type Clues struct {
	Clues []string `json:"clues"`
}

// MurderClues are the privileged clue sets
type MurderClues struct {
	ToOuties []string `json:"to_outies"`
	ToInnies []string `json:"to_innies"`
}

// MurderCluesFromModel converts model.MurderClues
func MurderCluesFromModel(c *model.MurderClues) MurderClues {
	return MurderClues{
		ToOuties: c.ToOuties,
		ToInnies: c.ToInnies,
	}
}

// Room represents a chat room in API responses
type Room struct {
	Code      string    `json:"code"`
	PlayerA   string    `json:"player_a"`
	PlayerB   string    `json:"player_b"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	return Room{
		Code:      string(r.Code),
		PlayerA:   string(r.PlayerA),
		PlayerB:   string(r.PlayerB),
		CreatedAt: r.CreatedAt,
	}
}

// RoomList wraps a list of rooms
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// Message represents a room message in API responses
type Message struct {
	ID      int64     `json:"id"`
	Sender  string    `json:"sender"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// MessageFromModel converts model.Message
func MessageFromModel(m *model.Message) Message {
	return Message{
		ID:      int64(m.ID),
		Sender:  string(m.Sender),
		Content: m.Content,
		SentAt:  m.SentAt,
	}
}

// MessageList wraps a page of messages. LastID is the cursor to pass as
// "after" on the next poll; zero when the page is empty.
type MessageList struct {
	Messages []Message `json:"messages"`
	LastID   int64     `json:"last_id"`
}

// MessageListFromModel builds a MessageList from an ascending page
func MessageListFromModel(msgs []*model.Message) MessageList {
	out := MessageList{Messages: make([]Message, len(msgs))}
	for i, m := range msgs {
		out.Messages[i] = MessageFromModel(m)
	}
	if len(msgs) > 0 {
		out.LastID = int64(msgs[len(msgs)-1].ID)
	}
	return out
}

// DirectMessage represents an admin note in API responses
type DirectMessage struct {
	ID        int64     `json:"id"`
	Admin     string    `json:"admin"`
	Recipient string    `json:"recipient"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	SentAt    time.Time `json:"sent_at"`
}

// DirectMessageFromModel converts model.DirectMessage
func DirectMessageFromModel(d *model.DirectMessage) DirectMessage {
	return DirectMessage{
		ID:        int64(d.ID),
		Admin:     string(d.Admin),
		Recipient: string(d.Recipient),
		Content:   d.Content,
		Read:      d.Read,
		SentAt:    d.SentAt,
	}
}

// DirectMessageList wraps a direct message inbox
type DirectMessageList struct {
	Messages []DirectMessage `json:"messages"`
}
