package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomRequest is the request body for creating a chat room
type CreateRoomRequest struct {
	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b"`
}

// PostMessageRequest is the request body for sending a room message
type PostMessageRequest struct {
	Content string `json:"content"`
}

// SendDirectMessageRequest is the request body for an admin direct message
type SendDirectMessageRequest struct {
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}
