package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/severedgames/mysteryparty/internal/api/middleware"
	"github.com/severedgames/mysteryparty/internal/api/request"
	"github.com/severedgames/mysteryparty/internal/api/response"
	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/services/chat"
	"github.com/severedgames/mysteryparty/internal/services/room"
)

// MessageHandler handles room message endpoints
type MessageHandler struct {
	roomService *room.Service
	chatService *chat.Service
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(roomService *room.Service, chatService *chat.Service) *MessageHandler {
	return &MessageHandler{
		roomService: roomService,
		chatService: chatService,
	}
}

// resolveRoom loads the room and checks the caller may access it. Unknown
// codes surface as not-found before any membership check.
func (h *MessageHandler) resolveRoom(r *http.Request) (*model.Room, error) {
	user := middleware.MustGetUser(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	found, err := h.roomService.Get(r.Context(), code)
	if err != nil {
		return nil, err
	}
	if err := room.Authorize(user, found); err != nil {
		return nil, err
	}
	return found, nil
}

// Post handles POST /api/rooms/{code}/messages
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	found, err := h.resolveRoom(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	msg, err := h.chatService.Post(r.Context(), found.Code, user.Username, req.Content)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MessageFromModel(msg))
}

// Recent handles GET /api/rooms/{code}/messages
func (h *MessageHandler) Recent(w http.ResponseWriter, r *http.Request) {
	found, err := h.resolveRoom(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	msgs, err := h.chatService.Recent(r.Context(), found.Code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageListFromModel(msgs))
}

// Stream handles GET /api/rooms/{code}/stream?after=N
//
// Returns the page of messages newer than the cursor and never holds the
// request open. An empty page means the client should poll again later.
func (h *MessageHandler) Stream(w http.ResponseWriter, r *http.Request) {
	found, err := h.resolveRoom(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	afterID, err := parseAfter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	msgs, err := h.chatService.Since(r.Context(), found.Code, afterID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageListFromModel(msgs))
}

func parseAfter(r *http.Request) (model.MessageID, error) {
	raw := r.URL.Query().Get("after")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, NewInvalidRequestError("after must be a non-negative integer")
	}
	return model.MessageID(n), nil
}
