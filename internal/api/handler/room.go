package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/severedgames/mysteryparty/internal/api/middleware"
	"github.com/severedgames/mysteryparty/internal/api/request"
	"github.com/severedgames/mysteryparty/internal/api/response"
	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/services/room"
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	roomService *room.Service
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *room.Service) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// Create handles POST /api/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerA == "" || req.PlayerB == "" {
		WriteError(w, NewInvalidRequestError("player_a and player_b are required"))
		return
	}
	if req.PlayerA == req.PlayerB {
		WriteError(w, NewInvalidRequestError("players must be distinct"))
		return
	}

	created, err := h.roomService.Create(r.Context(), model.Username(req.PlayerA), model.Username(req.PlayerB))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// List handles GET /api/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := response.RoomList{Rooms: make([]response.Room, len(rooms))}
	for i, rm := range rooms {
		out.Rooms[i] = response.RoomFromModel(rm)
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	// Resolve first so an unknown code is a 404 even for non-members.
	found, err := h.roomService.Get(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := room.Authorize(user, found); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}
