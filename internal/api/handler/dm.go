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
	"github.com/severedgames/mysteryparty/internal/services/dm"
)

// DMHandler handles direct message endpoints
type DMHandler struct {
	dmService *dm.Service
}

// NewDMHandler creates a new direct message handler
func NewDMHandler(dmService *dm.Service) *DMHandler {
	return &DMHandler{
		dmService: dmService,
	}
}

// Send handles POST /api/dm
func (h *DMHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.SendDirectMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Recipient == "" {
		WriteError(w, NewInvalidRequestError("recipient is required"))
		return
	}

	sent, err := h.dmService.Send(r.Context(), user, model.Username(req.Recipient), req.Content)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.DirectMessageFromModel(sent))
}

// Inbox handles GET /api/dm
func (h *DMHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	inbox, err := h.dmService.InboxFor(r.Context(), user.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := response.DirectMessageList{Messages: make([]response.DirectMessage, len(inbox))}
	for i, d := range inbox {
		out.Messages[i] = response.DirectMessageFromModel(d)
	}
	response.JSON(w, http.StatusOK, out)
}

// MarkRead handles POST /api/dm/{id}/read
func (h *DMHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, NewInvalidRequestError("id must be a positive integer"))
		return
	}

	if err := h.dmService.MarkRead(r.Context(), user.Username, model.DirectMessageID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
