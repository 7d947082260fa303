package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/severedgames/mysteryparty/internal/api/handler"
	"github.com/severedgames/mysteryparty/internal/api/middleware"
	"github.com/severedgames/mysteryparty/internal/services/auth"
	"github.com/severedgames/mysteryparty/internal/services/chat"
	"github.com/severedgames/mysteryparty/internal/services/dm"
	"github.com/severedgames/mysteryparty/internal/services/persona"
	"github.com/severedgames/mysteryparty/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	PersonaService *persona.Service
	RoomService    *room.Service
	ChatService    *chat.Service
	DMService      *dm.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	personaHandler := handler.NewPersonaHandler(cfg.PersonaService)
	roomHandler := handler.NewRoomHandler(cfg.RoomService)
	messageHandler := handler.NewMessageHandler(cfg.RoomService, cfg.ChatService)
	dmHandler := handler.NewDMHandler(cfg.DMService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := middleware.RequireAdmin(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Login and health need no token
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else requires a valid bearer token
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/personas", personaHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/clues", personaHandler.MyClues).Methods(http.MethodGet)

	// Room access control is per-room membership, checked in the handlers
	protected.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{code}/messages", messageHandler.Recent).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{code}/messages", messageHandler.Post).Methods(http.MethodPost)
	protected.HandleFunc("/rooms/{code}/stream", messageHandler.Stream).Methods(http.MethodGet)

	// Direct message inbox belongs to the authenticated user
	protected.HandleFunc("/dm", dmHandler.Inbox).Methods(http.MethodGet)
	protected.HandleFunc("/dm/{id}/read", dmHandler.MarkRead).Methods(http.MethodPost)

	// Admin-only routes
	admin := protected.NewRoute().Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/clues/murder", personaHandler.MurderClues).Methods(http.MethodGet)
	admin.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/dm", dmHandler.Send).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
