package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parlorhub/gameroom-go/internal/api/handler"
	apimiddleware "github.com/parlorhub/gameroom-go/internal/api/middleware"
	"github.com/parlorhub/gameroom-go/internal/events"
	"github.com/parlorhub/gameroom-go/internal/middleware"
	"github.com/parlorhub/gameroom-go/internal/services/auth"
	"github.com/parlorhub/gameroom-go/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	RoomController room.ControllerInterface
	HubManager     *events.HubManager
	Broadcaster    *events.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.Broadcaster)
	gameHandler := handler.NewGameHandler(cfg.RoomController, cfg.Broadcaster, cfg.HubManager)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Hosted game catalog (no auth)
	api.HandleFunc("/games", gameHandler.ListTypes).Methods(http.MethodGet)

	// Room routes (all require auth)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("", roomHandler.List).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/leave", roomHandler.Leave).Methods(http.MethodPost)

	// Game routes within a room
	rooms.HandleFunc("/{code}/game", gameHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/game", gameHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/game/moves", gameHandler.Move).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/game/restart", gameHandler.Restart).Methods(http.MethodPost)

	// Live updates over SSE
	rooms.HandleFunc("/{code}/events", gameHandler.Events).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
