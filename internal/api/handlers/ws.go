package handlers

import (
	"log/slog"
	"net/http"

	"auction-backend/internal/api/httpx"
	"auction-backend/internal/auth"
	"auction-backend/internal/hub"
	"auction-backend/internal/middleware"
	"auction-backend/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades authenticated requests into hub clients. Connecting
// to an auction's endpoint is the subscription; there is no separate
// subscribe message.
type WSHandler struct {
	hub      *hub.Hub
	tm       *auth.TokenManager
	users    repository.Users
	auctions repository.Auctions
	log      *slog.Logger

	upgrader websocket.Upgrader
}

func NewWSHandler(h *hub.Hub, tm *auth.TokenManager, users repository.Users, auctions repository.Auctions, log *slog.Logger) *WSHandler {
	return &WSHandler{
		hub:      h,
		tm:       tm,
		users:    users,
		auctions: auctions,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
		return
	}
	claims, err := h.tm.Parse(token)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid access token", nil)
		return
	}

	// Resolve identity against the users table so a deleted account cannot
	// keep chatting on a stale token.
	u, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}

	auctionID := chi.URLParam(r, "id")
	if _, err := h.auctions.GetByID(r.Context(), auctionID); err != nil {
		httpx.WriteDomainError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws upgrade", "err", err)
		return
	}

	c := hub.NewClient(h.hub, conn, u.ID, u.Username, auctionID)
	h.hub.Register(c)
	c.Start()
}
