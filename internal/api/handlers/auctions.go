package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"auction-backend/internal/api/httpx"
	"auction-backend/internal/middleware"
	"auction-backend/internal/models"
	"auction-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

type AuctionsHandler struct {
	auctions *services.AuctionService
	chat     *services.ChatService
}

func NewAuctionsHandler(as *services.AuctionService, cs *services.ChatService) *AuctionsHandler {
	return &AuctionsHandler{auctions: as, chat: cs}
}

func (h *AuctionsHandler) List(w http.ResponseWriter, r *http.Request) {
	auctions, err := h.auctions.List(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, auctions)
}

func (h *AuctionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.auctions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

// TimeLeft reports seconds until the auction closes; negative values mean
// it already has.
func (h *AuctionsHandler) TimeLeft(w http.ResponseWriter, r *http.Request) {
	secs, err := h.auctions.TimeLeft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]float64{"time_left_seconds": secs})
}

type auctionCreateReq struct {
	ProductID  string    `json:"product_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	OpeningBid float64   `json:"current_bid"`
}

func (h *AuctionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var req auctionCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid request payload", nil)
		return
	}
	a, err := h.auctions.Create(r.Context(), actor, services.AuctionInput{
		ProductID:  req.ProductID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		OpeningBid: req.OpeningBid,
	})
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, a)
}

type auctionUpdateReq struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

func (h *AuctionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var req auctionUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid request payload", nil)
		return
	}
	a, err := h.auctions.Update(r.Context(), actor, chi.URLParam(r, "id"), services.AuctionUpdate{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

func (h *AuctionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	if err := h.auctions.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "auction deleted"})
}

func (h *AuctionsHandler) Messages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.chat.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	httpx.WriteJSON(w, http.StatusOK, msgs)
}
