// Package hub fans bid and chat events out to every connection subscribed
// to an auction's channel. The Hub is an explicitly owned instance: it
// starts with an empty registry and Close drops every connection.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/metrics"
	"auction-backend/internal/models"
)

// BidSubmitter is the auction state manager as the hub sees it.
type BidSubmitter interface {
	SubmitBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Auction, error)
}

// ChatPoster persists a chat message before it may be broadcast.
type ChatPoster interface {
	Post(ctx context.Context, authorID, auctionID, text string) (models.ChatMessage, error)
}

type Hub struct {
	bids BidSubmitter
	chat ChatPoster
	log  *slog.Logger

	// mu also serializes Broadcast enqueues: all subscribers of one channel
	// see events in the same relative order.
	mu       sync.Mutex
	channels map[string]map[*Client]struct{}
	closed   bool
}

func New(bids BidSubmitter, chat ChatPoster, log *slog.Logger) *Hub {
	return &Hub{
		bids:     bids,
		chat:     chat,
		log:      log,
		channels: make(map[string]map[*Client]struct{}),
	}
}

// Register subscribes the client to its auction channel and delivers the
// welcome event to that client only.
func (h *Hub) Register(c *Client) {
	welcome, err := encode(EventAuctionUpdate, AuctionUpdate{Message: "welcome"})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		c.close()
		return
	}
	subs := h.channels[c.auctionID]
	if subs == nil {
		subs = make(map[*Client]struct{})
		h.channels[c.auctionID] = subs
	}
	subs[c] = struct{}{}
	metrics.WSConnections.Inc()
	h.log.Info("ws connected", "user", c.username, "auction_id", c.auctionID)

	c.enqueue(welcome)
}

// Unregister releases the client's subscription. Safe to call more than
// once; no broadcast is emitted.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	subs, ok := h.channels[c.auctionID]
	if !ok {
		return
	}
	if _, ok := subs[c]; !ok {
		return
	}
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.channels, c.auctionID)
	}
	metrics.WSConnections.Dec()
	c.close()
	h.log.Info("ws disconnected", "user", c.username, "auction_id", c.auctionID)
}

// Broadcast delivers one event to every current subscriber of the auction's
// channel. A subscriber whose send buffer is full is dropped rather than
// allowed to stall the channel.
func (h *Hub) Broadcast(auctionID, event string, data any) {
	msg, err := encode(event, data)
	if err != nil {
		h.log.Error("encode broadcast", "event", event, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.channels[auctionID] {
		if !c.enqueue(msg) {
			h.removeLocked(c)
		}
	}
}

// Close drops all connections and rejects further registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, subs := range h.channels {
		for c := range subs {
			metrics.WSConnections.Dec()
			c.close()
		}
	}
	h.channels = make(map[string]map[*Client]struct{})
}

// Subscribers reports the current size of one auction channel.
func (h *Hub) Subscribers(auctionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels[auctionID])
}

// handle dispatches one inbound message from a connection. Failures are
// answered on that connection only and never reach other subscribers.
func (h *Hub) handle(ctx context.Context, c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.sendError(c, "invalid_payload", "malformed event")
		return
	}

	switch env.Event {
	case EventBidUpdate:
		var req BidUpdate
		if err := json.Unmarshal(env.Data, &req); err != nil || req.AuctionID == "" {
			h.sendError(c, "invalid_payload", "bid_update requires auction_id and bid_value")
			return
		}
		if req.AuctionID != c.auctionID {
			h.sendError(c, "wrong_channel", "this connection is subscribed to another auction")
			return
		}
		a, err := h.bids.SubmitBid(ctx, req.AuctionID, c.userID, req.BidValue)
		if err != nil {
			h.sendError(c, errorCode(err), err.Error())
			return
		}
		h.Broadcast(c.auctionID, EventAuctionUpdate, AuctionUpdate{
			AuctionID:  a.ID,
			CurrentBid: a.CurrentBid,
		})

	case EventChatMessage:
		var req ChatMessage
		if err := json.Unmarshal(env.Data, &req); err != nil || req.AuctionID == "" || req.Message == "" {
			h.sendError(c, "invalid_payload", "chat_message requires auction_id and message")
			return
		}
		if req.AuctionID != c.auctionID {
			h.sendError(c, "wrong_channel", "this connection is subscribed to another auction")
			return
		}
		m, err := h.chat.Post(ctx, c.userID, req.AuctionID, req.Message)
		if err != nil {
			h.sendError(c, errorCode(err), err.Error())
			return
		}
		metrics.ChatMessagesTotal.Inc()
		h.Broadcast(c.auctionID, EventNewChatMessage, NewChatMessage{
			User:      m.Username,
			Message:   m.Message,
			AuctionID: m.AuctionID,
		})

	default:
		h.sendError(c, "unknown_event", "unknown event "+env.Event)
	}
}

func (h *Hub) sendError(c *Client, code, msg string) {
	payload, err := encode(EventError, ErrorEvent{Code: code, Message: msg})
	if err != nil {
		return
	}
	if !c.enqueue(payload) {
		h.Unregister(c)
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrAuctionNotFound):
		return "auction_not_found"
	case errors.Is(err, apperrors.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, apperrors.ErrAuctionNotActive):
		return "auction_not_active"
	case errors.Is(err, apperrors.ErrBidTooLow):
		return "bid_too_low"
	case errors.Is(err, apperrors.ErrInvalidInput):
		return "invalid_payload"
	default:
		return "internal_error"
	}
}
