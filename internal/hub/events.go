package hub

import "encoding/json"

// Wire protocol event names, client→server and server→client.
const (
	EventBidUpdate   = "bid_update"
	EventChatMessage = "chat_message"

	EventAuctionUpdate  = "auction_update"
	EventNewChatMessage = "new_chat_message"
	EventError          = "error"
)

// Envelope wraps every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// client → server

type BidUpdate struct {
	AuctionID string  `json:"auction_id"`
	BidValue  float64 `json:"bid_value"`
}

type ChatMessage struct {
	AuctionID string `json:"auction_id"`
	Message   string `json:"message"`
}

// server → client

type AuctionUpdate struct {
	AuctionID  string  `json:"auction_id,omitempty"`
	CurrentBid float64 `json:"current_bid,omitempty"`
	Message    string  `json:"message,omitempty"`
}

type NewChatMessage struct {
	User      string `json:"user"`
	Message   string `json:"message"`
	AuctionID string `json:"auction_id"`
}

type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
