package models

import (
	"fmt"
	"time"

	"auction-backend/internal/apperrors"
)

type AuctionState string

const (
	AuctionPending AuctionState = "pending"
	AuctionActive  AuctionState = "active"
	AuctionClosed  AuctionState = "closed"
)

// Auction holds the authoritative bid state for one product listing.
// CurrentBid and BuyerID always change together through the repository's
// conditional bid update; nothing else writes them.
type Auction struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	CurrentBid float64   `json:"current_bid"`
	BuyerID    *string   `json:"buyer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// StateAt derives the lifecycle state from the auction's time window.
func (a *Auction) StateAt(now time.Time) AuctionState {
	switch {
	case now.Before(a.StartTime):
		return AuctionPending
	case now.Before(a.EndTime):
		return AuctionActive
	default:
		return AuctionClosed
	}
}

// ActiveAt reports whether now falls in the half-open window [start, end).
func (a *Auction) ActiveAt(now time.Time) bool {
	return !now.Before(a.StartTime) && now.Before(a.EndTime)
}

// TimeLeftAt returns seconds until the auction ends; negative means closed.
func (a *Auction) TimeLeftAt(now time.Time) float64 {
	return a.EndTime.Sub(now).Seconds()
}

func (a *Auction) Validate() error {
	if a.ProductID == "" {
		return fmt.Errorf("%w: product required", apperrors.ErrInvalidInput)
	}
	if !a.EndTime.After(a.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", apperrors.ErrInvalidInput)
	}
	if a.CurrentBid < 0 {
		return fmt.Errorf("%w: opening bid must be non-negative", apperrors.ErrInvalidInput)
	}
	return nil
}
