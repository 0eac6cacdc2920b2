package repository

import (
	"context"

	"auction-backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) error
	Delete(ctx context.Context, id string) error
}

type Products interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
}

type Auctions interface {
	Create(ctx context.Context, a models.Auction) (models.Auction, error)
	GetByID(ctx context.Context, id string) (models.Auction, error)
	List(ctx context.Context) ([]models.Auction, error)
	Update(ctx context.Context, a models.Auction) error
	Delete(ctx context.Context, id string) error

	// PlaceBid sets current_bid and buyer_id together, iff the auction is
	// active and amount exceeds the stored bid. It is a single conditional
	// write, never read-then-write; concurrent losers get
	// apperrors.ErrBidTooLow (or ErrAuctionNotActive if the window closed).
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Auction, error)
}

type ChatMessages interface {
	Create(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error)
	ListByAuction(ctx context.Context, auctionID string) ([]models.ChatMessage, error)
}

type EventLogs interface {
	Create(ctx context.Context, l models.EventLog) error
}
