package memory

import (
	"context"

	"auction-backend/internal/models"
	repo "auction-backend/internal/repository"
)

// The Store itself satisfies repository.Users; the remaining interfaces are
// exposed through thin views so one Store can back every repository.

func (s *Store) Users() repo.Users               { return s }
func (s *Store) Products() repo.Products         { return productsView{s} }
func (s *Store) Auctions() repo.Auctions         { return auctionsView{s} }
func (s *Store) ChatMessages() repo.ChatMessages { return chatView{s} }
func (s *Store) EventLogs() repo.EventLogs       { return eventsView{s} }

type productsView struct{ s *Store }

func (v productsView) Create(ctx context.Context, p models.Product) (models.Product, error) {
	return v.s.CreateProduct(ctx, p)
}
func (v productsView) GetByID(ctx context.Context, id string) (models.Product, error) {
	return v.s.GetProduct(ctx, id)
}
func (v productsView) List(ctx context.Context) ([]models.Product, error) {
	return v.s.ListProducts(ctx)
}
func (v productsView) Update(ctx context.Context, p models.Product) error {
	return v.s.UpdateProduct(ctx, p)
}
func (v productsView) Delete(ctx context.Context, id string) error {
	return v.s.DeleteProduct(ctx, id)
}

type auctionsView struct{ s *Store }

func (v auctionsView) Create(ctx context.Context, a models.Auction) (models.Auction, error) {
	return v.s.CreateAuction(ctx, a)
}
func (v auctionsView) GetByID(ctx context.Context, id string) (models.Auction, error) {
	return v.s.GetAuction(ctx, id)
}
func (v auctionsView) List(ctx context.Context) ([]models.Auction, error) {
	return v.s.ListAuctions(ctx)
}
func (v auctionsView) Update(ctx context.Context, a models.Auction) error {
	return v.s.UpdateAuction(ctx, a)
}
func (v auctionsView) Delete(ctx context.Context, id string) error {
	return v.s.DeleteAuction(ctx, id)
}
func (v auctionsView) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Auction, error) {
	return v.s.PlaceBid(ctx, auctionID, bidderID, amount)
}

type chatView struct{ s *Store }

func (v chatView) Create(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	return v.s.CreateMessage(ctx, m)
}
func (v chatView) ListByAuction(ctx context.Context, auctionID string) ([]models.ChatMessage, error) {
	return v.s.ListMessagesByAuction(ctx, auctionID)
}

type eventsView struct{ s *Store }

func (v eventsView) Create(ctx context.Context, l models.EventLog) error {
	return v.s.CreateEvent(ctx, l)
}
