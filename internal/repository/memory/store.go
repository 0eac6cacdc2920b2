// Package memory is a concurrency-safe in-memory implementation of the
// repository interfaces, used by tests and local development without a
// database. PlaceBid holds the same increase-if-greater contract as the
// postgres implementation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/models"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	products map[string]models.Product
	auctions map[string]models.Auction
	messages map[string][]models.ChatMessage // auction id -> ordered messages
	events   []models.EventLog
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]models.User),
		products: make(map[string]models.Product),
		auctions: make(map[string]models.Auction),
		messages: make(map[string][]models.ChatMessage),
	}
}

// ---- Users ----

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return models.User{}, apperrors.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return models.User{}, apperrors.ErrEmailTaken
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrUserNotFound
}

func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrUserNotFound
}

func (s *Store) List(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) Update(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = u
	return nil
}

// Delete removes a user and cascades: owned products (and their auctions),
// authored messages; auctions the user was leading keep running with the
// buyer reference cleared.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.users, id)

	for pid, p := range s.products {
		if p.SellerID != id {
			continue
		}
		delete(s.products, pid)
		for aid, a := range s.auctions {
			if a.ProductID == pid {
				delete(s.auctions, aid)
				delete(s.messages, aid)
			}
		}
	}
	for aid, a := range s.auctions {
		if a.BuyerID != nil && *a.BuyerID == id {
			a.BuyerID = nil
			s.auctions[aid] = a
		}
	}
	for aid, msgs := range s.messages {
		kept := msgs[:0]
		for _, m := range msgs {
			if m.UserID != id {
				kept = append(kept, m)
			}
		}
		s.messages[aid] = kept
	}
	return nil
}

// ---- Products ----

func (s *Store) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	s.products[p.ID] = p
	return p, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, apperrors.ErrProductNotFound
	}
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return apperrors.ErrProductNotFound
	}
	s.products[p.ID] = p
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return apperrors.ErrProductNotFound
	}
	delete(s.products, id)
	for aid, a := range s.auctions {
		if a.ProductID == id {
			delete(s.auctions, aid)
			delete(s.messages, aid)
		}
	}
	return nil
}

// ---- Auctions ----

func (s *Store) CreateAuction(ctx context.Context, a models.Auction) (models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()
	s.auctions[a.ID] = a
	return a, nil
}

func (s *Store) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.auctions[id]
	if !ok {
		return models.Auction{}, apperrors.ErrAuctionNotFound
	}
	return a, nil
}

func (s *Store) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (s *Store) UpdateAuction(ctx context.Context, a models.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.auctions[a.ID]
	if !ok {
		return apperrors.ErrAuctionNotFound
	}
	existing.StartTime = a.StartTime
	existing.EndTime = a.EndTime
	s.auctions[a.ID] = existing
	return nil
}

func (s *Store) DeleteAuction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.auctions[id]; !ok {
		return apperrors.ErrAuctionNotFound
	}
	delete(s.auctions, id)
	delete(s.messages, id)
	return nil
}

// PlaceBid applies current_bid and buyer_id together under the write lock,
// mirroring the conditional UPDATE of the postgres repository.
func (s *Store) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return models.Auction{}, apperrors.ErrAuctionNotFound
	}
	if !a.ActiveAt(time.Now()) {
		return models.Auction{}, apperrors.ErrAuctionNotActive
	}
	if amount <= a.CurrentBid {
		return models.Auction{}, apperrors.ErrBidTooLow
	}
	a.CurrentBid = amount
	bidder := bidderID
	a.BuyerID = &bidder
	s.auctions[auctionID] = a
	return a, nil
}

// ---- Chat messages ----

func (s *Store) CreateMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.messages[m.AuctionID] = append(s.messages[m.AuctionID], m)
	return m, nil
}

func (s *Store) ListMessagesByAuction(ctx context.Context, auctionID string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[auctionID]
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	for i := range out {
		if u, ok := s.users[out[i].UserID]; ok {
			out[i].Username = u.Username
		}
	}
	return out, nil
}

// ---- Event logs ----

func (s *Store) CreateEvent(ctx context.Context, l models.EventLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now().UTC()
	s.events = append(s.events, l)
	return nil
}

// Events returns a snapshot of recorded event logs. Intended for tests.
func (s *Store) Events() []models.EventLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.EventLog, len(s.events))
	copy(out, s.events)
	return out
}
