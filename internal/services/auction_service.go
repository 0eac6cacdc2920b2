package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/authz"
	"auction-backend/internal/metrics"
	"auction-backend/internal/models"
	repo "auction-backend/internal/repository"
	"auction-backend/internal/worker"
)

// AuctionService is the single authoritative point for reading and mutating
// an auction's bid state. Nothing else writes current_bid or buyer_id.
type AuctionService struct {
	auctions repo.Auctions
	products repo.Products
	users    repo.Users
	events   repo.EventLogs
	wp       *worker.Pool
}

func NewAuctionService(a repo.Auctions, p repo.Products, u repo.Users, ev repo.EventLogs, wp *worker.Pool) *AuctionService {
	return &AuctionService{auctions: a, products: p, users: u, events: ev, wp: wp}
}

// SubmitBid validates a bid attempt and applies it through the repository's
// increase-if-greater compare-and-set. Preconditions are checked in order:
// auction exists, window active, amount strictly above the current bid,
// bidder exists. The prechecks give deterministic rejections; the CAS closes
// the race between concurrent bidders, and a CAS loser is rejected rather
// than overwriting committed state.
func (s *AuctionService) SubmitBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Auction, error) {
	a, err := s.submitBid(ctx, auctionID, bidderID, amount)
	if err != nil {
		metrics.BidsRejected.WithLabelValues(rejectionReason(err)).Inc()
		return models.Auction{}, err
	}
	metrics.BidsAccepted.Inc()
	s.record("auction", a.ID, "bid_accepted", map[string]any{
		"amount":    amount,
		"bidder_id": bidderID,
	})
	return a, nil
}

func (s *AuctionService) submitBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Auction, error) {
	if auctionID == "" || bidderID == "" {
		return models.Auction{}, fmt.Errorf("%w: missing auction or bidder id", apperrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return models.Auction{}, fmt.Errorf("%w: bid must be a positive amount", apperrors.ErrInvalidInput)
	}

	a, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return models.Auction{}, err
	}
	now := time.Now()
	if !a.ActiveAt(now) {
		return models.Auction{}, fmt.Errorf("%w: auction is %s", apperrors.ErrAuctionNotActive, a.StateAt(now))
	}
	if amount <= a.CurrentBid {
		return models.Auction{}, fmt.Errorf("%w: current bid is %.2f", apperrors.ErrBidTooLow, a.CurrentBid)
	}
	if _, err := s.users.GetByID(ctx, bidderID); err != nil {
		return models.Auction{}, err
	}

	return s.auctions.PlaceBid(ctx, auctionID, bidderID, amount)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrAuctionNotActive):
		return "not_active"
	case errors.Is(err, apperrors.ErrBidTooLow):
		return "too_low"
	case errors.Is(err, apperrors.ErrAuctionNotFound), errors.Is(err, apperrors.ErrUserNotFound):
		return "not_found"
	default:
		return "invalid"
	}
}

// TimeLeft returns seconds until the auction ends; negative means closed.
func (s *AuctionService) TimeLeft(ctx context.Context, auctionID string) (float64, error) {
	a, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return 0, err
	}
	return a.TimeLeftAt(time.Now()), nil
}

type AuctionInput struct {
	ProductID  string
	StartTime  time.Time
	EndTime    time.Time
	OpeningBid float64
}

func (s *AuctionService) Create(ctx context.Context, actor authz.Actor, in AuctionInput) (models.Auction, error) {
	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return models.Auction{}, err
	}
	if !authz.Can(actor, authz.AuctionCreate, authz.Resource{OwnerID: p.SellerID}) {
		return models.Auction{}, fmt.Errorf("%w: only the product's seller can create its auction", apperrors.ErrForbidden)
	}
	a := models.Auction{
		ProductID:  in.ProductID,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		CurrentBid: in.OpeningBid,
	}
	if err := a.Validate(); err != nil {
		return models.Auction{}, err
	}
	created, err := s.auctions.Create(ctx, a)
	if err != nil {
		return models.Auction{}, err
	}
	s.record("auction", created.ID, "created", map[string]any{"product_id": created.ProductID})
	return created, nil
}

type AuctionUpdate struct {
	StartTime *time.Time
	EndTime   *time.Time
}

// Update changes the auction's time window. The bid pair is reachable only
// through SubmitBid.
func (s *AuctionService) Update(ctx context.Context, actor authz.Actor, id string, upd AuctionUpdate) (models.Auction, error) {
	a, err := s.auctions.GetByID(ctx, id)
	if err != nil {
		return models.Auction{}, err
	}
	p, err := s.products.GetByID(ctx, a.ProductID)
	if err != nil {
		return models.Auction{}, err
	}
	if !authz.Can(actor, authz.AuctionUpdate, authz.Resource{OwnerID: p.SellerID}) {
		return models.Auction{}, fmt.Errorf("%w: not your auction", apperrors.ErrForbidden)
	}
	if upd.StartTime != nil {
		a.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		a.EndTime = *upd.EndTime
	}
	if err := a.Validate(); err != nil {
		return models.Auction{}, err
	}
	if err := s.auctions.Update(ctx, a); err != nil {
		return models.Auction{}, err
	}
	return a, nil
}

func (s *AuctionService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	a, err := s.auctions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.products.GetByID(ctx, a.ProductID)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.AuctionDelete, authz.Resource{OwnerID: p.SellerID}) {
		return fmt.Errorf("%w: not your auction", apperrors.ErrForbidden)
	}
	return s.auctions.Delete(ctx, id)
}

func (s *AuctionService) Get(ctx context.Context, id string) (models.Auction, error) {
	return s.auctions.GetByID(ctx, id)
}

func (s *AuctionService) List(ctx context.Context) ([]models.Auction, error) {
	return s.auctions.List(ctx)
}

// record writes an event log entry off the request path. Broadcast and
// response ordering never wait on it.
func (s *AuctionService) record(entityType, entityID, action string, details map[string]any) {
	id := entityID
	s.wp.Submit(func() {
		_ = s.events.Create(context.Background(), models.EventLog{
			EntityType: entityType,
			EntityID:   &id,
			Action:     action,
			Details:    details,
		})
	})
}
