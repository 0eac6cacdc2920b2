package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/authz"
	"auction-backend/internal/models"
	"auction-backend/internal/repository/memory"
	"auction-backend/internal/worker"

	"github.com/stretchr/testify/require"
)

type auctionFixture struct {
	store   *memory.Store
	svc     *AuctionService
	pool    *worker.Pool
	seller  models.User
	buyer1  models.User
	buyer2  models.User
	product models.Product
	auction models.Auction
}

// newAuctionFixture seeds a seller with one product under an active auction
// opened at 10.
func newAuctionFixture(t *testing.T) *auctionFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	pool := worker.NewPool(1)
	t.Cleanup(pool.Stop)

	seller, err := store.Create(ctx, models.User{Username: "seller1", Email: "seller1@farm.test", Role: models.RoleSeller})
	require.NoError(t, err)
	buyer1, err := store.Create(ctx, models.User{Username: "buyer1", Email: "buyer1@farm.test", Role: models.RoleBuyer})
	require.NoError(t, err)
	buyer2, err := store.Create(ctx, models.User{Username: "buyer2", Email: "buyer2@farm.test", Role: models.RoleBuyer})
	require.NoError(t, err)

	product, err := store.CreateProduct(ctx, models.Product{Name: "Heirloom Tomatoes", SellerID: seller.ID, Price: 5, Quantity: 20})
	require.NoError(t, err)

	now := time.Now()
	auction, err := store.CreateAuction(ctx, models.Auction{
		ProductID:  product.ID,
		StartTime:  now.Add(-time.Minute),
		EndTime:    now.Add(time.Hour),
		CurrentBid: 10,
	})
	require.NoError(t, err)

	svc := NewAuctionService(store.Auctions(), store.Products(), store.Users(), store.EventLogs(), pool)
	return &auctionFixture{
		store: store, svc: svc, pool: pool,
		seller: seller, buyer1: buyer1, buyer2: buyer2,
		product: product, auction: auction,
	}
}

func TestSubmitBid_Sequence(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()

	a, err := f.svc.SubmitBid(ctx, f.auction.ID, f.buyer1.ID, 15)
	require.NoError(t, err)
	require.Equal(t, 15.0, a.CurrentBid)
	require.NotNil(t, a.BuyerID)
	require.Equal(t, f.buyer1.ID, *a.BuyerID)

	_, err = f.svc.SubmitBid(ctx, f.auction.ID, f.buyer2.ID, 12)
	require.ErrorIs(t, err, apperrors.ErrBidTooLow)

	a, err = f.svc.SubmitBid(ctx, f.auction.ID, f.buyer2.ID, 20)
	require.NoError(t, err)
	require.Equal(t, 20.0, a.CurrentBid)
	require.Equal(t, f.buyer2.ID, *a.BuyerID)

	// the rejected bid left no trace
	stored, err := f.store.GetAuction(ctx, f.auction.ID)
	require.NoError(t, err)
	require.Equal(t, 20.0, stored.CurrentBid)
	require.Equal(t, f.buyer2.ID, *stored.BuyerID)
}

func TestSubmitBid_Rejections(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	now := time.Now()

	closed, err := f.store.CreateAuction(ctx, models.Auction{
		ProductID:  f.product.ID,
		StartTime:  now.Add(-2 * time.Hour),
		EndTime:    now.Add(-time.Hour),
		CurrentBid: 5,
	})
	require.NoError(t, err)
	pending, err := f.store.CreateAuction(ctx, models.Auction{
		ProductID:  f.product.ID,
		StartTime:  now.Add(time.Hour),
		EndTime:    now.Add(2 * time.Hour),
		CurrentBid: 5,
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		auctionID string
		bidderID  string
		amount    float64
		wantErr   error
	}{
		{"missing_auction_id", "", f.buyer1.ID, 15, apperrors.ErrInvalidInput},
		{"missing_bidder_id", f.auction.ID, "", 15, apperrors.ErrInvalidInput},
		{"zero_amount", f.auction.ID, f.buyer1.ID, 0, apperrors.ErrInvalidInput},
		{"negative_amount", f.auction.ID, f.buyer1.ID, -3, apperrors.ErrInvalidInput},
		{"unknown_auction", "no-such-auction", f.buyer1.ID, 15, apperrors.ErrAuctionNotFound},
		{"unknown_bidder", f.auction.ID, "no-such-user", 15, apperrors.ErrUserNotFound},
		{"equal_to_current", f.auction.ID, f.buyer1.ID, 10, apperrors.ErrBidTooLow},
		{"closed_auction", closed.ID, f.buyer1.ID, 50, apperrors.ErrAuctionNotActive},
		{"pending_auction", pending.ID, f.buyer1.ID, 50, apperrors.ErrAuctionNotActive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.SubmitBid(ctx, tc.auctionID, tc.bidderID, tc.amount)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	// nothing above moved the bid
	stored, err := f.store.GetAuction(ctx, f.auction.ID)
	require.NoError(t, err)
	require.Equal(t, 10.0, stored.CurrentBid)
	require.Nil(t, stored.BuyerID)
}

func TestSubmitBid_ConcurrentHighestWins(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()

	const bidders = 25
	var wg sync.WaitGroup
	for i := 1; i <= bidders; i++ {
		wg.Add(1)
		go func(amount float64) {
			defer wg.Done()
			// losers get ErrBidTooLow; only the ordering guarantee matters here
			_, _ = f.svc.SubmitBid(ctx, f.auction.ID, f.buyer1.ID, amount)
		}(10 + float64(i))
	}
	wg.Wait()

	stored, err := f.store.GetAuction(ctx, f.auction.ID)
	require.NoError(t, err)
	require.Equal(t, 10.0+bidders, stored.CurrentBid)
	require.NotNil(t, stored.BuyerID)
}

func TestSubmitBid_RecordsEventLog(t *testing.T) {
	f := newAuctionFixture(t)

	_, err := f.svc.SubmitBid(context.Background(), f.auction.ID, f.buyer1.ID, 15)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		for _, ev := range f.store.Events() {
			if ev.Action == "bid_accepted" && ev.EntityID != nil && *ev.EntityID == f.auction.ID {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestTimeLeft(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()

	secs, err := f.svc.TimeLeft(ctx, f.auction.ID)
	require.NoError(t, err)
	require.Greater(t, secs, 0.0)
	require.LessOrEqual(t, secs, 3600.0)

	now := time.Now()
	closed, err := f.store.CreateAuction(ctx, models.Auction{
		ProductID: f.product.ID,
		StartTime: now.Add(-2 * time.Hour),
		EndTime:   now.Add(-time.Hour),
	})
	require.NoError(t, err)

	secs, err = f.svc.TimeLeft(ctx, closed.ID)
	require.NoError(t, err)
	require.Negative(t, secs)

	_, err = f.svc.TimeLeft(ctx, "no-such-auction")
	require.ErrorIs(t, err, apperrors.ErrAuctionNotFound)
}

func TestAuctionCreate_Authz(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()
	now := time.Now()
	in := AuctionInput{
		ProductID:  f.product.ID,
		StartTime:  now,
		EndTime:    now.Add(time.Hour),
		OpeningBid: 8,
	}

	_, err := f.svc.Create(ctx, authz.Actor{ID: f.buyer1.ID, Role: models.RoleBuyer}, in)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	otherSeller, err := f.store.Create(ctx, models.User{Username: "seller2", Email: "seller2@farm.test", Role: models.RoleSeller})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, authz.Actor{ID: otherSeller.ID, Role: models.RoleSeller}, in)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	a, err := f.svc.Create(ctx, authz.Actor{ID: f.seller.ID, Role: models.RoleSeller}, in)
	require.NoError(t, err)
	require.Equal(t, 8.0, a.CurrentBid)
	require.Nil(t, a.BuyerID)

	in.EndTime = in.StartTime
	_, err = f.svc.Create(ctx, authz.Actor{ID: f.seller.ID, Role: models.RoleSeller}, in)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAuctionUpdate_WindowOnly(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitBid(ctx, f.auction.ID, f.buyer1.ID, 15)
	require.NoError(t, err)

	newEnd := time.Now().Add(2 * time.Hour)
	a, err := f.svc.Update(ctx, authz.Actor{ID: f.seller.ID, Role: models.RoleSeller}, f.auction.ID, AuctionUpdate{EndTime: &newEnd})
	require.NoError(t, err)
	require.Equal(t, 15.0, a.CurrentBid)
	require.WithinDuration(t, newEnd, a.EndTime, time.Second)

	_, err = f.svc.Update(ctx, authz.Actor{ID: f.buyer1.ID, Role: models.RoleBuyer}, f.auction.ID, AuctionUpdate{EndTime: &newEnd})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuctionDelete_Authz(t *testing.T) {
	f := newAuctionFixture(t)
	ctx := context.Background()

	err := f.svc.Delete(ctx, authz.Actor{ID: f.buyer1.ID, Role: models.RoleBuyer}, f.auction.ID)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	err = f.svc.Delete(ctx, authz.Actor{ID: "someone", Role: models.RoleAdmin}, f.auction.ID)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.auction.ID)
	require.ErrorIs(t, err, apperrors.ErrAuctionNotFound)
}
