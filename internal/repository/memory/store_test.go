package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func seedActiveAuction(t *testing.T, s *Store) (models.User, models.Auction) {
	t.Helper()
	ctx := context.Background()
	seller, err := s.Create(ctx, models.User{Username: "seller", Email: "seller@farm.test", Role: models.RoleSeller})
	require.NoError(t, err)
	p, err := s.CreateProduct(ctx, models.Product{Name: "Cabbages", SellerID: seller.ID})
	require.NoError(t, err)
	a, err := s.CreateAuction(ctx, models.Auction{
		ProductID:  p.ID,
		StartTime:  time.Now().Add(-time.Minute),
		EndTime:    time.Now().Add(time.Hour),
		CurrentBid: 10,
	})
	require.NoError(t, err)
	return seller, a
}

func TestPlaceBid_Conditional(t *testing.T) {
	s := NewStore()
	_, a := seedActiveAuction(t, s)
	ctx := context.Background()

	got, err := s.PlaceBid(ctx, a.ID, "bidder-1", 15)
	require.NoError(t, err)
	require.Equal(t, 15.0, got.CurrentBid)
	require.Equal(t, "bidder-1", *got.BuyerID)

	_, err = s.PlaceBid(ctx, a.ID, "bidder-2", 15)
	require.ErrorIs(t, err, apperrors.ErrBidTooLow)
	_, err = s.PlaceBid(ctx, a.ID, "bidder-2", 12)
	require.ErrorIs(t, err, apperrors.ErrBidTooLow)
	_, err = s.PlaceBid(ctx, "missing", "bidder-2", 20)
	require.ErrorIs(t, err, apperrors.ErrAuctionNotFound)

	// losing attempts never touched the stored pair
	stored, err := s.GetAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 15.0, stored.CurrentBid)
	require.Equal(t, "bidder-1", *stored.BuyerID)
}

func TestPlaceBid_ClosedWindow(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seller, err := s.Create(ctx, models.User{Username: "seller", Email: "seller@farm.test"})
	require.NoError(t, err)
	p, err := s.CreateProduct(ctx, models.Product{Name: "Onions", SellerID: seller.ID})
	require.NoError(t, err)
	a, err := s.CreateAuction(ctx, models.Auction{
		ProductID: p.ID,
		StartTime: time.Now().Add(-2 * time.Hour),
		EndTime:   time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = s.PlaceBid(ctx, a.ID, "bidder-1", 50)
	require.ErrorIs(t, err, apperrors.ErrAuctionNotActive)
}

func TestPlaceBid_Concurrent(t *testing.T) {
	s := NewStore()
	_, a := seedActiveAuction(t, s)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(amount float64) {
			defer wg.Done()
			_, _ = s.PlaceBid(ctx, a.ID, "bidder", amount)
		}(10 + float64(i))
	}
	wg.Wait()

	stored, err := s.GetAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 60.0, stored.CurrentBid)
}

func TestUpdateAuction_WindowOnly(t *testing.T) {
	s := NewStore()
	_, a := seedActiveAuction(t, s)
	ctx := context.Background()

	_, err := s.PlaceBid(ctx, a.ID, "bidder-1", 15)
	require.NoError(t, err)

	a.StartTime = a.StartTime.Add(-time.Hour)
	a.EndTime = a.EndTime.Add(time.Hour)
	a.CurrentBid = 999 // must be ignored
	require.NoError(t, s.UpdateAuction(ctx, a))

	stored, err := s.GetAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 15.0, stored.CurrentBid)
	require.Equal(t, "bidder-1", *stored.BuyerID)
	require.WithinDuration(t, a.EndTime, stored.EndTime, time.Second)
}

func TestDeleteUser_Cascades(t *testing.T) {
	s := NewStore()
	seller, a := seedActiveAuction(t, s)
	ctx := context.Background()

	buyer, err := s.Create(ctx, models.User{Username: "buyer", Email: "buyer@farm.test"})
	require.NoError(t, err)
	_, err = s.PlaceBid(ctx, a.ID, buyer.ID, 20)
	require.NoError(t, err)
	_, err = s.CreateMessage(ctx, models.ChatMessage{UserID: buyer.ID, AuctionID: a.ID, Message: "hello"})
	require.NoError(t, err)

	// deleting the leading bidder clears the reference but keeps the auction
	require.NoError(t, s.Delete(ctx, buyer.ID))
	stored, err := s.GetAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Nil(t, stored.BuyerID)
	require.Equal(t, 20.0, stored.CurrentBid)
	msgs, err := s.ListMessagesByAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Empty(t, msgs)

	// deleting the seller takes the product and its auction with it
	require.NoError(t, s.Delete(ctx, seller.ID))
	_, err = s.GetAuction(ctx, a.ID)
	require.ErrorIs(t, err, apperrors.ErrAuctionNotFound)
}

func TestCreateUser_UniqueFields(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Create(ctx, models.User{Username: "alice", Email: "alice@farm.test"})
	require.NoError(t, err)

	_, err = s.Create(ctx, models.User{Username: "alice", Email: "other@farm.test"})
	require.ErrorIs(t, err, apperrors.ErrUsernameTaken)
	_, err = s.Create(ctx, models.User{Username: "other", Email: "alice@farm.test"})
	require.ErrorIs(t, err, apperrors.ErrEmailTaken)
}
