package models

import (
	"testing"
	"time"

	"auction-backend/internal/apperrors"

	"github.com/stretchr/testify/require"
)

func TestAuctionStateAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	a := Auction{StartTime: start, EndTime: end}

	tests := []struct {
		name string
		now  time.Time
		want AuctionState
	}{
		{"before_start", start.Add(-time.Second), AuctionPending},
		{"at_start", start, AuctionActive},
		{"mid_window", start.Add(30 * time.Minute), AuctionActive},
		{"at_end", end, AuctionClosed},
		{"after_end", end.Add(time.Second), AuctionClosed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, a.StateAt(tc.now))
			require.Equal(t, tc.want == AuctionActive, a.ActiveAt(tc.now))
		})
	}

	require.Equal(t, 3600.0, a.TimeLeftAt(start))
	require.Negative(t, a.TimeLeftAt(end.Add(time.Minute)))
}

func TestAuctionValidate(t *testing.T) {
	now := time.Now()
	ok := Auction{ProductID: "p1", StartTime: now, EndTime: now.Add(time.Hour)}
	require.NoError(t, ok.Validate())

	noProduct := Auction{StartTime: now, EndTime: now.Add(time.Hour)}
	require.ErrorIs(t, noProduct.Validate(), apperrors.ErrInvalidInput)

	inverted := Auction{ProductID: "p1", StartTime: now.Add(time.Hour), EndTime: now}
	require.ErrorIs(t, inverted.Validate(), apperrors.ErrInvalidInput)

	negative := Auction{ProductID: "p1", StartTime: now, EndTime: now.Add(time.Hour), CurrentBid: -1}
	require.ErrorIs(t, negative.Validate(), apperrors.ErrInvalidInput)
}
