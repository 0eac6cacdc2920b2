package postgres

import (
	"context"
	"errors"
	"time"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type auctionsRepo struct{ pool *pgxpool.Pool }

const auctionCols = `id, product_id, start_time, end_time, current_bid, buyer_id, created_at`

func (r *auctionsRepo) Create(ctx context.Context, a models.Auction) (models.Auction, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO auctions(id, product_id, start_time, end_time, current_bid, buyer_id)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+auctionCols,
		a.ID, a.ProductID, a.StartTime, a.EndTime, a.CurrentBid, a.BuyerID,
	).Scan(&a.ID, &a.ProductID, &a.StartTime, &a.EndTime, &a.CurrentBid, &a.BuyerID, &a.CreatedAt)
	return a, err
}

func (r *auctionsRepo) GetByID(ctx context.Context, id string) (models.Auction, error) {
	var a models.Auction
	err := r.pool.QueryRow(ctx,
		`SELECT `+auctionCols+` FROM auctions WHERE id=$1`, id,
	).Scan(&a.ID, &a.ProductID, &a.StartTime, &a.EndTime, &a.CurrentBid, &a.BuyerID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Auction{}, apperrors.ErrAuctionNotFound
	}
	return a, err
}

func (r *auctionsRepo) List(ctx context.Context) ([]models.Auction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+auctionCols+` FROM auctions ORDER BY start_time DESC LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Auction
	for rows.Next() {
		var a models.Auction
		if err := rows.Scan(&a.ID, &a.ProductID, &a.StartTime, &a.EndTime, &a.CurrentBid, &a.BuyerID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update touches the time window only. current_bid and buyer_id are owned
// by PlaceBid.
func (r *auctionsRepo) Update(ctx context.Context, a models.Auction) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE auctions SET start_time=$2, end_time=$3 WHERE id=$1`,
		a.ID, a.StartTime, a.EndTime,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAuctionNotFound
	}
	return nil
}

func (r *auctionsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM auctions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAuctionNotFound
	}
	return nil
}

// PlaceBid is the increase-if-greater compare-and-set. The window and bid
// comparison live in the WHERE clause, so two racing bidders serialize on
// the row and the loser's update matches nothing.
func (r *auctionsRepo) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Auction, error) {
	var a models.Auction
	err := r.pool.QueryRow(ctx,
		`UPDATE auctions
		    SET current_bid = $2,
		        buyer_id    = $3
		  WHERE id = $1
		    AND current_bid < $2
		    AND start_time <= now()
		    AND end_time > now()
		  RETURNING `+auctionCols,
		auctionID, amount, bidderID,
	).Scan(&a.ID, &a.ProductID, &a.StartTime, &a.EndTime, &a.CurrentBid, &a.BuyerID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Auction{}, r.classifyRejection(ctx, auctionID)
	}
	return a, err
}

// classifyRejection re-reads the auction to report why the conditional
// update matched nothing. A concurrent loser whose amount is now stale is
// reported as bid-too-low: the committed state supersedes the attempt.
func (r *auctionsRepo) classifyRejection(ctx context.Context, auctionID string) error {
	a, err := r.GetByID(ctx, auctionID)
	if err != nil {
		return err
	}
	if !a.ActiveAt(time.Now()) {
		return apperrors.ErrAuctionNotActive
	}
	return apperrors.ErrBidTooLow
}
