package postgres

import (
	"context"

	"auction-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type chatMessagesRepo struct{ pool *pgxpool.Pool }

func (r *chatMessagesRepo) Create(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO chat_messages(id, user_id, auction_id, message)
		 VALUES($1,$2,$3,$4)
		 RETURNING id, user_id, auction_id, message, created_at`,
		m.ID, m.UserID, m.AuctionID, m.Message,
	).Scan(&m.ID, &m.UserID, &m.AuctionID, &m.Message, &m.CreatedAt)
	return m, err
}

func (r *chatMessagesRepo) ListByAuction(ctx context.Context, auctionID string) ([]models.ChatMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.user_id, m.auction_id, m.message, m.created_at, u.username
		   FROM chat_messages m
		   JOIN users u ON u.id = m.user_id
		  WHERE m.auction_id=$1
		  ORDER BY m.created_at ASC`,
		auctionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.AuctionID, &m.Message, &m.CreatedAt, &m.Username); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
